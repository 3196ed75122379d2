package nav

import "github.com/adriagisbert/stayloom/pkg/domain"

// SigninPath is where unauthenticated access to protected routes lands.
// A fixed contract point, like NotFoundName.
const SigninPath = "/signin"

// PublicPaths are the top-level static paths reachable without a session.
var PublicPaths = []string{"/signin", "/signup", "/password/reset", "/"}

// PublicNames are route names reachable without a session. Parameterized
// paths ("/accomodation/:registerNumber") never literal-match PublicPaths, so
// the name set is the authoritative escape hatch for dynamic public routes.
var PublicNames = []string{
	"accomodation-detail",
	"user-profile-public",
	"app-help",
	"error-404",
	"error-500",
	"home",
}

// Action is the outcome kind of a guard decision.
type Action int

const (
	Allow Action = iota
	Redirect
)

// Decision is the guard's verdict for one transition.
type Decision struct {
	Action Action
	Target string // redirect path, set when Action is Redirect
}

// SessionReader is the slice of the session store the guard needs. The guard
// performs no I/O itself; it only branches on already-resolved session state.
type SessionReader interface {
	Get() (domain.Session, bool)
}

// Policy is a post-authentication authorization hook, consulted in order for
// every allowed transition. The intended use is host-role gating of the
// accommodation upload/edit routes once host verification ships; until then
// no policy is registered and every authenticated transition passes.
type Policy interface {
	Check(target Match, session domain.Session) (Decision, bool)
}

// Guard decides, per navigation, whether a transition may proceed.
type Guard struct {
	sessions SessionReader
	policies []Policy
}

// NewGuard creates a guard reading authentication state from sessions.
func NewGuard(sessions SessionReader, policies ...Policy) *Guard {
	return &Guard{sessions: sessions, policies: policies}
}

// Check is invoked before every route transition. The name check runs before
// the path check so a dynamic public route is never gated by accident.
func (g *Guard) Check(target Match, source *Match) Decision {
	isPublic := false
	if target.Route != nil {
		for _, name := range PublicNames {
			if target.Route.Name == name {
				isPublic = true
				break
			}
		}
	}
	if !isPublic {
		for _, path := range PublicPaths {
			if target.Path == path {
				isPublic = true
				break
			}
		}
	}

	session, ok := g.sessions.Get()
	authenticated := ok && session.IsValid()

	if !isPublic && !authenticated {
		return Decision{Action: Redirect, Target: SigninPath}
	}

	for _, p := range g.policies {
		if d, applies := p.Check(target, session); applies {
			return d
		}
	}
	return Decision{Action: Allow}
}

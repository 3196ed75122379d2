// Package store holds the client-side entity caches views read from. Each
// store composes the API client behind a narrow interface and is scoped to
// the current session's view of one entity family. Caches are read-through
// projections: overwritten wholesale on each fetch, cleared on logout, never
// authoritative.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adriagisbert/stayloom/internal/session"
	"github.com/adriagisbert/stayloom/pkg/client"
	"github.com/adriagisbert/stayloom/pkg/domain"
)

// User-facing failures. Views render these directly.
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrServer             = errors.New("server error, try again later")
	ErrResetPassword      = errors.New("could not reset the password")
)

// HomePath is where logout and fallback login redirects land.
const HomePath = "/"

type userAPI interface {
	Login(ctx context.Context, email, password string) (domain.Session, error)
	SignUp(ctx context.Context, req client.SignUpRequest) error
	ResetPassword(ctx context.Context, req client.ResetPasswordRequest) error
	User(ctx context.Context, id int) (*domain.User, error)
	UpdateUser(ctx context.Context, u domain.User) error
	UserConfiguration(ctx context.Context, id int) (*domain.UserConfiguration, error)
	UserAccommodations(ctx context.Context, userID int) ([]domain.Accommodation, error)
}

// UserStore is the session user's profile cache plus the auth form state.
// Password fields live only in memory and are never persisted.
type UserStore struct {
	api      userAPI
	sessions session.Store

	User             domain.User
	Password         string
	NewPassword      string
	RepeatedPassword string
}

// NewUserStore creates a user store over the given adapter and session store.
func NewUserStore(api userAPI, sessions session.Store) *UserStore {
	return &UserStore{api: api, sessions: sessions}
}

// IsPasswordsMatch reports whether the two password form fields are equal.
// Form validation only — the server re-validates; this is never a security
// boundary.
func (u *UserStore) IsPasswordsMatch() bool {
	return u.Password == u.RepeatedPassword
}

// Login exchanges the form credentials for a session and returns the path to
// navigate to. The session is written wholesale; the secondary profile cache
// is filled opportunistically so the redirect can target the account section.
func (u *UserStore) Login(ctx context.Context) (string, error) {
	s, err := u.api.Login(ctx, u.User.Email, u.Password)
	if err != nil {
		if client.IsStatus(err, 400) || client.IsStatus(err, 401) || client.IsStatus(err, 402) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("login: %w", err)
	}
	if err := u.sessions.Set(s); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}

	user, err := u.api.User(ctx, s.UserID)
	if err != nil {
		// Logged in but no profile data — land on home.
		return HomePath, nil
	}
	u.User = *user
	if user.Name != "" && user.Surname != "" {
		u.sessions.SetProfile(session.Profile{Name: user.Name, Surname: user.Surname}) //nolint:errcheck // cache write is best-effort
		return accountProfilePath(user.Name, user.Surname), nil
	}
	return HomePath, nil
}

// accountProfilePath builds the session user's profile path from their name,
// e.g. "/account/alice-vega/profile".
func accountProfilePath(name, surname string) string {
	slug := strings.ToLower(name) + "-" + strings.ToLower(surname)
	return "/account/" + slug + "/profile"
}

// SignUp registers the form user and returns the path to navigate to. The
// password match check runs before any network call. A 400 from the server
// also lands on sign-in, matching the server's duplicate-account behavior.
func (u *UserStore) SignUp(ctx context.Context) (string, error) {
	if !u.IsPasswordsMatch() {
		return "", ErrPasswordMismatch
	}
	err := u.api.SignUp(ctx, client.SignUpRequest{
		Name:             u.User.Name,
		Surname:          u.User.Surname,
		Email:            u.User.Email,
		Password:         u.Password,
		RepeatedPassword: u.RepeatedPassword,
	})
	if err != nil {
		if client.IsStatus(err, 400) {
			return signinPath, nil
		}
		if client.IsStatus(err, 500) {
			return "", ErrServer
		}
		return "", fmt.Errorf("sign up: %w", err)
	}
	return signinPath, nil
}

// Same value as nav.SigninPath; kept local so stores never depend on nav.
const signinPath = "/signin"

// ResetPassword replaces the user's password. Failures collapse to one
// generic message; the form has nothing actionable to show per cause.
func (u *UserStore) ResetPassword(ctx context.Context) error {
	if u.NewPassword != u.RepeatedPassword {
		return ErrPasswordMismatch
	}
	err := u.api.ResetPassword(ctx, client.ResetPasswordRequest{
		Email:            u.User.Email,
		Password:         u.Password,
		NewPassword:      u.NewPassword,
		RepeatedPassword: u.RepeatedPassword,
	})
	if err != nil {
		return ErrResetPassword
	}
	return nil
}

// Logout clears the session and every cached field, and returns the home
// path. Logout never fails: a failed file removal still leaves the in-memory
// session cleared, which is what the guard reads.
func (u *UserStore) Logout() string {
	u.sessions.Clear() //nolint:errcheck // best-effort, in-memory state is already gone
	u.User = domain.User{}
	u.Password = ""
	u.NewPassword = ""
	u.RepeatedPassword = ""
	return HomePath
}

// LoadUserData fetches the session user's profile and replaces the cache
// wholesale.
func (u *UserStore) LoadUserData(ctx context.Context) (*domain.User, error) {
	s, ok := u.sessions.Get()
	if !ok {
		return nil, errors.New("not logged in")
	}
	user, err := u.api.User(ctx, s.UserID)
	if err != nil {
		return nil, fmt.Errorf("load user data: %w", err)
	}
	u.User = *user
	return user, nil
}

// UpdateUserData pushes the edited profile fields to the server. On success
// the secondary profile cache follows, since account paths are built from the
// cached name and surname.
func (u *UserStore) UpdateUserData(ctx context.Context) error {
	if _, ok := u.sessions.Get(); !ok {
		return errors.New("not logged in")
	}
	if err := u.api.UpdateUser(ctx, u.User); err != nil {
		return fmt.Errorf("update user data: %w", err)
	}
	if u.User.Name != "" && u.User.Surname != "" {
		u.sessions.SetProfile(session.Profile{Name: u.User.Name, Surname: u.User.Surname}) //nolint:errcheck // cache write is best-effort
	}
	return nil
}

// UserByID fetches any user's public profile.
func (u *UserStore) UserByID(ctx context.Context, userID int) (*domain.User, error) {
	return u.api.User(ctx, userID)
}

// UserLanguageByID fetches a user's locale/currency configuration.
func (u *UserStore) UserLanguageByID(ctx context.Context, userID int) (*domain.UserConfiguration, error) {
	return u.api.UserConfiguration(ctx, userID)
}

// LoadUserAccommodations lists the session user's published accommodations.
func (u *UserStore) LoadUserAccommodations(ctx context.Context) ([]domain.Accommodation, error) {
	return u.api.UserAccommodations(ctx, u.User.ID)
}

// AccommodationsByUserID lists any user's published accommodations.
func (u *UserStore) AccommodationsByUserID(ctx context.Context, userID int) ([]domain.Accommodation, error) {
	return u.api.UserAccommodations(ctx, userID)
}

// Package tui is the terminal front end. One route-driven shell owns the
// views; every transition goes through the route table and the guard before a
// view is mounted.
package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriagisbert/stayloom/internal/nav"
	"github.com/adriagisbert/stayloom/internal/session"
	"github.com/adriagisbert/stayloom/internal/store"
)

// navigateMsg asks the shell to transition to a path. Views emit it instead
// of mounting each other, so every transition passes the guard.
type navigateMsg struct {
	path string
}

func navigateCmd(path string) tea.Cmd {
	return func() tea.Msg { return navigateMsg{path: path} }
}

// maxRedirectHops bounds redirect chains during resolution. The table's
// redirects are one hop deep; the bound only guards against a future cycle.
const maxRedirectHops = 8

// App is the bubbletea root model.
type App struct {
	table    *nav.Table
	guard    *nav.Guard
	sessions session.Store

	users          *store.UserStore
	accommodations *store.AccommodationStore
	bookings       *store.BookingStore
	searches       *store.SearchStore

	current nav.Match
	view    string // active route's view name
	frame   int
	width   int
	height  int

	auth          authModel
	home          homeModel
	detail        detailModel
	bookingForm   bookingFormModel
	bookingDetail bookingDetailModel
	account       accountModel
	public        publicProfileModel
	upload        uploadModel
	help          helpModel
}

// NewApp wires the shell over the given stores. The guard reads session state
// from sessions; no policies are registered yet.
func NewApp(
	sessions session.Store,
	users *store.UserStore,
	accommodations *store.AccommodationStore,
	bookings *store.BookingStore,
	searches *store.SearchStore,
) App {
	return App{
		table:          nav.NewTable(nav.Routes()),
		guard:          nav.NewGuard(sessions),
		sessions:       sessions,
		users:          users,
		accommodations: accommodations,
		bookings:       bookings,
		searches:       searches,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(shimmerTickCmd(), navigateCmd(store.HomePath))
}

// navigate resolves path, follows table redirects, runs the guard, and mounts
// the winning view. Returns the mounted view's Init command.
func (a App) navigate(path string) (App, tea.Cmd) {
	match := a.table.Resolve(path)
	for hops := 0; match.Redirect != "" && hops < maxRedirectHops; hops++ {
		target, ok := a.table.PathFor(match.Redirect, match.Params)
		if !ok {
			target = "/404"
		}
		match = a.table.Resolve(target)
	}

	if d := a.guard.Check(match, &a.current); d.Action == nav.Redirect {
		match = a.table.Resolve(d.Target)
	}

	a.current = match
	return a.mount()
}

// mount builds the view model for the current match.
func (a App) mount() (App, tea.Cmd) {
	if a.current.Route == nil {
		a.view = "error-404"
		return a, nil
	}
	a.view = a.current.Route.View
	params := a.current.Params

	switch a.view {
	case "signin", "signup", "reset-password":
		a.auth = newAuthModel(a.users, a.current.Route.Name)
	case "home":
		a.home = newHomeModel(a.searches)
	case "saved", "user-profile", "user-ads", "user-bookings":
		a.account = newAccountModel(a.users, a.accommodations, a.current.Route.Name)
	case "accomodation-detail":
		a.detail = newDetailModel(a.accommodations, a.bookings, params["registerNumber"])
	case "booking-task":
		a.bookingForm = newBookingFormModel(a.accommodations, a.bookings, params["registerNumber"])
	case "booking-detail":
		a.bookingDetail = newBookingDetailModel(a.bookings, params["bookingId"])
	case "user-profile-public":
		a.public = newPublicProfileModel(a.users, params["userId"])
	case "accomodation-edit":
		a.upload = newEditModel(a.accommodations, params["accUser"], params["registerNumber"])
	case "upload-basic-data", "upload-location", "upload-services", "upload-rules", "upload-images":
		a.upload = newUploadModel(a.accommodations, a.view, params["username"])
	case "help":
		a.help = newHelpModel()
	}
	return a, a.initActive()
}

func (a App) initActive() tea.Cmd {
	switch a.view {
	case "accomodation-detail":
		return a.detail.Init()
	case "booking-task":
		return a.bookingForm.Init()
	case "booking-detail":
		return a.bookingDetail.Init()
	case "saved", "user-profile", "user-ads", "user-bookings":
		return a.account.Init()
	case "user-profile-public":
		return a.public.Init()
	case "accomodation-edit", "upload-basic-data", "upload-location",
		"upload-services", "upload-rules", "upload-images":
		return a.upload.Init()
	}
	return nil
}

// updateActive forwards msg to the mounted view.
func (a App) updateActive(msg tea.Msg) (App, tea.Cmd) {
	var cmd tea.Cmd
	switch a.view {
	case "signin", "signup", "reset-password":
		a.auth, cmd = a.auth.Update(msg)
	case "home":
		a.home, cmd = a.home.Update(msg)
	case "saved", "user-profile", "user-ads", "user-bookings":
		a.account, cmd = a.account.Update(msg)
	case "accomodation-detail":
		a.detail, cmd = a.detail.Update(msg)
	case "booking-task":
		a.bookingForm, cmd = a.bookingForm.Update(msg)
	case "booking-detail":
		a.bookingDetail, cmd = a.bookingDetail.Update(msg)
	case "user-profile-public":
		a.public, cmd = a.public.Update(msg)
	case "accomodation-edit", "upload-basic-data", "upload-location",
		"upload-services", "upload-rules", "upload-images":
		a.upload, cmd = a.upload.Update(msg)
	case "help":
		a.help, cmd = a.help.Update(msg)
	}
	return a, cmd
}

// isEditing reports whether the mounted view is capturing plain keystrokes,
// in which case single-letter shortcuts stay out of the way.
func (a App) isEditing() bool {
	switch a.view {
	case "signin", "signup", "reset-password", "booking-task",
		"accomodation-edit", "upload-basic-data", "upload-location",
		"upload-services", "upload-rules", "upload-images":
		return true
	case "home":
		return a.home.isEditing()
	case "user-profile":
		return a.account.isEditing()
	}
	return false
}

// accountSlug is the :username segment of the session user's account paths.
func (a App) accountSlug() string {
	if p, ok := a.sessions.Profile(); ok {
		return strings.ToLower(p.Name) + "-" + strings.ToLower(p.Surname)
	}
	return "me"
}

func (a App) authenticated() bool {
	s, ok := a.sessions.Get()
	return ok && s.IsValid()
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.updateActive(msg)

	case shimmerTickMsg:
		a.frame++
		return a, shimmerTickCmd()

	case navigateMsg:
		return a.navigate(msg.path)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "ctrl+h":
			return a, navigateCmd("/help")
		case "ctrl+u":
			return a, navigateCmd("/signup")
		case "ctrl+r":
			return a, navigateCmd("/password/reset")
		case "ctrl+a":
			return a, navigateCmd("/account/" + a.accountSlug() + "/profile")
		case "ctrl+b":
			return a, navigateCmd("/account/" + a.accountSlug() + "/bookings")
		case "ctrl+s":
			return a, navigateCmd("/saved")
		case "ctrl+n":
			return a, navigateCmd("/account/" + a.accountSlug() + "/upload")
		case "ctrl+l":
			if a.authenticated() {
				a.accommodations.Reset()
				a.searches.Reset()
				return a, navigateCmd(a.users.Logout())
			}
			return a, navigateCmd(nav.SigninPath)
		}
		if !a.isEditing() {
			switch msg.String() {
			case "q":
				return a, tea.Quit
			case "esc", "h":
				return a, navigateCmd(store.HomePath)
			}
		}
		return a.updateActive(msg)
	}

	return a.updateActive(msg)
}

func (a App) viewBody() string {
	switch a.view {
	case "signin", "signup", "reset-password":
		return a.auth.View()
	case "home":
		return a.home.View()
	case "saved", "user-profile", "user-ads", "user-bookings":
		return a.account.View()
	case "accomodation-detail":
		return a.detail.View()
	case "booking-task":
		return a.bookingForm.View()
	case "booking-detail":
		return a.bookingDetail.View()
	case "user-profile-public":
		return a.public.View()
	case "accomodation-edit", "upload-basic-data", "upload-location",
		"upload-services", "upload-rules", "upload-images":
		return a.upload.View()
	case "help":
		return a.help.View()
	case "error-401", "error-404", "error-500", "error-503":
		return errorPage(a.view)
	}
	return errorPage("error-404")
}

func (a App) header() string {
	left := "  " + renderShimmerLogo(a.frame)
	right := dimStyle.Render("guest")
	if s, ok := a.sessions.Get(); ok && s.IsValid() {
		right = okStyle.Render(s.Email)
	}
	name := ""
	if a.current.Route != nil {
		name = "  " + metaStyle.Render(a.current.Route.Name)
	}
	return left + name + "   " + right + "\n"
}

func (a App) footer() string {
	entries := []string{
		helpEntry("ctrl+h", "help"),
		helpEntry("ctrl+c", "quit"),
	}
	if a.authenticated() {
		entries = append([]string{
			helpEntry("ctrl+a", "account"),
			helpEntry("ctrl+b", "trips"),
			helpEntry("ctrl+s", "saved"),
			helpEntry("ctrl+n", "publish"),
			helpEntry("ctrl+l", "log out"),
		}, entries...)
	} else {
		entries = append([]string{helpEntry("ctrl+l", "sign in")}, entries...)
	}
	return "\n  " + strings.Join(entries, "  ") + "\n"
}

func (a App) View() string {
	out := "\n" + a.header() + a.viewBody() + a.footer()
	if a.height > 0 {
		return truncateToHeight(out, a.height)
	}
	return out
}

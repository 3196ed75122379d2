package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriagisbert/stayloom/internal/store"
	"github.com/adriagisbert/stayloom/pkg/domain"
)

// accountLoadedMsg carries whatever the active account tab needed.
type accountLoadedMsg struct {
	user     *domain.User
	listings []domain.Accommodation
	bookings []domain.Booking
	err      error
}

// profileSavedMsg carries the outcome of a profile edit submission.
type profileSavedMsg struct {
	user domain.User
	err  error
}

// accountModel renders the session user's account section: profile, published
// listings, bookings, and saved listings. The mode is the route name. The
// profile tab has an inline edit mode for the mutable fields.
type accountModel struct {
	users          *store.UserStore
	accommodations *store.AccommodationStore
	mode           string

	user     *domain.User
	listings []domain.Accommodation
	bookings []domain.Booking
	cursor   int
	editing  bool
	fields   []authField
	busy     bool
	errMsg   string
	notice   string
}

func newAccountModel(users *store.UserStore, accommodations *store.AccommodationStore, mode string) accountModel {
	return accountModel{users: users, accommodations: accommodations, mode: mode}
}

func (m accountModel) Init() tea.Cmd {
	users := m.users
	accommodations := m.accommodations
	mode := m.mode
	return func() tea.Msg {
		ctx := context.Background()
		switch mode {
		case "user-ads":
			listings, err := accommodations.AllUserAccommodations(ctx)
			return accountLoadedMsg{listings: listings, err: err}
		case "user-bookings":
			bookings, err := accommodations.AllUserBookings(ctx)
			return accountLoadedMsg{bookings: bookings, err: err}
		case "saved":
			listings, err := accommodations.AllUserSavedAccommodations(ctx)
			return accountLoadedMsg{listings: listings, err: err}
		default:
			user, err := users.LoadUserData(ctx)
			if err != nil {
				return accountLoadedMsg{err: err}
			}
			if user.Config == nil {
				// Preferences come from their own endpoint when the profile
				// payload does not embed them; absence is not an error.
				if cfg, cfgErr := users.UserLanguageByID(ctx, user.ID); cfgErr == nil {
					user.Config = cfg
				}
			}
			return accountLoadedMsg{user: user}
		}
	}
}

// startEditing prefills the edit form from the loaded profile.
func (m *accountModel) startEditing() {
	m.editing = true
	m.cursor = 0
	m.notice = ""
	m.fields = []authField{
		{label: "name   ", value: m.user.Name},
		{label: "surname", value: m.user.Surname},
		{label: "phone  ", value: m.user.Phone},
	}
}

func (m accountModel) saveProfile() tea.Cmd {
	users := m.users
	edited := *m.user
	edited.Name = strings.TrimSpace(m.fields[0].value)
	edited.Surname = strings.TrimSpace(m.fields[1].value)
	edited.Phone = strings.TrimSpace(m.fields[2].value)
	return func() tea.Msg {
		users.User = edited
		if err := users.UpdateUserData(context.Background()); err != nil {
			return profileSavedMsg{err: err}
		}
		return profileSavedMsg{user: edited}
	}
}

func (m accountModel) listLen() int {
	if len(m.bookings) > 0 {
		return len(m.bookings)
	}
	return len(m.listings)
}

func (m accountModel) Update(msg tea.Msg) (accountModel, tea.Cmd) {
	switch msg := msg.(type) {
	case accountLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.listings = msg.listings
		m.bookings = msg.bookings
		m.cursor = 0

	case profileSavedMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		user := msg.user
		m.user = &user
		m.editing = false
		m.errMsg = ""
		m.notice = "profile updated"

	case tea.KeyMsg:
		if m.editing {
			if m.busy {
				return m, nil
			}
			switch msg.String() {
			case "esc":
				m.editing = false
				m.errMsg = ""
			case "tab", "down":
				m.cursor = (m.cursor + 1) % len(m.fields)
			case "shift+tab", "up":
				m.cursor = (m.cursor - 1 + len(m.fields)) % len(m.fields)
			case "enter":
				if m.cursor < len(m.fields)-1 {
					m.cursor++
					return m, nil
				}
				m.busy = true
				m.errMsg = ""
				return m, m.saveProfile()
			default:
				m.fields[m.cursor].value = editRune(m.fields[m.cursor].value, msg.String())
			}
			return m, nil
		}
		switch msg.String() {
		case "j", "down":
			if m.cursor < m.listLen()-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "e":
			if m.mode == "user-profile" && m.user != nil {
				m.startEditing()
			}
		case "enter":
			if m.mode == "user-bookings" && m.cursor < len(m.bookings) {
				return m, navigateCmd("/bookings/" + m.bookings[m.cursor].ID.String())
			}
			if m.cursor < len(m.listings) {
				return m, navigateCmd("/accomodation/" + m.listings[m.cursor].RegisterNumber)
			}
		case "d":
			if m.mode == "user-ads" && m.cursor < len(m.listings) {
				return m, m.deleteListing(m.listings[m.cursor].RegisterNumber)
			}
		}
	}
	return m, nil
}

func (m accountModel) isEditing() bool { return m.editing }

func (m accountModel) deleteListing(regNumber string) tea.Cmd {
	accommodations := m.accommodations
	return func() tea.Msg {
		ctx := context.Background()
		if err := accommodations.DeleteByRegNumber(ctx, regNumber); err != nil {
			return accountLoadedMsg{err: err}
		}
		listings, err := accommodations.AllUserAccommodations(ctx)
		return accountLoadedMsg{listings: listings, err: err}
	}
}

func renderListingRow(a domain.Accommodation, selected bool) string {
	marker := "    "
	style := normalStyle
	if selected {
		marker = "  > "
		style = selectedStyle
	}
	line := marker + style.Render(a.Location.City) + "  " +
		CategoryStyle(a.Category).Render(a.Category) + "  " +
		priceStyle.Render(fmt.Sprintf("%.2f €", a.PricePerNight)) + "  " +
		metaStyle.Render(a.RegisterNumber)
	return line
}

func (m accountModel) View() string {
	if m.errMsg != "" {
		return "\n  " + errorStyle.Render(m.errMsg)
	}

	var b strings.Builder
	switch m.mode {
	case "user-ads":
		b.WriteString("\n  " + sectionHeaderStyle.Render("your listings") + "\n\n")
		if len(m.listings) == 0 {
			b.WriteString("  " + dimStyle.Render("nothing published yet") + "\n")
			break
		}
		for i, a := range m.listings {
			b.WriteString(renderListingRow(a, i == m.cursor) + "\n")
		}
		b.WriteString("\n  " + helpEntry("enter", "open") + "  " + helpEntry("d", "delete") + "\n")

	case "user-bookings":
		b.WriteString("\n  " + sectionHeaderStyle.Render("your bookings") + "\n\n")
		if len(m.bookings) == 0 {
			b.WriteString("  " + dimStyle.Render("no trips booked") + "\n")
			break
		}
		for i, bk := range m.bookings {
			marker, style := "    ", normalStyle
			if i == m.cursor {
				marker, style = "  > ", selectedStyle
			}
			b.WriteString(marker + style.Render(bk.CheckIn.Format(dateLayout)+" → "+bk.CheckOut.Format(dateLayout)) +
				"  " + metaStyle.Render(bk.RegisterNumber) +
				"  " + priceStyle.Render(fmt.Sprintf("%.2f €", bk.TotalPrice)) + "\n")
		}
		b.WriteString("\n  " + helpEntry("enter", "open") + "\n")

	case "saved":
		b.WriteString("\n  " + sectionHeaderStyle.Render("saved places") + "\n\n")
		if len(m.listings) == 0 {
			b.WriteString("  " + dimStyle.Render("nothing saved yet") + "\n")
			break
		}
		for i, a := range m.listings {
			b.WriteString(renderListingRow(a, i == m.cursor) + "\n")
		}
		b.WriteString("\n  " + helpEntry("enter", "open") + "\n")

	default:
		if m.user == nil {
			if m.errMsg != "" {
				return "\n  " + errorStyle.Render(m.errMsg)
			}
			return "\n  " + dimStyle.Render("loading profile...")
		}
		if m.editing {
			b.WriteString("\n  " + selectedStyle.Render("Edit your profile") + "\n\n")
			for i, f := range m.fields {
				b.WriteString(renderField(f.label, f.value, i == m.cursor && !m.busy, false) + "\n")
			}
			b.WriteString("\n")
			switch {
			case m.busy:
				b.WriteString("  " + dimStyle.Render("saving...") + "\n")
			case m.errMsg != "":
				b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
			default:
				b.WriteString("  " + helpEntry("enter", "save") + "  " + helpEntry("esc", "cancel") + "\n")
			}
			return b.String()
		}
		u := m.user
		b.WriteString("\n  " + selectedStyle.Render(u.Name+" "+u.Surname) + "\n\n")
		b.WriteString("  " + metaStyle.Render("email") + "  " + normalStyle.Render(u.Email) + "\n")
		if u.Phone != "" {
			b.WriteString("  " + metaStyle.Render("phone") + "  " + normalStyle.Render(u.Phone) + "\n")
		}
		if u.Config != nil {
			b.WriteString("  " + metaStyle.Render("prefs") + "  " +
				dimStyle.Render(u.Config.Language+" / "+u.Config.Currency.Code) + "\n")
		}
		if u.Host != nil {
			status := "pending verification"
			style := dimStyle
			if u.Host.Verified {
				status, style = "verified host", okStyle
			}
			b.WriteString("  " + metaStyle.Render("host ") + "  " + style.Render(status) + "\n")
		}
		b.WriteString("\n  " + helpEntry("e", "edit profile") + "\n")
	}

	if m.notice != "" {
		b.WriteString("\n  " + okStyle.Render(m.notice) + "\n")
	}
	return b.String()
}

// publicLoadedMsg carries another user's public profile and listings.
type publicLoadedMsg struct {
	user     *domain.User
	listings []domain.Accommodation
	err      error
}

// publicProfileModel renders any user's public page. Public route.
type publicProfileModel struct {
	users  *store.UserStore
	userID int

	user     *domain.User
	listings []domain.Accommodation
	cursor   int
	errMsg   string
}

func newPublicProfileModel(users *store.UserStore, userID string) publicProfileModel {
	id, _ := strconv.Atoi(userID)
	return publicProfileModel{users: users, userID: id}
}

func (m publicProfileModel) Init() tea.Cmd {
	users := m.users
	id := m.userID
	return func() tea.Msg {
		ctx := context.Background()
		user, err := users.UserByID(ctx, id)
		if err != nil {
			return publicLoadedMsg{err: err}
		}
		// Public pages show published listings only; fetch failure leaves the
		// profile visible with an empty list.
		listings, err := users.AccommodationsByUserID(ctx, id)
		if err != nil {
			listings = nil
		}
		return publicLoadedMsg{user: user, listings: listings}
	}
}

func (m publicProfileModel) Update(msg tea.Msg) (publicProfileModel, tea.Cmd) {
	switch msg := msg.(type) {
	case publicLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.user = msg.user
		m.listings = msg.listings
		m.cursor = 0

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.listings)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter":
			if m.cursor < len(m.listings) {
				return m, navigateCmd("/accomodation/" + m.listings[m.cursor].RegisterNumber)
			}
		}
	}
	return m, nil
}

func (m publicProfileModel) View() string {
	if m.errMsg != "" {
		return "\n  " + errorStyle.Render(m.errMsg)
	}
	if m.user == nil {
		return "\n  " + dimStyle.Render("loading profile...")
	}

	var b strings.Builder
	b.WriteString("\n  " + selectedStyle.Render(m.user.Name+" "+m.user.Surname) + "\n")
	if m.user.Host != nil && m.user.Host.Verified {
		b.WriteString("  " + okStyle.Render("verified host") + "\n")
	}
	if m.user.Host != nil && m.user.Host.Bio != "" {
		b.WriteString("\n  " + dimStyle.Render(m.user.Host.Bio) + "\n")
	}

	if len(m.listings) > 0 {
		b.WriteString("\n  " + sectionHeaderStyle.Render("listings") + "\n\n")
		for i, a := range m.listings {
			b.WriteString(renderListingRow(a, i == m.cursor) + "\n")
		}
	}
	return b.String()
}

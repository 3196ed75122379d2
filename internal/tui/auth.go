package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriagisbert/stayloom/internal/store"
)

// authResultMsg carries the outcome of a login/signup/reset submission.
type authResultMsg struct {
	redirect string // path to navigate to, empty to stay on the form
	notice   string // success notice to show when staying
	err      error
}

type authField struct {
	label  string
	secret bool
	value  string
}

// authModel renders the signin, signup and reset-password forms. The route
// name decides which field set and submit action are active.
type authModel struct {
	users   *store.UserStore
	mode    string // route name: "signin", "signup", "reset-password"
	fields  []authField
	cursor  int
	busy    bool
	errMsg  string
	notice  string
	width   int
	height  int
}

func newAuthModel(users *store.UserStore, mode string) authModel {
	m := authModel{users: users, mode: mode}
	switch mode {
	case "signup":
		m.fields = []authField{
			{label: "name     "},
			{label: "surname  "},
			{label: "email    "},
			{label: "password ", secret: true},
			{label: "repeat   ", secret: true},
		}
	case "reset-password":
		m.fields = []authField{
			{label: "email    "},
			{label: "current  ", secret: true},
			{label: "new      ", secret: true},
			{label: "repeat   ", secret: true},
		}
	default:
		m.fields = []authField{
			{label: "email    "},
			{label: "password ", secret: true},
		}
	}
	return m
}

func (m authModel) Init() tea.Cmd { return nil }

func (m authModel) submit() tea.Cmd {
	users := m.users
	mode := m.mode
	return func() tea.Msg {
		ctx := context.Background()
		switch mode {
		case "signup":
			redirect, err := users.SignUp(ctx)
			return authResultMsg{redirect: redirect, err: err}
		case "reset-password":
			if err := users.ResetPassword(ctx); err != nil {
				return authResultMsg{err: err}
			}
			return authResultMsg{notice: "password updated"}
		default:
			redirect, err := users.Login(ctx)
			return authResultMsg{redirect: redirect, err: err}
		}
	}
}

// syncStore copies the form fields into the user store before submitting.
func (m *authModel) syncStore() {
	switch m.mode {
	case "signup":
		m.users.User.Name = m.fields[0].value
		m.users.User.Surname = m.fields[1].value
		m.users.User.Email = m.fields[2].value
		m.users.Password = m.fields[3].value
		m.users.RepeatedPassword = m.fields[4].value
	case "reset-password":
		m.users.User.Email = m.fields[0].value
		m.users.Password = m.fields[1].value
		m.users.NewPassword = m.fields[2].value
		m.users.RepeatedPassword = m.fields[3].value
	default:
		m.users.User.Email = m.fields[0].value
		m.users.Password = m.fields[1].value
	}
}

func (m authModel) Update(msg tea.Msg) (authModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case authResultMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.notice = msg.notice
		if msg.redirect != "" {
			return m, navigateCmd(msg.redirect)
		}

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "tab", "down":
			m.cursor = (m.cursor + 1) % len(m.fields)
		case "shift+tab", "up":
			m.cursor = (m.cursor - 1 + len(m.fields)) % len(m.fields)
		case "enter":
			if m.cursor < len(m.fields)-1 {
				m.cursor++
				return m, nil
			}
			m.syncStore()
			m.busy = true
			m.errMsg = ""
			return m, m.submit()
		default:
			m.fields[m.cursor].value = editRune(m.fields[m.cursor].value, msg.String())
		}
	}
	return m, nil
}

func (m authModel) View() string {
	var b strings.Builder

	title := map[string]string{
		"signup":         "Create your account",
		"reset-password": "Reset your password",
	}[m.mode]
	if title == "" {
		title = "Sign in"
	}
	b.WriteString("\n  " + selectedStyle.Render(title) + "\n\n")

	for i, f := range m.fields {
		b.WriteString(renderField(f.label, f.value, i == m.cursor && !m.busy, f.secret) + "\n")
	}

	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString("  " + dimStyle.Render("...") + "\n")
	case m.errMsg != "":
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
	case m.notice != "":
		b.WriteString("  " + okStyle.Render(m.notice) + "\n")
	}

	if m.mode == "signin" {
		b.WriteString("\n  " + metaStyle.Render("no account?") + " " + helpEntry("ctrl+u", "sign up") +
			"  " + helpEntry("ctrl+r", "reset password"))
	}
	return b.String()
}

package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriagisbert/stayloom/internal/browser"
)

// helpTopics are the hosted documentation pages the help view links out to.
var helpTopics = []struct {
	title string
	url   string
}{
	{"Getting started", "https://stayloom.app/help/getting-started"},
	{"Booking a stay", "https://stayloom.app/help/booking"},
	{"Publishing your place", "https://stayloom.app/help/hosting"},
	{"Payments and refunds", "https://stayloom.app/help/payments"},
	{"Contact support", "https://stayloom.app/help/contact"},
}

// helpModel lists help topics and opens them in the browser. Public route.
type helpModel struct {
	cursor int
	opened bool
}

func newHelpModel() helpModel { return helpModel{} }

func (m helpModel) Init() tea.Cmd { return nil }

func (m helpModel) Update(msg tea.Msg) (helpModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "j", "down":
			if m.cursor < len(helpTopics)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "enter", "o":
			browser.Open(helpTopics[m.cursor].url) //nolint:errcheck // best-effort browser open
			m.opened = true
		}
	}
	return m, nil
}

func (m helpModel) View() string {
	var b strings.Builder
	b.WriteString("\n  " + selectedStyle.Render("Help") + "\n\n")
	for i, t := range helpTopics {
		if i == m.cursor {
			b.WriteString("  > " + selectedStyle.Render(t.title) + "\n")
			continue
		}
		b.WriteString("    " + normalStyle.Render(t.title) + "\n")
	}
	b.WriteString("\n  " + helpEntry("enter", "open in browser"))
	if m.opened {
		b.WriteString("  " + okStyle.Render("opened"))
	}
	b.WriteString("\n")
	return b.String()
}

// errorPage renders one of the static error views by route name.
func errorPage(name string) string {
	var code, text string
	switch name {
	case "error-401":
		code, text = "401", "you need to sign in for that"
	case "error-500":
		code, text = "500", "something broke on our side"
	case "error-503":
		code, text = "503", "stayloom is down for maintenance"
	default:
		code, text = "404", "that page does not exist"
	}
	var b strings.Builder
	b.WriteString("\n  " + errorStyle.Render(code) + "  " + dimStyle.Render(text) + "\n")
	b.WriteString("\n  " + helpEntry("h", "go home") + "\n")
	return b.String()
}

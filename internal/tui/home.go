package tui

import (
	"context"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriagisbert/stayloom/internal/store"
)

// searchDoneMsg signals that a city search completed.
type searchDoneMsg struct {
	err error
}

// homeModel is the landing view: a city search box over the search store.
type homeModel struct {
	searches *store.SearchStore
	input    string
	focused  bool
	cursor   int
	errMsg   string
	width    int
	height   int
}

func newHomeModel(searches *store.SearchStore) homeModel {
	return homeModel{searches: searches}
}

func (m homeModel) Init() tea.Cmd { return nil }

func (m homeModel) search() tea.Cmd {
	searches := m.searches
	word := m.input
	return func() tea.Msg {
		searches.SetSearchWord(word)
		if word == "" {
			return searchDoneMsg{}
		}
		return searchDoneMsg{err: searches.SetSearchResults(context.Background(), word)}
	}
}

func (m homeModel) Update(msg tea.Msg) (homeModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case searchDoneMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.errMsg = ""
			m.cursor = 0
		}

	case tea.KeyMsg:
		if m.focused {
			switch msg.String() {
			case "esc":
				m.focused = false
			case "enter":
				m.focused = false
				return m, m.search()
			default:
				m.input = editRune(m.input, msg.String())
			}
			return m, nil
		}
		switch msg.String() {
		case "/":
			m.focused = true
		case "j", "down":
			if m.cursor < len(m.searches.Results())-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		}
	}
	return m, nil
}

func (m homeModel) isEditing() bool { return m.focused }

func (m homeModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + selectedStyle.Render("Where to next?") + "\n\n")

	prompt := inputPromptStyle.Render("  search > ")
	switch {
	case m.focused:
		b.WriteString(prompt + normalStyle.Render(m.input) + accentStyle.Render("█") + "\n")
	case m.input == "":
		b.WriteString(prompt + inputPlaceholderStyle.Render("city name...") + "\n")
	default:
		b.WriteString(prompt + dimStyle.Render(m.input) + "\n")
	}

	if m.errMsg != "" {
		b.WriteString("\n  " + errorStyle.Render(m.errMsg) + "\n")
		return b.String()
	}

	results := m.searches.Results()
	if len(results) == 0 {
		b.WriteString("\n  " + metaStyle.Render("press / to search for a city") + "\n")
		return b.String()
	}

	b.WriteString("\n  " + sectionHeaderStyle.Render("cities") + "\n")
	for i, city := range results {
		if i == m.cursor {
			b.WriteString("  > " + selectedStyle.Render(city) + "\n")
			continue
		}
		b.WriteString("    " + normalStyle.Render(city) + "\n")
	}
	return b.String()
}

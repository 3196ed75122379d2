package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriagisbert/stayloom/internal/browser"
	"github.com/adriagisbert/stayloom/internal/store"
	"github.com/adriagisbert/stayloom/pkg/domain"
)

// accLoadedMsg carries a fetched accommodation plus its star average and
// occupied dates.
type accLoadedMsg struct {
	acc   *domain.Accommodation
	stars float64
	dates []domain.DateRange
	err   error
}

// detailModel renders one accommodation. Public route — reachable without a
// session.
type detailModel struct {
	accommodations *store.AccommodationStore
	bookings       *store.BookingStore
	regNumber      string
	acc            *domain.Accommodation
	stars          float64
	dates          []domain.DateRange
	copied         bool
	errMsg         string
	width          int
	height         int
}

func newDetailModel(accommodations *store.AccommodationStore, bookings *store.BookingStore, regNumber string) detailModel {
	return detailModel{accommodations: accommodations, bookings: bookings, regNumber: regNumber}
}

func (m detailModel) Init() tea.Cmd {
	accommodations := m.accommodations
	bookings := m.bookings
	reg := m.regNumber
	return func() tea.Msg {
		ctx := context.Background()
		acc, err := accommodations.ByRegisterNumber(ctx, reg)
		if err != nil {
			return accLoadedMsg{err: err}
		}
		stars, err := accommodations.StarAverage(ctx, reg)
		if err != nil {
			stars = 0
		}
		// Availability is always re-fetched, never read from a cache.
		dates, err := bookings.AccommodationBookingDates(ctx, reg)
		if err != nil {
			dates = nil
		}
		return accLoadedMsg{acc: acc, stars: stars, dates: dates}
	}
}

func (m detailModel) Update(msg tea.Msg) (detailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case accLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.acc = msg.acc
		m.stars = msg.stars
		m.dates = msg.dates

	case tea.KeyMsg:
		if m.acc == nil {
			return m, nil
		}
		switch msg.String() {
		case "c":
			clipboard.WriteAll(m.acc.RegisterNumber) //nolint:errcheck // best-effort copy
			m.copied = true
		case "o":
			if len(m.acc.Images) > 0 {
				browser.Open(m.acc.Images[0]) //nolint:errcheck // best-effort browser open
			}
		case "b":
			return m, navigateCmd("/accomodation/" + m.regNumber + "/booking")
		}
	}
	return m, nil
}

func (m detailModel) View() string {
	if m.errMsg != "" {
		return "\n  " + errorStyle.Render(m.errMsg)
	}
	if m.acc == nil {
		return "\n  " + dimStyle.Render("loading " + m.regNumber + "...")
	}

	a := m.acc
	var b strings.Builder

	title := a.Location.City
	if title == "" {
		title = a.RegisterNumber
	}
	b.WriteString("\n  " + selectedStyle.Render(title))
	if a.Category != "" {
		b.WriteString("  " + CategoryStyle(a.Category).Render(a.Category))
	}
	b.WriteString("  " + metaStyle.Render(a.RegisterNumber))
	if m.copied {
		b.WriteString(" " + okStyle.Render("copied"))
	}
	b.WriteString("\n\n")

	b.WriteString("  " + starBar(m.stars) + "\n")
	b.WriteString("  " + priceStyle.Render(fmt.Sprintf("%.2f €/night", a.PricePerNight)) +
		metaStyle.Render(fmt.Sprintf("  up to %d guests", a.NumOfGuests)) + "\n\n")

	b.WriteString(fmt.Sprintf("  %s %d beds · %d bedrooms · %d bathrooms",
		metaStyle.Render("·"), a.NumOfBeds, a.NumOfBedRooms, a.NumOfBathRooms))
	if a.Area > 0 {
		b.WriteString(fmt.Sprintf(" · %.0f m²", a.Area))
	}
	b.WriteString("\n")
	b.WriteString("  " + normalStyle.Render(a.Location.Direction) + " " +
		metaStyle.Render(a.Location.Zip) + "\n")

	if len(a.Services) > 0 {
		b.WriteString("\n  " + sectionHeaderStyle.Render("services") + " " +
			dimStyle.Render(strings.Join(a.Services, ", ")) + "\n")
	}
	if len(a.Rules) > 0 {
		b.WriteString("  " + sectionHeaderStyle.Render("rules") + "    " +
			dimStyle.Render(strings.Join(a.Rules, ", ")) + "\n")
	}

	if len(m.dates) > 0 {
		b.WriteString("\n  " + sectionHeaderStyle.Render("already booked") + "\n")
		for _, d := range m.dates {
			b.WriteString("    " + dimStyle.Render(d.CheckIn.Format("2006-01-02")+" → "+d.CheckOut.Format("2006-01-02")) + "\n")
		}
	}

	b.WriteString("\n  " + metaStyle.Render("host:") + " " +
		normalStyle.Render(a.Host.Name+" "+a.Host.Surname) + "\n")
	return b.String()
}

package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriagisbert/stayloom/internal/store"
	"github.com/adriagisbert/stayloom/pkg/domain"
)

const dateLayout = "2006-01-02"

// bookingDoneMsg carries the outcome of the payment-then-booking submission.
type bookingDoneMsg struct {
	booking *domain.Booking
	err     error
}

// bookingPrepMsg carries the data the form needs: the listing (for the
// nightly price) and its occupied dates, freshly fetched.
type bookingPrepMsg struct {
	acc   *domain.Accommodation
	dates []domain.DateRange
	err   error
}

// serviceFeeRate is the platform cut added on top of the stay price.
const serviceFeeRate = 0.10

// bookingFormModel composes a booking draft for one listing and submits it.
// Session-gated; the guard never routes here logged out.
type bookingFormModel struct {
	accommodations *store.AccommodationStore
	bookings       *store.BookingStore
	regNumber      string

	acc    *domain.Accommodation
	dates  []domain.DateRange
	fields []authField
	cursor int
	busy   bool
	errMsg string
	width  int
	height int
}

func newBookingFormModel(accommodations *store.AccommodationStore, bookings *store.BookingStore, regNumber string) bookingFormModel {
	return bookingFormModel{
		accommodations: accommodations,
		bookings:       bookings,
		regNumber:      regNumber,
		fields: []authField{
			{label: "check-in  (yyyy-mm-dd)"},
			{label: "check-out (yyyy-mm-dd)"},
			{label: "guests                "},
			{label: "promo code (optional) "},
			{label: "pay with  (card)      ", value: "card"},
		},
	}
}

func (m bookingFormModel) Init() tea.Cmd {
	accommodations := m.accommodations
	bookings := m.bookings
	reg := m.regNumber
	return func() tea.Msg {
		ctx := context.Background()
		acc, err := accommodations.ByRegisterNumber(ctx, reg)
		if err != nil {
			return bookingPrepMsg{err: err}
		}
		dates, err := bookings.AccommodationBookingDates(ctx, reg)
		if err != nil {
			return bookingPrepMsg{err: err}
		}
		return bookingPrepMsg{acc: acc, dates: dates}
	}
}

// draft parses the form into a booking draft. Returns a user-facing error for
// anything malformed.
func (m *bookingFormModel) draft() (store.BookingDraft, error) {
	var d store.BookingDraft
	checkIn, err := time.Parse(dateLayout, strings.TrimSpace(m.fields[0].value))
	if err != nil {
		return d, fmt.Errorf("check-in: use yyyy-mm-dd")
	}
	checkOut, err := time.Parse(dateLayout, strings.TrimSpace(m.fields[1].value))
	if err != nil {
		return d, fmt.Errorf("check-out: use yyyy-mm-dd")
	}
	if !checkOut.After(checkIn) {
		return d, fmt.Errorf("check-out must be after check-in")
	}
	guests, err := strconv.Atoi(strings.TrimSpace(m.fields[2].value))
	if err != nil || guests < 1 {
		return d, fmt.Errorf("guests: enter a number")
	}
	if m.acc != nil && guests > m.acc.NumOfGuests {
		return d, fmt.Errorf("this place takes up to %d guests", m.acc.NumOfGuests)
	}
	for _, r := range m.dates {
		if checkIn.Before(r.CheckOut) && r.CheckIn.Before(checkOut) {
			return d, fmt.Errorf("those dates are already booked")
		}
	}

	nights := checkOut.Sub(checkIn).Hours() / 24
	amount := 0.0
	if m.acc != nil {
		amount = m.acc.PricePerNight * nights
	}

	discount := 0.0
	if code := strings.TrimSpace(m.fields[3].value); code != "" {
		pc, ok := m.resolvePromoCode(code)
		if !ok {
			return d, fmt.Errorf("promo code %s is not valid here", code)
		}
		discount = amount * pc.Discount
	}

	d = store.BookingDraft{
		RegisterNumber: m.regNumber,
		CheckIn:        checkIn,
		CheckOut:       checkOut,
		NumOfGuests:    guests,
		Amount:         amount,
		Discount:       discount,
		ServiceFee:     amount * serviceFeeRate,
		PaymentMethod:  strings.TrimSpace(m.fields[4].value),
	}
	return d, nil
}

// resolvePromoCode matches code against the listing's promo codes,
// case-insensitively.
func (m *bookingFormModel) resolvePromoCode(code string) (domain.PromoCode, bool) {
	if m.acc == nil {
		return domain.PromoCode{}, false
	}
	for _, pc := range m.acc.PromoCodes {
		if strings.EqualFold(pc.Code, code) {
			return pc, true
		}
	}
	return domain.PromoCode{}, false
}

func (m bookingFormModel) submit(d store.BookingDraft) tea.Cmd {
	bookings := m.bookings
	return func() tea.Msg {
		booking, err := bookings.AddNewBooking(context.Background(), d)
		return bookingDoneMsg{booking: booking, err: err}
	}
}

func (m bookingFormModel) Update(msg tea.Msg) (bookingFormModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case bookingPrepMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.acc = msg.acc
		m.dates = msg.dates

	case bookingDoneMsg:
		m.busy = false
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, navigateCmd("/bookings/" + msg.booking.ID.String())

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
			d, err := m.draft()
			if err != nil {
				m.errMsg = err.Error()
				return m, nil
			}
			m.busy = true
			m.errMsg = ""
			return m, m.submit(d)
		default:
			m.fields[m.cursor].value = editRune(m.fields[m.cursor].value, msg.String())
		}
	}
	return m, nil
}

func (m bookingFormModel) View() string {
	var b strings.Builder

	b.WriteString("\n  " + selectedStyle.Render("Book your stay") + "  " +
		metaStyle.Render(m.regNumber) + "\n\n")

	if m.acc != nil {
		b.WriteString("  " + normalStyle.Render(m.acc.Location.City) + "  " +
			priceStyle.Render(fmt.Sprintf("%.2f €/night", m.acc.PricePerNight)) + "\n\n")
	}

	for i, f := range m.fields {
		b.WriteString(renderField(f.label, f.value, i == m.cursor && !m.busy, false) + "\n")
	}

	if d, err := m.draft(); err == nil {
		b.WriteString("\n  " + metaStyle.Render("total") + " " +
			priceStyle.Render(fmt.Sprintf("%.2f €", d.TotalPrice())) + " " +
			metaStyle.Render(fmt.Sprintf("(incl. %.2f € service fee)", d.ServiceFee)))
		if d.Discount > 0 {
			b.WriteString(" " + okStyle.Render(fmt.Sprintf("-%.2f € promo", d.Discount)))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	switch {
	case m.busy:
		b.WriteString("  " + dimStyle.Render("processing payment...") + "\n")
	case m.errMsg != "":
		b.WriteString("  " + errorStyle.Render(m.errMsg) + "\n")
	}

	if len(m.dates) > 0 {
		b.WriteString("\n  " + sectionHeaderStyle.Render("unavailable") + "\n")
		for _, r := range m.dates {
			b.WriteString("    " + dimStyle.Render(r.CheckIn.Format(dateLayout)+" → "+r.CheckOut.Format(dateLayout)) + "\n")
		}
	}
	return b.String()
}

// bookingLoadedMsg carries one fetched booking.
type bookingLoadedMsg struct {
	booking *domain.Booking
	err     error
}

// bookingDetailModel shows one confirmed booking.
type bookingDetailModel struct {
	bookings  *store.BookingStore
	bookingID string
	booking   *domain.Booking
	errMsg    string
}

func newBookingDetailModel(bookings *store.BookingStore, bookingID string) bookingDetailModel {
	return bookingDetailModel{bookings: bookings, bookingID: bookingID}
}

func (m bookingDetailModel) Init() tea.Cmd {
	bookings := m.bookings
	id := m.bookingID
	return func() tea.Msg {
		booking, err := bookings.ByBookingID(context.Background(), id)
		return bookingLoadedMsg{booking: booking, err: err}
	}
}

func (m bookingDetailModel) Update(msg tea.Msg) (bookingDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case bookingLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.booking = msg.booking
	case tea.KeyMsg:
		if msg.String() == "enter" && m.booking != nil {
			return m, navigateCmd("/accomodation/" + m.booking.RegisterNumber)
		}
	}
	return m, nil
}

func (m bookingDetailModel) View() string {
	if m.errMsg != "" {
		return "\n  " + errorStyle.Render(m.errMsg)
	}
	if m.booking == nil {
		return "\n  " + dimStyle.Render("loading booking...")
	}

	bk := m.booking
	var b strings.Builder
	b.WriteString("\n  " + selectedStyle.Render("Booking confirmed") + "  " +
		okStyle.Render(bk.ID.String()) + "\n\n")
	b.WriteString("  " + metaStyle.Render("stay     ") + " " +
		normalStyle.Render(bk.CheckIn.Format(dateLayout)+" → "+bk.CheckOut.Format(dateLayout)) + "\n")
	b.WriteString("  " + metaStyle.Render("listing  ") + " " + normalStyle.Render(bk.RegisterNumber) + "\n")
	b.WriteString("  " + metaStyle.Render("guests   ") + " " + normalStyle.Render(strconv.Itoa(bk.NumOfGuests)) + "\n")
	b.WriteString("  " + metaStyle.Render("payment  ") + " " + dimStyle.Render(bk.PaymentID.String()) + "\n")
	b.WriteString("  " + metaStyle.Render("total    ") + " " +
		priceStyle.Render(fmt.Sprintf("%.2f €", bk.TotalPrice)) + "\n")
	b.WriteString("\n  " + helpEntry("enter", "view listing") + "\n")
	return b.String()
}

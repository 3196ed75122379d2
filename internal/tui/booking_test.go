package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/adriagisbert/stayloom/pkg/domain"
)

func testBookingForm() bookingFormModel {
	m := newBookingFormModel(nil, nil, "REG123")
	m.acc = &domain.Accommodation{
		RegisterNumber: "REG123",
		PricePerNight:  100,
		NumOfGuests:    4,
		PromoCodes: []domain.PromoCode{
			{Code: "SUMMER10", Discount: 0.10},
		},
	}
	return m
}

func fillBookingForm(m *bookingFormModel, checkIn, checkOut, guests, promo string) {
	m.fields[0].value = checkIn
	m.fields[1].value = checkOut
	m.fields[2].value = guests
	m.fields[3].value = promo
}

func TestBookingDraftAppliesPromoCode(t *testing.T) {
	m := testBookingForm()
	fillBookingForm(&m, "2026-09-01", "2026-09-04", "2", "summer10")

	d, err := m.draft()
	if err != nil {
		t.Fatalf("draft() error: %v", err)
	}
	// 3 nights x 100 = 300; 10% promo off; 10% service fee on the stay price.
	if d.Amount != 300 {
		t.Errorf("Amount = %.2f, want 300", d.Amount)
	}
	if d.Discount != 30 {
		t.Errorf("Discount = %.2f, want 30 (case-insensitive promo match)", d.Discount)
	}
	if got := d.TotalPrice(); got != 300 {
		t.Errorf("TotalPrice() = %.2f, want 300-30+30", got)
	}
}

func TestBookingDraftRejectsUnknownPromoCode(t *testing.T) {
	m := testBookingForm()
	fillBookingForm(&m, "2026-09-01", "2026-09-04", "2", "WINTER99")

	if _, err := m.draft(); err == nil || !strings.Contains(err.Error(), "promo code") {
		t.Errorf("draft() err = %v, want promo code rejection", err)
	}
}

func TestBookingDraftWithoutPromoHasNoDiscount(t *testing.T) {
	m := testBookingForm()
	fillBookingForm(&m, "2026-09-01", "2026-09-02", "2", "")

	d, err := m.draft()
	if err != nil {
		t.Fatalf("draft() error: %v", err)
	}
	if d.Discount != 0 {
		t.Errorf("Discount = %.2f, want 0", d.Discount)
	}
	if d.PaymentMethod != "card" {
		t.Errorf("PaymentMethod = %q, want the card default", d.PaymentMethod)
	}
}

func TestBookingDraftRejectsOccupiedDates(t *testing.T) {
	m := testBookingForm()
	m.dates = []domain.DateRange{{
		CheckIn:  time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		CheckOut: time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
	}}
	fillBookingForm(&m, "2026-09-01", "2026-09-03", "2", "")

	if _, err := m.draft(); err == nil || !strings.Contains(err.Error(), "already booked") {
		t.Errorf("draft() err = %v, want overlap rejection", err)
	}
}

func TestBookingDraftRejectsTooManyGuests(t *testing.T) {
	m := testBookingForm()
	fillBookingForm(&m, "2026-09-01", "2026-09-03", "9", "")

	if _, err := m.draft(); err == nil {
		t.Error("draft() accepted more guests than the listing takes")
	}
}

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/adriagisbert/stayloom/pkg/client"
	"github.com/adriagisbert/stayloom/pkg/domain"
)

type fakeBookingAPI struct {
	paymentErr error
	bookingErr error
	payment    domain.Payment

	paymentCalls int
	bookingCalls int
	lastPayment  client.CreatePaymentRequest
	lastBooking  client.CreateBookingRequest
}

func (f *fakeBookingAPI) Booking(_ context.Context, _ string) (*domain.Booking, error) {
	return &domain.Booking{}, nil
}

func (f *fakeBookingAPI) BookingDates(_ context.Context, _ string) ([]domain.DateRange, error) {
	return nil, nil
}

func (f *fakeBookingAPI) CreatePayment(_ context.Context, req client.CreatePaymentRequest) (*domain.Payment, error) {
	f.paymentCalls++
	f.lastPayment = req
	if f.paymentErr != nil {
		return nil, f.paymentErr
	}
	return &f.payment, nil
}

func (f *fakeBookingAPI) CreateBooking(_ context.Context, req client.CreateBookingRequest) (*domain.Booking, error) {
	f.bookingCalls++
	f.lastBooking = req
	if f.bookingErr != nil {
		return nil, f.bookingErr
	}
	return &domain.Booking{ID: uuid.New(), PaymentID: req.PaymentID, RegisterNumber: req.RegisterNumber}, nil
}

func draft() BookingDraft {
	return BookingDraft{
		RegisterNumber: "REG123",
		CheckIn:        time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC),
		CheckOut:       time.Date(2023, 7, 8, 0, 0, 0, 0, time.UTC),
		NumOfGuests:    2,
		Amount:         500,
		Discount:       50,
		ServiceFee:     25,
		PaymentMethod:  "card",
	}
}

func TestAddNewBookingPaymentFirst(t *testing.T) {
	payID := uuid.New()
	api := &fakeBookingAPI{payment: domain.Payment{ID: payID, Amount: 475}}
	b := NewBookingStore(api)

	booking, err := b.AddNewBooking(context.Background(), draft())
	if err != nil {
		t.Fatalf("AddNewBooking() error: %v", err)
	}
	if api.paymentCalls != 1 || api.bookingCalls != 1 {
		t.Fatalf("calls = %d payment / %d booking, want 1/1", api.paymentCalls, api.bookingCalls)
	}
	if api.lastBooking.PaymentID != payID {
		t.Errorf("booking PaymentID = %v, want the registered payment %v", api.lastBooking.PaymentID, payID)
	}
	if api.lastPayment.Amount != 475 {
		t.Errorf("payment amount = %v, want 475 (amount - discount + fee)", api.lastPayment.Amount)
	}
	if booking.RegisterNumber != "REG123" {
		t.Errorf("RegisterNumber = %q, want REG123", booking.RegisterNumber)
	}
}

func TestAddNewBookingAbortsOnPaymentFailure(t *testing.T) {
	api := &fakeBookingAPI{paymentErr: &client.HTTPError{StatusCode: 402, Message: "card declined"}}
	b := NewBookingStore(api)

	_, err := b.AddNewBooking(context.Background(), draft())
	if err == nil {
		t.Fatal("expected error when payment registration fails")
	}
	if api.bookingCalls != 0 {
		t.Errorf("booking calls = %d, want 0 — no booking without a payment", api.bookingCalls)
	}
}

func TestAddNewBookingSurfacesBookingFailure(t *testing.T) {
	api := &fakeBookingAPI{
		payment:    domain.Payment{ID: uuid.New()},
		bookingErr: errors.New("conflict"),
	}
	b := NewBookingStore(api)

	_, err := b.AddNewBooking(context.Background(), draft())
	if err == nil {
		t.Fatal("expected error when booking submission fails")
	}
	if api.paymentCalls != 1 {
		t.Errorf("payment calls = %d, want 1", api.paymentCalls)
	}
}

func TestBookingDraftTotalPrice(t *testing.T) {
	d := draft()
	if got := d.TotalPrice(); got != 475 {
		t.Errorf("TotalPrice() = %v, want 475", got)
	}
}

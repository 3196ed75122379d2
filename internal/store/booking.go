package store

import (
	"context"
	"fmt"
	"time"

	"github.com/adriagisbert/stayloom/pkg/client"
	"github.com/adriagisbert/stayloom/pkg/domain"
)

type bookingAPI interface {
	Booking(ctx context.Context, bookingID string) (*domain.Booking, error)
	BookingDates(ctx context.Context, regNumber string) ([]domain.DateRange, error)
	CreatePayment(ctx context.Context, req client.CreatePaymentRequest) (*domain.Payment, error)
	CreateBooking(ctx context.Context, req client.CreateBookingRequest) (*domain.Booking, error)
}

// BookingDraft is the in-memory booking being composed by the booking view.
type BookingDraft struct {
	RegisterNumber string
	CheckIn        time.Time
	CheckOut       time.Time
	NumOfGuests    int
	Amount         float64
	Discount       float64
	ServiceFee     float64
	PaymentMethod  string
}

// TotalPrice is the amount charged: base minus discount plus service fee.
func (d BookingDraft) TotalPrice() float64 {
	return d.Amount - d.Discount + d.ServiceFee
}

// BookingStore mediates booking reads and the booking-creation saga.
type BookingStore struct {
	api bookingAPI
}

// NewBookingStore creates a booking store.
func NewBookingStore(api bookingAPI) *BookingStore {
	return &BookingStore{api: api}
}

// ByBookingID fetches one booking.
func (b *BookingStore) ByBookingID(ctx context.Context, bookingID string) (*domain.Booking, error) {
	return b.api.Booking(ctx, bookingID)
}

// AccommodationBookingDates lists the occupied date ranges of a listing.
// Callers re-fetch before booking; cached copies of this list are never
// trusted for availability.
func (b *BookingStore) AccommodationBookingDates(ctx context.Context, regNumber string) ([]domain.DateRange, error) {
	return b.api.BookingDates(ctx, regNumber)
}

// AddNewBooking runs the two-step booking saga: register the payment, then —
// only if that succeeded — submit the booking referencing the payment's id.
// A payment failure aborts before any booking request is issued; nothing was
// committed, so no compensation is needed.
func (b *BookingStore) AddNewBooking(ctx context.Context, draft BookingDraft) (*domain.Booking, error) {
	payment, err := b.api.CreatePayment(ctx, client.CreatePaymentRequest{
		Amount: draft.TotalPrice(),
		Method: draft.PaymentMethod,
	})
	if err != nil {
		return nil, fmt.Errorf("register payment: %w", err)
	}

	booking, err := b.api.CreateBooking(ctx, client.CreateBookingRequest{
		RegisterNumber: draft.RegisterNumber,
		PaymentID:      payment.ID,
		CheckIn:        draft.CheckIn,
		CheckOut:       draft.CheckOut,
		NumOfGuests:    draft.NumOfGuests,
		Amount:         draft.Amount,
		Discount:       draft.Discount,
		ServiceFee:     draft.ServiceFee,
		TotalPrice:     draft.TotalPrice(),
	})
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return booking, nil
}

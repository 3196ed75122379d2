package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/adriagisbert/stayloom/pkg/domain"
)

// CreateBookingRequest is the payload for creating a booking. PaymentID must
// reference an already-registered payment.
type CreateBookingRequest struct {
	RegisterNumber string    `json:"registerNumber"`
	PaymentID      uuid.UUID `json:"paymentId"`
	CheckIn        time.Time `json:"checkInDate"`
	CheckOut       time.Time `json:"checkOutDate"`
	NumOfGuests    int       `json:"numOfGuests"`
	Amount         float64   `json:"amount"`
	Discount       float64   `json:"disccount,omitempty"`
	ServiceFee     float64   `json:"serviceFee"`
	TotalPrice     float64   `json:"totalPrice"`
}

// CreatePaymentRequest is the payload for registering a payment.
type CreatePaymentRequest struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
}

// Booking fetches a single booking by id.
func (c *Client) Booking(ctx context.Context, bookingID string) (*domain.Booking, error) {
	var b domain.Booking
	if err := c.get(ctx, "/bookings/"+url.PathEscape(bookingID), &b); err != nil {
		return nil, fmt.Errorf("client.Booking: %w", err)
	}
	return &b, nil
}

// BookingDates lists the occupied date ranges of an accommodation. The result
// may be stale the moment it returns; callers re-fetch before booking rather
// than trusting a cached copy.
func (c *Client) BookingDates(ctx context.Context, regNumber string) ([]domain.DateRange, error) {
	var dates []domain.DateRange
	if err := c.get(ctx, "/bookings/"+url.PathEscape(regNumber)+"/dates", &dates); err != nil {
		return nil, fmt.Errorf("client.BookingDates: %w", err)
	}
	return dates, nil
}

// UserBookings lists the bookings made by a user.
func (c *Client) UserBookings(ctx context.Context, userID int) ([]domain.Booking, error) {
	var bookings []domain.Booking
	if err := c.get(ctx, "/users/"+strconv.Itoa(userID)+"/bookings", &bookings); err != nil {
		return nil, fmt.Errorf("client.UserBookings: %w", err)
	}
	return bookings, nil
}

// CreatePayment registers a payment and returns it with its server-assigned id.
func (c *Client) CreatePayment(ctx context.Context, req CreatePaymentRequest) (*domain.Payment, error) {
	var p domain.Payment
	if err := c.post(ctx, "/payments", req, &p); err != nil {
		return nil, fmt.Errorf("client.CreatePayment: %w", err)
	}
	return &p, nil
}

// CreateBooking submits a booking referencing an existing payment.
func (c *Client) CreateBooking(ctx context.Context, req CreateBookingRequest) (*domain.Booking, error) {
	var b domain.Booking
	if err := c.post(ctx, "/bookings", req, &b); err != nil {
		return nil, fmt.Errorf("client.CreateBooking: %w", err)
	}
	return &b, nil
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a confirmed reservation of an accommodation. Every booking
// references the payment that was registered before it was created.
type Booking struct {
	ID             uuid.UUID `json:"id"`
	UserID         int       `json:"userId"`
	RegisterNumber string    `json:"registerNumber"`
	PaymentID      uuid.UUID `json:"paymentId"`
	CheckIn        time.Time `json:"checkInDate"`
	CheckOut       time.Time `json:"checkOutDate"`
	NumOfGuests    int       `json:"numOfGuests"`
	Amount         float64   `json:"amount"`
	Discount       float64   `json:"disccount,omitempty"`
	ServiceFee     float64   `json:"serviceFee"`
	TotalPrice     float64   `json:"totalPrice"`
	CreatedAt      time.Time `json:"createdAt"`
}

// Payment is a registered payment. It exists before the booking that
// references it; a booking is never created without one.
type Payment struct {
	ID        uuid.UUID `json:"id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method"`
	CreatedAt time.Time `json:"createdAt"`
}

// DateRange is an occupied check-in/check-out interval of an accommodation,
// used to block already-booked dates.
type DateRange struct {
	CheckIn  time.Time `json:"checkInDate"`
	CheckOut time.Time `json:"checkOutDate"`
}

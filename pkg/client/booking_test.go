package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/adriagisbert/stayloom/pkg/domain"
)

func TestBookingDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bookings/REG123/dates" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode([]domain.DateRange{ //nolint:errcheck
			{
				CheckIn:  time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC),
				CheckOut: time.Date(2023, 7, 8, 0, 0, 0, 0, time.UTC),
			},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	dates, err := c.BookingDates(context.Background(), "REG123")
	if err != nil {
		t.Fatalf("BookingDates() error: %v", err)
	}
	if len(dates) != 1 {
		t.Fatalf("got %d ranges, want 1", len(dates))
	}
	if dates[0].CheckIn.Day() != 1 || dates[0].CheckOut.Day() != 8 {
		t.Errorf("range = %v..%v, want Jul 1..Jul 8", dates[0].CheckIn, dates[0].CheckOut)
	}
}

func TestBookingDates_NoSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unauthenticated calls carry no Authorization header at all.
		if r.Header.Get("Authorization") != "" {
			t.Errorf("Authorization = %q, want empty", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "missing token"}) //nolint:errcheck
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken(""))
	_, err := c.BookingDates(context.Background(), "REG123")
	if !IsStatus(err, 401) {
		t.Errorf("IsStatus(err, 401) = false, want true (err = %v)", err)
	}
}

func TestCreatePayment(t *testing.T) {
	id := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payments" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req CreatePaymentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Payment{ //nolint:errcheck
			ID:     id,
			Amount: req.Amount,
			Method: req.Method,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	p, err := c.CreatePayment(context.Background(), CreatePaymentRequest{Amount: 420.5, Method: "card"})
	if err != nil {
		t.Fatalf("CreatePayment() error: %v", err)
	}
	if p.ID != id {
		t.Errorf("ID = %v, want %v", p.ID, id)
	}
	if p.Amount != 420.5 {
		t.Errorf("Amount = %v, want 420.5", p.Amount)
	}
}

func TestCreateBooking(t *testing.T) {
	payID := uuid.New()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bookings" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		var req CreateBookingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if req.PaymentID != payID {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"message": "unknown payment"}) //nolint:errcheck
			return
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(domain.Booking{ //nolint:errcheck
			ID:             uuid.New(),
			RegisterNumber: req.RegisterNumber,
			PaymentID:      req.PaymentID,
		})
	}))
	defer srv.Close()

	c := New(srv.URL, StaticToken("tok"))
	b, err := c.CreateBooking(context.Background(), CreateBookingRequest{
		RegisterNumber: "REG123",
		PaymentID:      payID,
	})
	if err != nil {
		t.Fatalf("CreateBooking() error: %v", err)
	}
	if b.RegisterNumber != "REG123" {
		t.Errorf("RegisterNumber = %q, want %q", b.RegisterNumber, "REG123")
	}
	if b.PaymentID != payID {
		t.Errorf("PaymentID = %v, want %v", b.PaymentID, payID)
	}
}

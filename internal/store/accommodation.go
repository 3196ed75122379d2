package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/adriagisbert/stayloom/internal/session"
	"github.com/adriagisbert/stayloom/pkg/domain"
)

type accommodationAPI interface {
	Accommodation(ctx context.Context, regNumber string) (*domain.Accommodation, error)
	UserAccommodations(ctx context.Context, userID int) ([]domain.Accommodation, error)
	SavedAccommodations(ctx context.Context, userID int) ([]domain.Accommodation, error)
	UserBookings(ctx context.Context, userID int) ([]domain.Booking, error)
	StarAverage(ctx context.Context, regNumber string) (float64, error)
	CreateAccommodation(ctx context.Context, a domain.Accommodation) (*domain.Accommodation, error)
	DeleteAccommodation(ctx context.Context, regNumber string) error
}

// AccommodationStore caches one accommodation at a time — the listing being
// viewed, or the draft being built by the upload wizard. The cache is
// replaced wholesale on each fetch and never trusted across navigations that
// need freshness.
//
// Fetches write the cache from command goroutines while views read it on the
// event loop, so access goes through the mutex-guarded Current/SetState pair.
type AccommodationStore struct {
	api      accommodationAPI
	sessions session.Store

	mu      sync.RWMutex
	current domain.Accommodation
}

// NewAccommodationStore creates an accommodation store.
func NewAccommodationStore(api accommodationAPI, sessions session.Store) *AccommodationStore {
	return &AccommodationStore{api: api, sessions: sessions}
}

// ByRegisterNumber fetches a listing and replaces the cache with it.
func (a *AccommodationStore) ByRegisterNumber(ctx context.Context, regNumber string) (*domain.Accommodation, error) {
	acc, err := a.api.Accommodation(ctx, regNumber)
	if err != nil {
		return nil, fmt.Errorf("accommodation %s: %w", regNumber, err)
	}
	a.SetState(*acc)
	return acc, nil
}

// Current returns a copy of the cached accommodation.
func (a *AccommodationStore) Current() domain.Accommodation {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.current
}

// SetState replaces the cached accommodation wholesale.
func (a *AccommodationStore) SetState(acc domain.Accommodation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.current = acc
}

// Reset drops the cache, e.g. on logout.
func (a *AccommodationStore) Reset() {
	a.SetState(domain.Accommodation{})
}

// AllUserAccommodations lists the session user's published listings.
func (a *AccommodationStore) AllUserAccommodations(ctx context.Context) ([]domain.Accommodation, error) {
	s, ok := a.sessions.Get()
	if !ok {
		return nil, errors.New("not logged in")
	}
	return a.api.UserAccommodations(ctx, s.UserID)
}

// AllUserBookings lists the session user's bookings.
func (a *AccommodationStore) AllUserBookings(ctx context.Context) ([]domain.Booking, error) {
	s, ok := a.sessions.Get()
	if !ok {
		return nil, errors.New("not logged in")
	}
	return a.api.UserBookings(ctx, s.UserID)
}

// AllUserSavedAccommodations lists the session user's saved listings.
func (a *AccommodationStore) AllUserSavedAccommodations(ctx context.Context) ([]domain.Accommodation, error) {
	s, ok := a.sessions.Get()
	if !ok {
		return nil, errors.New("not logged in")
	}
	return a.api.SavedAccommodations(ctx, s.UserID)
}

// StarAverage fetches the mean star rating of a listing.
func (a *AccommodationStore) StarAverage(ctx context.Context, regNumber string) (float64, error) {
	return a.api.StarAverage(ctx, regNumber)
}

// Publish submits the wizard draft as a new listing and replaces the cache
// with the server's copy.
func (a *AccommodationStore) Publish(ctx context.Context) (*domain.Accommodation, error) {
	created, err := a.api.CreateAccommodation(ctx, a.Current())
	if err != nil {
		return nil, fmt.Errorf("publish accommodation: %w", err)
	}
	a.SetState(*created)
	return created, nil
}

// DeleteByRegNumber removes a listing.
func (a *AccommodationStore) DeleteByRegNumber(ctx context.Context, regNumber string) error {
	if err := a.api.DeleteAccommodation(ctx, regNumber); err != nil {
		return fmt.Errorf("delete accommodation %s: %w", regNumber, err)
	}
	if a.Current().RegisterNumber == regNumber {
		a.Reset()
	}
	return nil
}

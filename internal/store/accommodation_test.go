package store

import (
	"context"
	"sync"
	"testing"

	"github.com/adriagisbert/stayloom/internal/session"
	"github.com/adriagisbert/stayloom/pkg/domain"
)

type fakeAccommodationAPI struct {
	accommodation *domain.Accommodation
	err           error

	deleteCalls int
	lastDeleted string
	listedUser  int
}

func (f *fakeAccommodationAPI) Accommodation(_ context.Context, _ string) (*domain.Accommodation, error) {
	return f.accommodation, f.err
}

func (f *fakeAccommodationAPI) UserAccommodations(_ context.Context, userID int) ([]domain.Accommodation, error) {
	f.listedUser = userID
	return []domain.Accommodation{{RegisterNumber: "REG1"}}, nil
}

func (f *fakeAccommodationAPI) SavedAccommodations(_ context.Context, userID int) ([]domain.Accommodation, error) {
	f.listedUser = userID
	return []domain.Accommodation{{RegisterNumber: "REG2"}}, nil
}

func (f *fakeAccommodationAPI) UserBookings(_ context.Context, userID int) ([]domain.Booking, error) {
	f.listedUser = userID
	return []domain.Booking{{RegisterNumber: "REG1"}}, nil
}

func (f *fakeAccommodationAPI) StarAverage(_ context.Context, _ string) (float64, error) {
	return 4.5, nil
}

func (f *fakeAccommodationAPI) CreateAccommodation(_ context.Context, a domain.Accommodation) (*domain.Accommodation, error) {
	created := a
	created.RegisterNumber = "REG-NEW"
	return &created, nil
}

func (f *fakeAccommodationAPI) DeleteAccommodation(_ context.Context, regNumber string) error {
	f.deleteCalls++
	f.lastDeleted = regNumber
	return nil
}

func loggedInSessions(t *testing.T) *session.MemoryStore {
	t.Helper()
	sessions := session.NewMemory()
	if err := sessions.Set(domain.Session{Token: "t1", UserID: 7, Email: "a@b.com"}); err != nil {
		t.Fatal(err)
	}
	return sessions
}

func TestByRegisterNumberReplacesCacheWholesale(t *testing.T) {
	api := &fakeAccommodationAPI{accommodation: &domain.Accommodation{
		RegisterNumber: "REG123",
		NumOfBeds:      3,
		Location:       domain.Location{City: "Valencia"},
	}}
	a := NewAccommodationStore(api, loggedInSessions(t))
	a.SetState(domain.Accommodation{RegisterNumber: "OLD", NumOfGuests: 9})

	got, err := a.ByRegisterNumber(context.Background(), "REG123")
	if err != nil {
		t.Fatalf("ByRegisterNumber() error: %v", err)
	}
	if got.RegisterNumber != "REG123" {
		t.Errorf("RegisterNumber = %q, want REG123", got.RegisterNumber)
	}
	// Wholesale overwrite: nothing of the previous cache survives.
	if cur := a.Current(); cur.NumOfGuests != 0 || cur.RegisterNumber != "REG123" {
		t.Errorf("cache = %+v, want fully replaced", cur)
	}
}

func TestUserScopedListingsUseSessionID(t *testing.T) {
	api := &fakeAccommodationAPI{}
	a := NewAccommodationStore(api, loggedInSessions(t))

	if _, err := a.AllUserAccommodations(context.Background()); err != nil {
		t.Fatalf("AllUserAccommodations() error: %v", err)
	}
	if api.listedUser != 7 {
		t.Errorf("listed user = %d, want session user 7", api.listedUser)
	}

	if _, err := a.AllUserBookings(context.Background()); err != nil {
		t.Fatalf("AllUserBookings() error: %v", err)
	}
	if _, err := a.AllUserSavedAccommodations(context.Background()); err != nil {
		t.Fatalf("AllUserSavedAccommodations() error: %v", err)
	}
}

func TestUserScopedListingsRequireSession(t *testing.T) {
	a := NewAccommodationStore(&fakeAccommodationAPI{}, session.NewMemory())

	if _, err := a.AllUserAccommodations(context.Background()); err == nil {
		t.Error("expected error without a session")
	}
	if _, err := a.AllUserBookings(context.Background()); err == nil {
		t.Error("expected error without a session")
	}
}

func TestDeleteByRegNumberClearsMatchingCache(t *testing.T) {
	api := &fakeAccommodationAPI{}
	a := NewAccommodationStore(api, loggedInSessions(t))
	a.SetState(domain.Accommodation{RegisterNumber: "REG123"})

	if err := a.DeleteByRegNumber(context.Background(), "REG123"); err != nil {
		t.Fatalf("DeleteByRegNumber() error: %v", err)
	}
	if api.deleteCalls != 1 || api.lastDeleted != "REG123" {
		t.Errorf("delete calls = %d (%q), want 1 (REG123)", api.deleteCalls, api.lastDeleted)
	}
	if a.Current().RegisterNumber != "" {
		t.Error("cache still holds the deleted listing")
	}
}

func TestPublishReplacesDraftWithServerCopy(t *testing.T) {
	a := NewAccommodationStore(&fakeAccommodationAPI{}, loggedInSessions(t))
	a.SetState(domain.Accommodation{NumOfBeds: 2})

	created, err := a.Publish(context.Background())
	if err != nil {
		t.Fatalf("Publish() error: %v", err)
	}
	if created.RegisterNumber != "REG-NEW" {
		t.Errorf("RegisterNumber = %q, want server-assigned REG-NEW", created.RegisterNumber)
	}
	if a.Current().RegisterNumber != "REG-NEW" {
		t.Error("cache not replaced with the server copy")
	}
}

func TestAccommodationCacheConcurrentFetchAndRead(t *testing.T) {
	api := &fakeAccommodationAPI{accommodation: &domain.Accommodation{RegisterNumber: "REG123"}}
	a := NewAccommodationStore(api, loggedInSessions(t))

	// A mount's fetch writes the cache from a command goroutine while the
	// wizard reads the draft on the event loop.
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			if _, err := a.ByRegisterNumber(context.Background(), "REG123"); err != nil {
				t.Error(err)
				return
			}
		}
	}()
	for i := 0; i < 200; i++ {
		_ = a.Current()
	}
	wg.Wait()

	if a.Current().RegisterNumber != "REG123" {
		t.Error("cache lost the fetched listing")
	}
}

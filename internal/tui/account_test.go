package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adriagisbert/stayloom/internal/session"
	"github.com/adriagisbert/stayloom/internal/store"
	"github.com/adriagisbert/stayloom/pkg/client"
	"github.com/adriagisbert/stayloom/pkg/domain"
)

// fakeProfileAPI backs the user store for account view tests.
type fakeProfileAPI struct {
	user        *domain.User
	updateCalls int
	lastUpdate  domain.User
	configCalls int
}

func (f *fakeProfileAPI) Login(_ context.Context, _, _ string) (domain.Session, error) {
	return domain.Session{}, nil
}

func (f *fakeProfileAPI) SignUp(_ context.Context, _ client.SignUpRequest) error { return nil }

func (f *fakeProfileAPI) ResetPassword(_ context.Context, _ client.ResetPasswordRequest) error {
	return nil
}

func (f *fakeProfileAPI) User(_ context.Context, _ int) (*domain.User, error) {
	return f.user, nil
}

func (f *fakeProfileAPI) UpdateUser(_ context.Context, u domain.User) error {
	f.updateCalls++
	f.lastUpdate = u
	return nil
}

func (f *fakeProfileAPI) UserConfiguration(_ context.Context, _ int) (*domain.UserConfiguration, error) {
	f.configCalls++
	return &domain.UserConfiguration{Language: "es", Currency: domain.Currency{Code: "EUR"}}, nil
}

func (f *fakeProfileAPI) UserAccommodations(_ context.Context, _ int) ([]domain.Accommodation, error) {
	return nil, nil
}

func newProfileModel(t *testing.T, api *fakeProfileAPI) accountModel {
	t.Helper()
	sessions := session.NewMemory()
	if err := sessions.Set(domain.Session{Token: "t1", UserID: 7, Email: "a@b.com"}); err != nil {
		t.Fatal(err)
	}
	users := store.NewUserStore(api, sessions)
	return newAccountModel(users, store.NewAccommodationStore(nil, sessions), "user-profile")
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestProfileLoadFetchesMissingPreferences(t *testing.T) {
	api := &fakeProfileAPI{user: &domain.User{ID: 7, Name: "Alice", Surname: "Vega", Email: "a@b.com"}}
	m := newProfileModel(t, api)

	msg := m.Init()().(accountLoadedMsg)
	if msg.err != nil {
		t.Fatalf("load error: %v", msg.err)
	}
	if api.configCalls != 1 {
		t.Errorf("config calls = %d, want 1 when the profile payload has none", api.configCalls)
	}
	if msg.user.Config == nil || msg.user.Config.Currency.Code != "EUR" {
		t.Errorf("loaded config = %+v, want EUR preferences attached", msg.user.Config)
	}

	m, _ = m.Update(msg)
	if !strings.Contains(m.View(), "es / EUR") {
		t.Error("profile view does not render the fetched preferences")
	}
}

func TestProfileLoadSkipsPreferencesWhenEmbedded(t *testing.T) {
	api := &fakeProfileAPI{user: &domain.User{
		ID: 7, Name: "Alice", Surname: "Vega",
		Config: &domain.UserConfiguration{Language: "en"},
	}}
	m := newProfileModel(t, api)

	m.Init()()
	if api.configCalls != 0 {
		t.Errorf("config calls = %d, want 0 when the profile embeds preferences", api.configCalls)
	}
}

func TestProfileEditSavesThroughStore(t *testing.T) {
	api := &fakeProfileAPI{user: &domain.User{ID: 7, Name: "Alice", Surname: "Vega", Email: "a@b.com"}}
	m := newProfileModel(t, api)

	loaded := m.Init()().(accountLoadedMsg)
	m, _ = m.Update(loaded)

	m, _ = m.Update(key("e"))
	if !m.isEditing() {
		t.Fatal("'e' did not enter edit mode")
	}

	// Append to the name field, then walk to the last field and save.
	m, _ = m.Update(key("x"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	var cmd tea.Cmd
	m, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("save produced no command")
	}

	saved, ok := cmd().(profileSavedMsg)
	if !ok {
		t.Fatalf("save command produced %T, want profileSavedMsg", cmd())
	}
	if saved.err != nil {
		t.Fatalf("save error: %v", saved.err)
	}
	if api.updateCalls != 1 {
		t.Fatalf("update calls = %d, want 1", api.updateCalls)
	}
	if api.lastUpdate.Name != "Alicex" || api.lastUpdate.Surname != "Vega" {
		t.Errorf("adapter received %+v, want the edited name", api.lastUpdate)
	}

	m, _ = m.Update(saved)
	if m.isEditing() {
		t.Error("still editing after a successful save")
	}
	if !strings.Contains(m.View(), "Alicex") {
		t.Error("profile view does not show the saved name")
	}
}

func TestProfileEditEscCancels(t *testing.T) {
	api := &fakeProfileAPI{user: &domain.User{ID: 7, Name: "Alice", Surname: "Vega"}}
	m := newProfileModel(t, api)
	loaded := m.Init()().(accountLoadedMsg)
	m, _ = m.Update(loaded)

	m, _ = m.Update(key("e"))
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.isEditing() {
		t.Error("esc did not leave edit mode")
	}
	if api.updateCalls != 0 {
		t.Errorf("update calls = %d, want 0 after cancel", api.updateCalls)
	}
}

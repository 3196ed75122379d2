package domain

import "testing"

func TestSessionIsValid(t *testing.T) {
	tests := []struct {
		name    string
		session Session
		valid   bool
	}{
		{"fully populated", Session{Token: "t1", UserID: 7, Email: "a@b.com"}, true},
		{"empty", Session{}, false},
		{"token only", Session{Token: "t1"}, false},
		{"missing token", Session{UserID: 7, Email: "a@b.com"}, false},
		{"missing id", Session{Token: "t1", Email: "a@b.com"}, false},
		{"missing email", Session{Token: "t1", UserID: 7}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.session.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

package domain

import "time"

// User represents a registered Stayloom user.
type User struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	Surname      string             `json:"surname"`
	Email        string             `json:"email"`
	Phone        string             `json:"phone,omitempty"`
	ProfileImage string             `json:"profileImage,omitempty"`
	Host         *HostProfile       `json:"host,omitempty"`
	Config       *UserConfiguration `json:"userConfiguration,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
}

// HostProfile holds the extra attributes of a user who publishes
// accommodations. Verified is only set once DNI, email and phone have all
// been checked server-side.
type HostProfile struct {
	DNI           string `json:"dni"`
	Bio           string `json:"bio,omitempty"`
	Direction     string `json:"direction,omitempty"`
	EmailVerified bool   `json:"emailVerified"`
	DNIVerified   bool   `json:"dniVerified"`
	PhoneVerified bool   `json:"phoneVerified"`
	Verified      bool   `json:"verified"`
}

// UserConfiguration is the per-user locale and currency preference.
type UserConfiguration struct {
	Language string   `json:"language"`
	Currency Currency `json:"currency"`
}

// Currency is an ISO 4217 currency reference.
type Currency struct {
	AlphanumericCode string `json:"alphanumericCode"`
	Name             string `json:"name"`
	Code             string `json:"code"`
}

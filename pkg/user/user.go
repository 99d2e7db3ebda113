// Package user holds accounts and the registration/login flow.
package user

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that owns conversations and campaigns.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	// BrandVoice is the account-level voice description injected into
	// every content generation prompt. Optional.
	BrandVoice string    `json:"brand_voice,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

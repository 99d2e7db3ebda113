// Package models holds the API request and response types.
package models

import (
	"github.com/google/uuid"
)

// ErrorResponse is the uniform error envelope returned by the API.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse carries the issued token and user profile.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	BrandVoice string    `json:"brand_voice,omitempty"`
}

// BrandVoiceRequest updates the account brand voice.
type BrandVoiceRequest struct {
	BrandVoice string `json:"brand_voice" validate:"max=500"`
}

// ChatRequest is one chat turn. ConversationID is empty on the first turn.
type ChatRequest struct {
	Message        string     `json:"message" validate:"required,max=4000"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
}

// StatusRequest changes a campaign's status.
type StatusRequest struct {
	Status string `json:"status" validate:"required"`
}

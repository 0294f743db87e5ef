package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/wordwell/wordwell-api/internal/service/review"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization.
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens.
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires.
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh
// endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// CreateCardRequest defines the payload for creating a word card, optionally
// with example sentences that each become a fill-in-the-blank card.
type CreateCardRequest struct {
	DeckID           *uuid.UUID `json:"deck_id"`
	Front            string     `json:"front" validate:"required,max=500"`
	Back             string     `json:"back"  validate:"required,max=2000"`
	Tags             string     `json:"tags"`
	ExampleSentences []string   `json:"example_sentences" validate:"max=10,dive,max=500"`
}

// UpdateCardRequest defines the payload for editing a card's content.
// Scheduling state is never editable through this endpoint.
type UpdateCardRequest struct {
	DeckID *uuid.UUID `json:"deck_id"`
	Front  string     `json:"front" validate:"required,max=500"`
	Back   string     `json:"back"  validate:"required,max=2000"`
	Tags   string     `json:"tags"`
}

// DeckRequest defines the payload for creating or renaming a deck.
type DeckRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
}

// SubmitAnswerRequest defines the payload for answering a review card.
// Quality values 1 and 2 are accepted by the scheduler but not offered by
// any client, so they are rejected here.
type SubmitAnswerRequest struct {
	Quality *int `json:"quality" validate:"required,oneof=0 3 4 5"`
}

// NextCardPayload is the presentation payload for one review card.
type NextCardPayload struct {
	ID       uuid.UUID `json:"id"`
	Front    string    `json:"front"`
	Back     string    `json:"back"`
	Reversed bool      `json:"reversed"`
}

// ReviewedCardPayload reports the just-reviewed card's new scheduling state.
type ReviewedCardPayload struct {
	Interval       int       `json:"interval"`
	EaseFactor     float64   `json:"easeFactor"`
	NextReviewDate time.Time `json:"nextReviewDate"`
}

// NextCardResponse defines the response for the next-due-card endpoints.
type NextCardResponse struct {
	Success        bool             `json:"success"`
	HasNextCard    bool             `json:"hasNextCard"`
	NextCard       *NextCardPayload `json:"nextCard"`
	RemainingCount int              `json:"remainingCount"`
	Message        *string          `json:"message"`
}

// AnswerResponse defines the response for the answer endpoints.
type AnswerResponse struct {
	Success        bool                `json:"success"`
	HasNextCard    bool                `json:"hasNextCard"`
	NextCard       *NextCardPayload    `json:"nextCard"`
	RemainingCount int                 `json:"remainingCount"`
	Message        *string             `json:"message"`
	ReviewedCard   ReviewedCardPayload `json:"reviewedCard"`
}

func nextCardPayload(prompt *review.CardPrompt) *NextCardPayload {
	if prompt == nil {
		return nil
	}
	return &NextCardPayload{
		ID:       prompt.ID,
		Front:    prompt.Front,
		Back:     prompt.Back,
		Reversed: prompt.Reversed,
	}
}

func optionalMessage(message string) *string {
	if message == "" {
		return nil
	}
	return &message
}

// Package review implements the review session controller: it selects which
// due card a learner sees next within a scope (their whole collection or a
// single deck) and processes one answer at a time through the scheduler.
package review

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/wordwell/wordwell-api/internal/store"
)

// Common error types for the review session service.
var (
	// ErrCardNotFound indicates the card does not exist within the caller's
	// scope. A card owned by another learner reports identically, so
	// existence is never leaked.
	ErrCardNotFound = errors.New("card not found")

	// ErrDeckNotFound indicates a deck-scoped session referenced a deck the
	// learner does not own.
	ErrDeckNotFound = errors.New("deck not found")
)

// Messages shown when a session scope has no more due work.
const (
	allDoneMessage     = "All done! No cards due for review."
	allDoneDeckMessage = "All done! No cards due for review in this deck."
)

// CardPrompt is the minimal presentation payload for one card. The Reversed
// flag carries the presentation polarity so the caller never re-derives it
// from the card content: word cards show the back (definition) first,
// sentence cards show the blanked front first.
type CardPrompt struct {
	ID       uuid.UUID `json:"id"`
	Front    string    `json:"front"`
	Back     string    `json:"back"`
	Reversed bool      `json:"reversed"`
}

// ReviewedCard reports the updated scheduling state of a just-reviewed card
// for UI feedback.
type ReviewedCard struct {
	Interval     int       `json:"interval"`
	EaseFactor   float64   `json:"ease_factor"`
	NextReviewAt time.Time `json:"next_review_date"`
}

// SessionState describes the front of the review queue for a scope.
// Card is nil and DueCount zero when nothing in scope is due.
type SessionState struct {
	Card     *CardPrompt
	DueCount int
	Message  string
}

// AnswerOutcome is the result of processing one answer: whether another due
// card remains, which one, how many are left, and the reviewed card's new
// scheduling state.
type AnswerOutcome struct {
	HasNextCard    bool
	NextCard       *CardPrompt
	RemainingCount int
	Message        string
	Reviewed       ReviewedCard
}

// SessionService drives review sessions for a scope.
type SessionService interface {
	// NextCard returns the due card with the earliest next review date in
	// scope, together with the due count. When nothing is due it returns a
	// state with no card, a zero count and a completion message.
	// Returns ErrDeckNotFound for a deck scope the learner does not own.
	NextCard(ctx context.Context, scope store.ReviewScope) (*SessionState, error)

	// CountDue returns the number of due cards in scope.
	CountDue(ctx context.Context, scope store.ReviewScope) (int, error)

	// SubmitAnswer applies a quality rating to a card's scheduling state,
	// persists the result atomically, and reports what is due next.
	//
	// Returns srs.ErrInvalidQuality if quality is outside [0,5] (checked
	// before any persisted state is touched), ErrCardNotFound if the card
	// is missing from the caller's scope, and ErrDeckNotFound for an
	// unowned deck scope.
	SubmitAnswer(
		ctx context.Context,
		scope store.ReviewScope,
		cardID uuid.UUID,
		quality int,
	) (*AnswerOutcome, error)
}

// ServiceError wraps errors from the review service with the operation that
// failed, so consumers can differentiate with errors.As instead of string
// matching.
type ServiceError struct {
	Operation string
	Err       error
}

// Error implements the error interface.
func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s operation failed: %v", e.Operation, e.Err)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

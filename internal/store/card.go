package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/wordwell/wordwell-api/internal/domain"
)

// ReviewScope bounds a due-card query to one learner's cards, optionally
// narrowed to a single deck. All review queries are owner-filtered; a
// deck-scoped query additionally requires deck membership.
type ReviewScope struct {
	UserID uuid.UUID
	DeckID *uuid.UUID
}

// DeckScope returns a scope covering one deck of the learner's collection.
func DeckScope(userID, deckID uuid.UUID) ReviewScope {
	return ReviewScope{UserID: userID, DeckID: &deckID}
}

// UserScope returns a scope covering the learner's whole collection.
func UserScope(userID uuid.UUID) ReviewScope {
	return ReviewScope{UserID: userID}
}

// CardStore defines the interface for card data persistence.
type CardStore interface {
	// Create saves a single card to the store.
	// Returns ErrInvalidEntity wrapping the validation error if the card
	// data is invalid.
	Create(ctx context.Context, card *domain.Card) error

	// CreateMultiple saves multiple cards. This method MUST be run within a
	// transaction for atomicity: either all cards are created or none.
	// Use WithTx and store.RunInTransaction.
	CreateMultiple(ctx context.Context, cards []*domain.Card) error

	// GetForUser retrieves a card by id, filtered by owner.
	// Returns ErrCardNotFound when no such card exists for that learner -
	// identically whether the card is missing or owned by someone else.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Card, error)

	// ListForUser returns all of a learner's cards, newest first.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error)

	// ListForDeck returns all cards in a deck, newest first.
	ListForDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error)

	// NextDue returns the single due card (next_review_at <= now) with the
	// earliest next_review_at in scope, ties broken by creation order.
	// Returns ErrCardNotFound when nothing in scope is due.
	NextDue(ctx context.Context, scope ReviewScope, now time.Time) (*domain.Card, error)

	// CountDue returns the number of cards in scope with next_review_at <= now.
	CountDue(ctx context.Context, scope ReviewScope, now time.Time) (int, error)

	// CountForDeck returns the total number of cards assigned to a deck.
	CountForDeck(ctx context.Context, deckID uuid.UUID) (int, error)

	// UpdateContent modifies a card's editable fields (front, back, deck,
	// tags), leaving the scheduling state untouched.
	// Returns ErrCardNotFound if the card does not exist.
	UpdateContent(ctx context.Context, card *domain.Card) error

	// UpdateSchedule atomically replaces a card's scheduling state. The
	// four scheduling fields are always written together; they are never
	// mutated independently.
	// Returns ErrCardNotFound if the card does not exist.
	UpdateSchedule(ctx context.Context, id uuid.UUID, schedule domain.CardSchedule, updatedAt time.Time) error

	// Delete removes a card owned by the given learner.
	// Returns ErrCardNotFound if the card does not exist for that learner.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// WithTx returns a new CardStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller,
	// typically through store.RunInTransaction.
	WithTx(tx *sql.Tx) CardStore
}

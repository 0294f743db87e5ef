package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/wordwell/wordwell-api/internal/domain"
)

// DeckStore defines the interface for deck data persistence.
type DeckStore interface {
	// Create saves a new deck.
	Create(ctx context.Context, deck *domain.Deck) error

	// GetForUser retrieves a deck by id, filtered by owner.
	// Returns ErrDeckNotFound when no such deck exists for that learner.
	GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Deck, error)

	// ListForUser returns all of a learner's decks, sorted by name.
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error)

	// Update modifies an existing deck's name and description.
	// Returns ErrDeckNotFound if the deck does not exist.
	Update(ctx context.Context, deck *domain.Deck) error

	// Delete removes a deck owned by the given learner. Cards in the deck
	// are unassigned, not deleted.
	// Returns ErrDeckNotFound if the deck does not exist for that learner.
	Delete(ctx context.Context, id, userID uuid.UUID) error

	// WithTx returns a new DeckStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) DeckStore
}

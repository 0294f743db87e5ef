package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Deck-specific validation errors
var (
	ErrDeckIDEmpty     = errors.New("deck ID cannot be empty")
	ErrDeckUserIDEmpty = errors.New("deck user ID cannot be empty")
	ErrDeckNameEmpty   = errors.New("deck name cannot be empty")
	ErrDeckNameTooLong = errors.New("deck name cannot exceed 100 characters")
	ErrDeckDescTooLong = errors.New("deck description cannot exceed 500 characters")
)

// Deck groups a learner's cards for scoped review sessions.
// A card belongs to at most one deck; cards without a deck are reviewed
// only through the learner-wide scope.
type Deck struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewDeck creates a new Deck for the given learner.
// Returns an error if validation fails.
func NewDeck(userID uuid.UUID, name, description string) (*Deck, error) {
	now := time.Now().UTC()
	deck := &Deck{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := deck.Validate(); err != nil {
		return nil, err
	}

	return deck, nil
}

// Validate checks if the Deck has valid data.
func (d *Deck) Validate() error {
	if d.ID == uuid.Nil {
		return ErrDeckIDEmpty
	}

	if d.UserID == uuid.Nil {
		return ErrDeckUserIDEmpty
	}

	if d.Name == "" {
		return ErrDeckNameEmpty
	}

	if len(d.Name) > 100 {
		return ErrDeckNameTooLong
	}

	if len(d.Description) > 500 {
		return ErrDeckDescTooLong
	}

	return nil
}

// Rename updates the deck's name and description, refreshing the update
// timestamp. Returns an error if the new values are invalid.
func (d *Deck) Rename(name, description string) error {
	origName, origDesc := d.Name, d.Description
	d.Name = strings.TrimSpace(name)
	d.Description = strings.TrimSpace(description)

	if err := d.Validate(); err != nil {
		d.Name, d.Description = origName, origDesc
		return err
	}

	d.UpdatedAt = time.Now().UTC()
	return nil
}

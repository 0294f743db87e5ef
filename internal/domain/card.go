package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CardKind distinguishes how a card is presented during review.
type CardKind string

const (
	// CardKindWord is a term/definition card. It is presented reversed:
	// the back (definition) is shown first and the front (term) is the
	// answer to recall.
	CardKindWord CardKind = "word"

	// CardKindSentence is a fill-in-the-blank card derived from an example
	// sentence. It is presented front-first.
	CardKindSentence CardKind = "sentence"
)

// BlankMarker is the placeholder substituted for the target word when a
// sentence card is derived from an example sentence.
const BlankMarker = "_____"

// Scheduling defaults for newly created cards.
const (
	DefaultEaseFactor  = 2.5
	DefaultInterval    = 0
	DefaultRepetitions = 0
)

// Card-specific validation errors
var (
	ErrCardIDEmpty        = errors.New("card ID cannot be empty")
	ErrCardUserIDEmpty    = errors.New("card user ID cannot be empty")
	ErrCardFrontEmpty     = errors.New("card front cannot be empty")
	ErrCardBackEmpty      = errors.New("card back cannot be empty")
	ErrCardSideTooLong    = errors.New("card sides cannot exceed 2000 characters")
	ErrCardKindInvalid    = errors.New("card kind must be word or sentence")
	ErrInvalidInterval    = errors.New("interval must be greater than or equal to 0")
	ErrInvalidRepetitions = errors.New("repetitions must be greater than or equal to 0")
	ErrInvalidEaseFactor  = errors.New("ease factor cannot be below 1.3")
)

// CardSchedule is the spaced-repetition scheduling state carried by every
// card. It is created with the card, mutated exactly once per review event
// by the scheduler, and destroyed with the card.
type CardSchedule struct {
	EaseFactor   float64   `json:"ease_factor"`     // Growth rate of the interval, floored at 1.3
	Interval     int       `json:"interval"`        // Days until the next review
	Repetitions  int       `json:"repetitions"`     // Consecutive successful reviews
	NextReviewAt time.Time `json:"next_review_date"` // Card is due when NextReviewAt <= now
}

// NewCardSchedule returns the default scheduling state for a freshly
// created card: due immediately, with the standard starting ease factor.
func NewCardSchedule(now time.Time) CardSchedule {
	return CardSchedule{
		EaseFactor:   DefaultEaseFactor,
		Interval:     DefaultInterval,
		Repetitions:  DefaultRepetitions,
		NextReviewAt: now,
	}
}

// Validate checks the scheduling invariants.
func (s CardSchedule) Validate() error {
	if s.Interval < 0 {
		return ErrInvalidInterval
	}
	if s.Repetitions < 0 {
		return ErrInvalidRepetitions
	}
	if s.EaseFactor < 1.3 {
		return ErrInvalidEaseFactor
	}
	return nil
}

// Card represents a single flashcard owned by one learner.
// DeckID is nil for cards not assigned to any deck.
type Card struct {
	ID     uuid.UUID  `json:"id"`
	UserID uuid.UUID  `json:"user_id"`
	DeckID *uuid.UUID `json:"deck_id,omitempty"`
	Front  string     `json:"front"`
	Back   string     `json:"back"`
	Kind   CardKind   `json:"kind"`
	Tags   []string   `json:"tags,omitempty"`

	CardSchedule

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCard creates a word card with default scheduling state (due immediately).
// Returns an error if validation fails.
func NewCard(userID uuid.UUID, deckID *uuid.UUID, front, back string, tags []string) (*Card, error) {
	now := time.Now().UTC()
	card := &Card{
		ID:           uuid.New(),
		UserID:       userID,
		DeckID:       deckID,
		Front:        strings.TrimSpace(front),
		Back:         strings.TrimSpace(back),
		Kind:         CardKindWord,
		Tags:         tags,
		CardSchedule: NewCardSchedule(now),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := card.Validate(); err != nil {
		return nil, err
	}

	return card, nil
}

// NewSentenceCard derives a fill-in-the-blank card from an example sentence.
// Every case-insensitive occurrence of word in the sentence is replaced with
// the blank marker; the word becomes the back of the card.
func NewSentenceCard(userID uuid.UUID, deckID *uuid.UUID, sentence, word string, tags []string) (*Card, error) {
	pattern, err := regexp.Compile("(?i)" + regexp.QuoteMeta(strings.TrimSpace(word)))
	if err != nil {
		return nil, err
	}

	front := pattern.ReplaceAllString(strings.TrimSpace(sentence), BlankMarker)

	card, err := NewCard(userID, deckID, front, strings.TrimSpace(word), tags)
	if err != nil {
		return nil, err
	}

	card.Kind = CardKindSentence
	return card, nil
}

// Validate checks if the Card has valid data.
func (c *Card) Validate() error {
	if c.ID == uuid.Nil {
		return ErrCardIDEmpty
	}

	if c.UserID == uuid.Nil {
		return ErrCardUserIDEmpty
	}

	if c.Front == "" {
		return ErrCardFrontEmpty
	}

	if c.Back == "" {
		return ErrCardBackEmpty
	}

	if len(c.Front) > 2000 || len(c.Back) > 2000 {
		return ErrCardSideTooLong
	}

	if c.Kind != CardKindWord && c.Kind != CardKindSentence {
		return ErrCardKindInvalid
	}

	return c.CardSchedule.Validate()
}

// UpdateContent replaces the card's editable fields, leaving the scheduling
// state untouched. Returns an error if the new content is invalid.
func (c *Card) UpdateContent(front, back string, deckID *uuid.UUID, tags []string) error {
	origFront, origBack, origDeck, origTags := c.Front, c.Back, c.DeckID, c.Tags
	c.Front = strings.TrimSpace(front)
	c.Back = strings.TrimSpace(back)
	c.DeckID = deckID
	c.Tags = tags

	if err := c.Validate(); err != nil {
		c.Front, c.Back, c.DeckID, c.Tags = origFront, origBack, origDeck, origTags
		return err
	}

	c.UpdatedAt = time.Now().UTC()
	return nil
}

// Reversed reports the presentation polarity of the card: word cards show
// the back (definition) first, sentence cards show the blanked front first.
func (c *Card) Reversed() bool {
	return c.Kind != CardKindSentence
}

// IsDue reports whether the card is scheduled for review at the given time.
func (c *Card) IsDue(now time.Time) bool {
	return !c.NextReviewAt.After(now)
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/wordwell/wordwell-api/internal/domain"
	"github.com/wordwell/wordwell-api/internal/platform/logger"
	"github.com/wordwell/wordwell-api/internal/store"
)

// CreateCardInput carries the fields needed to create a word card and its
// derived sentence cards.
type CreateCardInput struct {
	DeckID *uuid.UUID
	Front  string
	Back   string
	Tags   string

	// ExampleSentences each yield an additional fill-in-the-blank card:
	// occurrences of Front in the sentence are blanked out and Front becomes
	// the answer.
	ExampleSentences []string
}

// UpdateCardInput carries the editable card fields. Scheduling state is
// never editable through this path.
type UpdateCardInput struct {
	DeckID *uuid.UUID
	Front  string
	Back   string
	Tags   string
}

// CardService provides card management operations. All reads and writes are
// owner-scoped.
type CardService interface {
	// CreateCard creates a word card plus one sentence card per example
	// sentence, atomically. Returns the created cards, word card first.
	CreateCard(ctx context.Context, userID uuid.UUID, input CreateCardInput) ([]*domain.Card, error)

	// GetCard retrieves one of the learner's cards by id.
	GetCard(ctx context.Context, cardID, userID uuid.UUID) (*domain.Card, error)

	// ListCards returns all of the learner's cards, newest first.
	ListCards(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error)

	// UpdateCard modifies a card's content fields, leaving its scheduling
	// state untouched.
	UpdateCard(ctx context.Context, cardID, userID uuid.UUID, input UpdateCardInput) (*domain.Card, error)

	// DeleteCard removes one of the learner's cards.
	DeleteCard(ctx context.Context, cardID, userID uuid.UUID) error
}

type cardServiceImpl struct {
	db        *sql.DB
	cardStore store.CardStore
	logger    *slog.Logger
}

// NewCardService creates a new CardService.
// It returns an error if any of the required dependencies are nil.
func NewCardService(db *sql.DB, cardStore store.CardStore, log *slog.Logger) (CardService, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	if cardStore == nil {
		return nil, errors.New("card store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &cardServiceImpl{
		db:        db,
		cardStore: cardStore,
		logger:    log.With(slog.String("component", "card_service")),
	}, nil
}

// CreateCard implements CardService.CreateCard.
func (s *cardServiceImpl) CreateCard(
	ctx context.Context,
	userID uuid.UUID,
	input CreateCardInput,
) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	tags := ParseTags(input.Tags)

	wordCard, err := domain.NewCard(userID, input.DeckID, input.Front, input.Back, tags)
	if err != nil {
		return nil, err
	}

	cards := []*domain.Card{wordCard}
	for _, sentence := range input.ExampleSentences {
		if strings.TrimSpace(sentence) == "" {
			continue
		}
		sentenceCard, err := domain.NewSentenceCard(userID, input.DeckID, sentence, input.Front, tags)
		if err != nil {
			return nil, err
		}
		cards = append(cards, sentenceCard)
	}

	// All cards for the word are created atomically: either the word card
	// and every sentence card land, or none do.
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.cardStore.WithTx(tx).CreateMultiple(ctx, cards)
	})
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) || errors.Is(err, store.ErrInvalidEntity) {
			return nil, err
		}
		log.Error("failed to create cards",
			slog.String("user_id", userID.String()),
			slog.Int("card_count", len(cards)),
			slog.String("error", err.Error()))
		return nil, NewServiceError("create card", "failed to save cards", err)
	}

	log.Info("cards created",
		slog.String("user_id", userID.String()),
		slog.Int("card_count", len(cards)))

	return cards, nil
}

// GetCard implements CardService.GetCard.
func (s *cardServiceImpl) GetCard(ctx context.Context, cardID, userID uuid.UUID) (*domain.Card, error) {
	card, err := s.cardStore.GetForUser(ctx, cardID, userID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, err
		}
		return nil, NewServiceError("get card", "failed to retrieve card", err)
	}
	return card, nil
}

// ListCards implements CardService.ListCards.
func (s *cardServiceImpl) ListCards(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error) {
	cards, err := s.cardStore.ListForUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list cards", "failed to list cards", err)
	}
	return cards, nil
}

// UpdateCard implements CardService.UpdateCard.
func (s *cardServiceImpl) UpdateCard(
	ctx context.Context,
	cardID, userID uuid.UUID,
	input UpdateCardInput,
) (*domain.Card, error) {
	card, err := s.cardStore.GetForUser(ctx, cardID, userID)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return nil, err
		}
		return nil, NewServiceError("update card", "failed to retrieve card", err)
	}

	if err := card.UpdateContent(input.Front, input.Back, input.DeckID, ParseTags(input.Tags)); err != nil {
		return nil, err
	}

	if err := s.cardStore.UpdateContent(ctx, card); err != nil {
		if errors.Is(err, store.ErrCardNotFound) || errors.Is(err, store.ErrDeckNotFound) {
			return nil, err
		}
		return nil, NewServiceError("update card", "failed to save card", err)
	}

	return card, nil
}

// DeleteCard implements CardService.DeleteCard.
func (s *cardServiceImpl) DeleteCard(ctx context.Context, cardID, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.cardStore.Delete(ctx, cardID, userID); err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return err
		}
		return NewServiceError("delete card", "failed to delete card", err)
	}

	log.Debug("card deleted",
		slog.String("card_id", cardID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

// ParseTags splits a comma-separated tag string into normalized tags:
// trimmed, lowercased, empties dropped, duplicates removed.
func ParseTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var tags []string
	for _, part := range strings.Split(raw, ",") {
		tag := strings.ToLower(strings.TrimSpace(part))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

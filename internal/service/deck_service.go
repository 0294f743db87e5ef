package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wordwell/wordwell-api/internal/domain"
	"github.com/wordwell/wordwell-api/internal/platform/logger"
	"github.com/wordwell/wordwell-api/internal/store"
)

// DeckWithStats pairs a deck with its card counts for list views.
type DeckWithStats struct {
	*domain.Deck
	CardCount int `json:"card_count"`
	DueCount  int `json:"due_count"`
}

// DeckService provides deck management operations. All reads and writes are
// owner-scoped.
type DeckService interface {
	// CreateDeck creates a new deck for the learner.
	CreateDeck(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Deck, error)

	// GetDeck retrieves one of the learner's decks with its card counts.
	GetDeck(ctx context.Context, deckID, userID uuid.UUID) (*DeckWithStats, error)

	// ListDecks returns the learner's decks with card counts, sorted by name.
	ListDecks(ctx context.Context, userID uuid.UUID) ([]*DeckWithStats, error)

	// UpdateDeck renames a deck.
	UpdateDeck(ctx context.Context, deckID, userID uuid.UUID, name, description string) (*domain.Deck, error)

	// DeleteDeck removes a deck. Cards in the deck are unassigned, not
	// deleted; their scheduling state is untouched.
	DeleteDeck(ctx context.Context, deckID, userID uuid.UUID) error
}

type deckServiceImpl struct {
	deckStore store.DeckStore
	cardStore store.CardStore
	logger    *slog.Logger
	timeFunc  func() time.Time
}

// NewDeckService creates a new DeckService.
// It returns an error if any of the required dependencies are nil.
func NewDeckService(deckStore store.DeckStore, cardStore store.CardStore, log *slog.Logger) (DeckService, error) {
	if deckStore == nil {
		return nil, errors.New("deck store cannot be nil")
	}
	if cardStore == nil {
		return nil, errors.New("card store cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &deckServiceImpl{
		deckStore: deckStore,
		cardStore: cardStore,
		logger:    log.With(slog.String("component", "deck_service")),
		timeFunc:  time.Now,
	}, nil
}

// CreateDeck implements DeckService.CreateDeck.
func (s *deckServiceImpl) CreateDeck(
	ctx context.Context,
	userID uuid.UUID,
	name, description string,
) (*domain.Deck, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deck, err := domain.NewDeck(userID, name, description)
	if err != nil {
		return nil, err
	}

	if err := s.deckStore.Create(ctx, deck); err != nil {
		log.Error("failed to create deck",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
		return nil, NewServiceError("create deck", "failed to save deck", err)
	}

	return deck, nil
}

// GetDeck implements DeckService.GetDeck.
func (s *deckServiceImpl) GetDeck(ctx context.Context, deckID, userID uuid.UUID) (*DeckWithStats, error) {
	deck, err := s.deckStore.GetForUser(ctx, deckID, userID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return nil, err
		}
		return nil, NewServiceError("get deck", "failed to retrieve deck", err)
	}

	return s.withStats(ctx, deck)
}

// ListDecks implements DeckService.ListDecks.
func (s *deckServiceImpl) ListDecks(ctx context.Context, userID uuid.UUID) ([]*DeckWithStats, error) {
	decks, err := s.deckStore.ListForUser(ctx, userID)
	if err != nil {
		return nil, NewServiceError("list decks", "failed to list decks", err)
	}

	result := make([]*DeckWithStats, 0, len(decks))
	for _, deck := range decks {
		withStats, err := s.withStats(ctx, deck)
		if err != nil {
			return nil, err
		}
		result = append(result, withStats)
	}
	return result, nil
}

// UpdateDeck implements DeckService.UpdateDeck.
func (s *deckServiceImpl) UpdateDeck(
	ctx context.Context,
	deckID, userID uuid.UUID,
	name, description string,
) (*domain.Deck, error) {
	deck, err := s.deckStore.GetForUser(ctx, deckID, userID)
	if err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return nil, err
		}
		return nil, NewServiceError("update deck", "failed to retrieve deck", err)
	}

	if err := deck.Rename(name, description); err != nil {
		return nil, err
	}

	if err := s.deckStore.Update(ctx, deck); err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return nil, err
		}
		return nil, NewServiceError("update deck", "failed to save deck", err)
	}

	return deck, nil
}

// DeleteDeck implements DeckService.DeleteDeck.
func (s *deckServiceImpl) DeleteDeck(ctx context.Context, deckID, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.deckStore.Delete(ctx, deckID, userID); err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return err
		}
		return NewServiceError("delete deck", "failed to delete deck", err)
	}

	log.Debug("deck deleted",
		slog.String("deck_id", deckID.String()),
		slog.String("user_id", userID.String()))
	return nil
}

func (s *deckServiceImpl) withStats(ctx context.Context, deck *domain.Deck) (*DeckWithStats, error) {
	total, err := s.cardStore.CountForDeck(ctx, deck.ID)
	if err != nil {
		return nil, NewServiceError("deck stats", "failed to count cards", err)
	}

	due, err := s.cardStore.CountDue(ctx, store.DeckScope(deck.UserID, deck.ID), s.timeFunc().UTC())
	if err != nil {
		return nil, NewServiceError("deck stats", "failed to count due cards", err)
	}

	return &DeckWithStats{Deck: deck, CardCount: total, DueCount: due}, nil
}

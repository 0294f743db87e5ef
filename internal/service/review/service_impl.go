package review

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wordwell/wordwell-api/internal/domain"
	"github.com/wordwell/wordwell-api/internal/domain/srs"
	"github.com/wordwell/wordwell-api/internal/platform/logger"
	"github.com/wordwell/wordwell-api/internal/store"
)

// sessionService implements SessionService on top of the card and deck
// stores and the scheduling algorithm.
type sessionService struct {
	db        *sql.DB
	cardStore store.CardStore
	deckStore store.DeckStore
	scheduler srs.Service
	logger    *slog.Logger
	timeFunc  func() time.Time
}

// SessionServiceOption configures the session service.
type SessionServiceOption func(*sessionService)

// WithTimeFunc overrides the service's time source. Intended for tests.
func WithTimeFunc(fn func() time.Time) SessionServiceOption {
	return func(s *sessionService) {
		s.timeFunc = fn
	}
}

// NewSessionService creates a SessionService. All dependencies are required.
func NewSessionService(
	db *sql.DB,
	cardStore store.CardStore,
	deckStore store.DeckStore,
	scheduler srs.Service,
	log *slog.Logger,
	opts ...SessionServiceOption,
) (SessionService, error) {
	if db == nil {
		return nil, errors.New("database connection cannot be nil")
	}
	if cardStore == nil {
		return nil, errors.New("card store cannot be nil")
	}
	if deckStore == nil {
		return nil, errors.New("deck store cannot be nil")
	}
	if scheduler == nil {
		return nil, errors.New("scheduler cannot be nil")
	}
	if log == nil {
		return nil, errors.New("logger cannot be nil")
	}

	svc := &sessionService{
		db:        db,
		cardStore: cardStore,
		deckStore: deckStore,
		scheduler: scheduler,
		logger:    log.With(slog.String("component", "review_service")),
		timeFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

// NextCard implements SessionService.NextCard.
func (s *sessionService) NextCard(ctx context.Context, scope store.ReviewScope) (*SessionState, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.verifyScope(ctx, scope); err != nil {
		return nil, err
	}

	now := s.timeFunc().UTC()

	card, err := s.cardStore.NextDue(ctx, scope, now)
	if err != nil {
		if errors.Is(err, store.ErrCardNotFound) {
			return &SessionState{Message: doneMessage(scope)}, nil
		}
		log.Error("failed to get next due card",
			slog.String("user_id", scope.UserID.String()),
			slog.String("error", err.Error()))
		return nil, &ServiceError{Operation: "next card", Err: err}
	}

	count, err := s.cardStore.CountDue(ctx, scope, now)
	if err != nil {
		log.Error("failed to count due cards",
			slog.String("user_id", scope.UserID.String()),
			slog.String("error", err.Error()))
		return nil, &ServiceError{Operation: "next card", Err: err}
	}

	return &SessionState{Card: promptFor(card), DueCount: count}, nil
}

// CountDue implements SessionService.CountDue.
func (s *sessionService) CountDue(ctx context.Context, scope store.ReviewScope) (int, error) {
	if err := s.verifyScope(ctx, scope); err != nil {
		return 0, err
	}

	count, err := s.cardStore.CountDue(ctx, scope, s.timeFunc().UTC())
	if err != nil {
		return 0, &ServiceError{Operation: "count due", Err: err}
	}
	return count, nil
}

// SubmitAnswer implements SessionService.SubmitAnswer.
func (s *sessionService) SubmitAnswer(
	ctx context.Context,
	scope store.ReviewScope,
	cardID uuid.UUID,
	quality int,
) (*AnswerOutcome, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	// Reject out-of-range quality before touching any persisted state.
	if quality < srs.MinQuality || quality > srs.MaxQuality {
		return nil, fmt.Errorf("%w: quality must be between %d and %d, got %d",
			srs.ErrInvalidQuality, srs.MinQuality, srs.MaxQuality, quality)
	}

	if err := s.verifyScope(ctx, scope); err != nil {
		return nil, err
	}

	now := s.timeFunc().UTC()

	var outcome *AnswerOutcome
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txCards := s.cardStore.WithTx(tx)

		card, err := txCards.GetForUser(ctx, cardID, scope.UserID)
		if err != nil {
			if errors.Is(err, store.ErrCardNotFound) {
				return ErrCardNotFound
			}
			return err
		}

		// A deck-scoped answer must target a card in that deck. Report a
		// membership mismatch the same way as a missing card.
		if scope.DeckID != nil && (card.DeckID == nil || *card.DeckID != *scope.DeckID) {
			return ErrCardNotFound
		}

		schedule, err := s.scheduler.CalculateNextReview(card.CardSchedule, quality, now)
		if err != nil {
			return err
		}

		if err := txCards.UpdateSchedule(ctx, card.ID, schedule, now); err != nil {
			if errors.Is(err, store.ErrCardNotFound) {
				return ErrCardNotFound
			}
			return err
		}

		reviewed := ReviewedCard{
			Interval:     schedule.Interval,
			EaseFactor:   schedule.EaseFactor,
			NextReviewAt: schedule.NextReviewAt,
		}

		// Re-query inside the same transaction so the just-updated card is
		// excluded (or included, after a failed answer) consistently.
		next, err := txCards.NextDue(ctx, scope, now)
		if err != nil {
			if errors.Is(err, store.ErrCardNotFound) {
				outcome = &AnswerOutcome{
					Message:  doneMessage(scope),
					Reviewed: reviewed,
				}
				return nil
			}
			return err
		}

		remaining, err := txCards.CountDue(ctx, scope, now)
		if err != nil {
			return err
		}

		outcome = &AnswerOutcome{
			HasNextCard:    true,
			NextCard:       promptFor(next),
			RemainingCount: remaining,
			Reviewed:       reviewed,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCardNotFound) || errors.Is(err, srs.ErrInvalidQuality) {
			return nil, err
		}
		log.Error("failed to submit answer",
			slog.String("card_id", cardID.String()),
			slog.String("user_id", scope.UserID.String()),
			slog.Int("quality", quality),
			slog.String("error", err.Error()))
		return nil, &ServiceError{Operation: "submit answer", Err: err}
	}

	log.Debug("answer recorded",
		slog.String("card_id", cardID.String()),
		slog.Int("quality", quality),
		slog.Int("new_interval", outcome.Reviewed.Interval),
		slog.Int("remaining", outcome.RemainingCount))

	return outcome, nil
}

// verifyScope checks that a deck-scoped session targets a deck the learner
// owns. A user-wide scope needs no check.
func (s *sessionService) verifyScope(ctx context.Context, scope store.ReviewScope) error {
	if scope.DeckID == nil {
		return nil
	}
	if _, err := s.deckStore.GetForUser(ctx, *scope.DeckID, scope.UserID); err != nil {
		if errors.Is(err, store.ErrDeckNotFound) {
			return ErrDeckNotFound
		}
		return &ServiceError{Operation: "verify deck", Err: err}
	}
	return nil
}

func promptFor(card *domain.Card) *CardPrompt {
	return &CardPrompt{
		ID:       card.ID,
		Front:    card.Front,
		Back:     card.Back,
		Reversed: card.Reversed(),
	}
}

func doneMessage(scope store.ReviewScope) string {
	if scope.DeckID != nil {
		return allDoneDeckMessage
	}
	return allDoneMessage
}

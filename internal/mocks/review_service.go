package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/wordwell/wordwell-api/internal/service/review"
	"github.com/wordwell/wordwell-api/internal/store"
)

// MockSessionService implements review.SessionService for testing.
type MockSessionService struct {
	NextCardFn     func(ctx context.Context, scope store.ReviewScope) (*review.SessionState, error)
	CountDueFn     func(ctx context.Context, scope store.ReviewScope) (int, error)
	SubmitAnswerFn func(ctx context.Context, scope store.ReviewScope, cardID uuid.UUID, quality int) (*review.AnswerOutcome, error)
}

// NextCard implements the review.SessionService interface.
func (m *MockSessionService) NextCard(ctx context.Context, scope store.ReviewScope) (*review.SessionState, error) {
	return m.NextCardFn(ctx, scope)
}

// CountDue implements the review.SessionService interface.
func (m *MockSessionService) CountDue(ctx context.Context, scope store.ReviewScope) (int, error) {
	return m.CountDueFn(ctx, scope)
}

// SubmitAnswer implements the review.SessionService interface.
func (m *MockSessionService) SubmitAnswer(
	ctx context.Context,
	scope store.ReviewScope,
	cardID uuid.UUID,
	quality int,
) (*review.AnswerOutcome, error) {
	return m.SubmitAnswerFn(ctx, scope, cardID, quality)
}

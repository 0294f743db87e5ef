package service_test

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/wordwell/wordwell-api/internal/domain"
	"github.com/wordwell/wordwell-api/internal/store"
)

// mockCardStore is a mock implementation of the store.CardStore interface.
type mockCardStore struct {
	mock.Mock
}

func (m *mockCardStore) Create(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *mockCardStore) CreateMultiple(ctx context.Context, cards []*domain.Card) error {
	args := m.Called(ctx, cards)
	return args.Error(0)
}

func (m *mockCardStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Card, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *mockCardStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *mockCardStore) ListForDeck(ctx context.Context, deckID uuid.UUID) ([]*domain.Card, error) {
	args := m.Called(ctx, deckID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Card), args.Error(1)
}

func (m *mockCardStore) NextDue(
	ctx context.Context,
	scope store.ReviewScope,
	now time.Time,
) (*domain.Card, error) {
	args := m.Called(ctx, scope, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Card), args.Error(1)
}

func (m *mockCardStore) CountDue(ctx context.Context, scope store.ReviewScope, now time.Time) (int, error) {
	args := m.Called(ctx, scope, now)
	return args.Int(0), args.Error(1)
}

func (m *mockCardStore) CountForDeck(ctx context.Context, deckID uuid.UUID) (int, error) {
	args := m.Called(ctx, deckID)
	return args.Int(0), args.Error(1)
}

func (m *mockCardStore) UpdateContent(ctx context.Context, card *domain.Card) error {
	args := m.Called(ctx, card)
	return args.Error(0)
}

func (m *mockCardStore) UpdateSchedule(
	ctx context.Context,
	id uuid.UUID,
	schedule domain.CardSchedule,
	updatedAt time.Time,
) error {
	args := m.Called(ctx, id, schedule, updatedAt)
	return args.Error(0)
}

func (m *mockCardStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *mockCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return m
}

// mockDeckStore is a mock implementation of the store.DeckStore interface.
type mockDeckStore struct {
	mock.Mock
}

func (m *mockDeckStore) Create(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *mockDeckStore) GetForUser(ctx context.Context, id, userID uuid.UUID) (*domain.Deck, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Deck), args.Error(1)
}

func (m *mockDeckStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Deck, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Deck), args.Error(1)
}

func (m *mockDeckStore) Update(ctx context.Context, deck *domain.Deck) error {
	args := m.Called(ctx, deck)
	return args.Error(0)
}

func (m *mockDeckStore) Delete(ctx context.Context, id, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *mockDeckStore) WithTx(tx *sql.Tx) store.DeckStore {
	return m
}

package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/wordwell/wordwell-api/internal/domain"
	"github.com/wordwell/wordwell-api/internal/service"
)

// MockCardService implements service.CardService for testing.
type MockCardService struct {
	CreateCardFn func(ctx context.Context, userID uuid.UUID, input service.CreateCardInput) ([]*domain.Card, error)
	GetCardFn    func(ctx context.Context, cardID, userID uuid.UUID) (*domain.Card, error)
	ListCardsFn  func(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error)
	UpdateCardFn func(ctx context.Context, cardID, userID uuid.UUID, input service.UpdateCardInput) (*domain.Card, error)
	DeleteCardFn func(ctx context.Context, cardID, userID uuid.UUID) error
}

// CreateCard implements the service.CardService interface.
func (m *MockCardService) CreateCard(
	ctx context.Context,
	userID uuid.UUID,
	input service.CreateCardInput,
) ([]*domain.Card, error) {
	return m.CreateCardFn(ctx, userID, input)
}

// GetCard implements the service.CardService interface.
func (m *MockCardService) GetCard(ctx context.Context, cardID, userID uuid.UUID) (*domain.Card, error) {
	return m.GetCardFn(ctx, cardID, userID)
}

// ListCards implements the service.CardService interface.
func (m *MockCardService) ListCards(ctx context.Context, userID uuid.UUID) ([]*domain.Card, error) {
	return m.ListCardsFn(ctx, userID)
}

// UpdateCard implements the service.CardService interface.
func (m *MockCardService) UpdateCard(
	ctx context.Context,
	cardID, userID uuid.UUID,
	input service.UpdateCardInput,
) (*domain.Card, error) {
	return m.UpdateCardFn(ctx, cardID, userID, input)
}

// DeleteCard implements the service.CardService interface.
func (m *MockCardService) DeleteCard(ctx context.Context, cardID, userID uuid.UUID) error {
	return m.DeleteCardFn(ctx, cardID, userID)
}

// MockDeckService implements service.DeckService for testing.
type MockDeckService struct {
	CreateDeckFn func(ctx context.Context, userID uuid.UUID, name, description string) (*domain.Deck, error)
	GetDeckFn    func(ctx context.Context, deckID, userID uuid.UUID) (*service.DeckWithStats, error)
	ListDecksFn  func(ctx context.Context, userID uuid.UUID) ([]*service.DeckWithStats, error)
	UpdateDeckFn func(ctx context.Context, deckID, userID uuid.UUID, name, description string) (*domain.Deck, error)
	DeleteDeckFn func(ctx context.Context, deckID, userID uuid.UUID) error
}

// CreateDeck implements the service.DeckService interface.
func (m *MockDeckService) CreateDeck(
	ctx context.Context,
	userID uuid.UUID,
	name, description string,
) (*domain.Deck, error) {
	return m.CreateDeckFn(ctx, userID, name, description)
}

// GetDeck implements the service.DeckService interface.
func (m *MockDeckService) GetDeck(ctx context.Context, deckID, userID uuid.UUID) (*service.DeckWithStats, error) {
	return m.GetDeckFn(ctx, deckID, userID)
}

// ListDecks implements the service.DeckService interface.
func (m *MockDeckService) ListDecks(ctx context.Context, userID uuid.UUID) ([]*service.DeckWithStats, error) {
	return m.ListDecksFn(ctx, userID)
}

// UpdateDeck implements the service.DeckService interface.
func (m *MockDeckService) UpdateDeck(
	ctx context.Context,
	deckID, userID uuid.UUID,
	name, description string,
) (*domain.Deck, error) {
	return m.UpdateDeckFn(ctx, deckID, userID, name, description)
}

// DeleteDeck implements the service.DeckService interface.
func (m *MockDeckService) DeleteDeck(ctx context.Context, deckID, userID uuid.UUID) error {
	return m.DeleteDeckFn(ctx, deckID, userID)
}

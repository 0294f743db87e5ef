package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordwell/wordwell-api/internal/domain"
	"github.com/wordwell/wordwell-api/internal/mocks"
	"github.com/wordwell/wordwell-api/internal/service"
	"github.com/wordwell/wordwell-api/internal/service/review"
	"github.com/wordwell/wordwell-api/internal/store"
)

func newDeckHandler(deckService service.DeckService, reviewService review.SessionService) *DeckHandler {
	cardHandler := NewCardHandler(&mocks.MockCardService{}, reviewService, nil)
	return NewDeckHandler(deckService, cardHandler, nil)
}

func TestCreateDeckHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("creates deck", func(t *testing.T) {
		deckService := &mocks.MockDeckService{
			CreateDeckFn: func(ctx context.Context, uid uuid.UUID, name, description string) (*domain.Deck, error) {
				assert.Equal(t, userID, uid)
				return domain.NewDeck(uid, name, description)
			},
		}
		handler := newDeckHandler(deckService, &mocks.MockSessionService{})

		body, _ := json.Marshal(DeckRequest{Name: "Spanish", Description: "daily practice"})
		req := withUserID(httptest.NewRequest(http.MethodPost, "/decks", bytes.NewReader(body)), userID)
		rr := httptest.NewRecorder()
		handler.CreateDeck(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)

		var deck domain.Deck
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&deck))
		assert.Equal(t, "Spanish", deck.Name)
	})

	t.Run("rejects empty name", func(t *testing.T) {
		handler := newDeckHandler(&mocks.MockDeckService{}, &mocks.MockSessionService{})

		body, _ := json.Marshal(DeckRequest{Name: ""})
		req := withUserID(httptest.NewRequest(http.MethodPost, "/decks", bytes.NewReader(body)), userID)
		rr := httptest.NewRecorder()
		handler.CreateDeck(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("requires authentication", func(t *testing.T) {
		handler := newDeckHandler(&mocks.MockDeckService{}, &mocks.MockSessionService{})

		body, _ := json.Marshal(DeckRequest{Name: "Spanish"})
		req := httptest.NewRequest(http.MethodPost, "/decks", bytes.NewReader(body))
		rr := httptest.NewRecorder()
		handler.CreateDeck(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestListDecksHandler(t *testing.T) {
	userID := uuid.New()

	deck, err := domain.NewDeck(userID, "Spanish", "")
	require.NoError(t, err)

	deckService := &mocks.MockDeckService{
		ListDecksFn: func(ctx context.Context, uid uuid.UUID) ([]*service.DeckWithStats, error) {
			return []*service.DeckWithStats{{Deck: deck, CardCount: 12, DueCount: 5}}, nil
		},
	}
	handler := newDeckHandler(deckService, &mocks.MockSessionService{})

	req := withUserID(httptest.NewRequest(http.MethodGet, "/decks", nil), userID)
	rr := httptest.NewRecorder()
	handler.ListDecks(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)

	var decks []map[string]any
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&decks))
	require.Len(t, decks, 1)
	assert.Equal(t, float64(12), decks[0]["card_count"])
	assert.Equal(t, float64(5), decks[0]["due_count"])
}

func TestDeckNotFound(t *testing.T) {
	userID := uuid.New()
	deckID := uuid.New()

	deckService := &mocks.MockDeckService{
		GetDeckFn: func(ctx context.Context, id, uid uuid.UUID) (*service.DeckWithStats, error) {
			return nil, store.ErrDeckNotFound
		},
	}
	handler := newDeckHandler(deckService, &mocks.MockSessionService{})

	req := withUserID(httptest.NewRequest(http.MethodGet, "/decks/"+deckID.String(), nil), userID)
	req = withPathParam(req, "id", deckID.String())
	rr := httptest.NewRecorder()
	handler.GetDeck(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDeckScopedReview(t *testing.T) {
	userID := uuid.New()
	deckID := uuid.New()
	cardID := uuid.New()

	t.Run("next card query is deck scoped", func(t *testing.T) {
		reviewService := &mocks.MockSessionService{
			NextCardFn: func(ctx context.Context, scope store.ReviewScope) (*review.SessionState, error) {
				require.NotNil(t, scope.DeckID)
				assert.Equal(t, deckID, *scope.DeckID)
				assert.Equal(t, userID, scope.UserID)
				return &review.SessionState{Message: "All done! No cards due for review in this deck."}, nil
			},
		}
		handler := newDeckHandler(&mocks.MockDeckService{}, reviewService)

		req := withUserID(httptest.NewRequest(http.MethodGet, "/decks/"+deckID.String()+"/review/next", nil), userID)
		req = withPathParam(req, "id", deckID.String())
		rr := httptest.NewRecorder()
		handler.GetNextReviewCard(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var resp NextCardResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.False(t, resp.HasNextCard)
		require.NotNil(t, resp.Message)
		assert.Contains(t, *resp.Message, "in this deck")
	})

	t.Run("answer is submitted against the deck scope", func(t *testing.T) {
		reviewService := &mocks.MockSessionService{
			SubmitAnswerFn: func(ctx context.Context, scope store.ReviewScope, id uuid.UUID, quality int) (*review.AnswerOutcome, error) {
				require.NotNil(t, scope.DeckID)
				assert.Equal(t, deckID, *scope.DeckID)
				assert.Equal(t, cardID, id)
				assert.Equal(t, 5, quality)
				return &review.AnswerOutcome{Reviewed: review.ReviewedCard{Interval: 1}}, nil
			},
		}
		handler := newDeckHandler(&mocks.MockDeckService{}, reviewService)

		req := httptest.NewRequest(
			http.MethodPost,
			"/decks/"+deckID.String()+"/review/"+cardID.String()+"/answer",
			bytes.NewReader([]byte(`{"quality": 5}`)),
		)
		req = withUserID(req, userID)
		req = withPathParam(req, "id", deckID.String())
		req = withPathParam(req, "cardID", cardID.String())
		rr := httptest.NewRecorder()
		handler.SubmitAnswer(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unowned deck reports not found", func(t *testing.T) {
		reviewService := &mocks.MockSessionService{
			NextCardFn: func(ctx context.Context, scope store.ReviewScope) (*review.SessionState, error) {
				return nil, review.ErrDeckNotFound
			},
		}
		handler := newDeckHandler(&mocks.MockDeckService{}, reviewService)

		req := withUserID(httptest.NewRequest(http.MethodGet, "/decks/"+deckID.String()+"/review/next", nil), userID)
		req = withPathParam(req, "id", deckID.String())
		rr := httptest.NewRecorder()
		handler.GetNextReviewCard(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

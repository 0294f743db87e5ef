package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/wordwell/wordwell-api/internal/api/shared"
	"github.com/wordwell/wordwell-api/internal/domain/srs"
	"github.com/wordwell/wordwell-api/internal/mocks"
	"github.com/wordwell/wordwell-api/internal/service/review"
	"github.com/wordwell/wordwell-api/internal/store"
)

// withUserID places an authenticated user ID in the request context the way
// the auth middleware does.
func withUserID(req *http.Request, userID uuid.UUID) *http.Request {
	ctx := context.WithValue(req.Context(), shared.UserIDContextKey, userID)
	return req.WithContext(ctx)
}

// withPathParam attaches a chi URL parameter to the request, reusing an
// existing route context so multiple parameters accumulate.
func withPathParam(req *http.Request, name, value string) *http.Request {
	rctx, ok := req.Context().Value(chi.RouteCtxKey).(*chi.Context)
	if !ok {
		rctx = chi.NewRouteContext()
		req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}
	rctx.URLParams.Add(name, value)
	return req
}

func TestGetNextReviewCard(t *testing.T) {
	userID := uuid.New()
	cardID := uuid.New()

	tests := []struct {
		name           string
		userIDInCtx    uuid.UUID
		serviceState   *review.SessionState
		serviceError   error
		expectedStatus int
		expectNextCard bool
	}{
		{
			name:        "card due",
			userIDInCtx: userID,
			serviceState: &review.SessionState{
				Card: &review.CardPrompt{
					ID:       cardID,
					Front:    "serendipity",
					Back:     "finding something good without looking for it",
					Reversed: true,
				},
				DueCount: 3,
			},
			expectedStatus: http.StatusOK,
			expectNextCard: true,
		},
		{
			name:           "no cards due",
			userIDInCtx:    userID,
			serviceState:   &review.SessionState{Message: "All done! No cards due for review."},
			expectedStatus: http.StatusOK,
			expectNextCard: false,
		},
		{
			name:           "service error",
			userIDInCtx:    userID,
			serviceError:   errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
		{
			name:           "missing user id",
			userIDInCtx:    uuid.Nil,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reviewService := &mocks.MockSessionService{
				NextCardFn: func(ctx context.Context, scope store.ReviewScope) (*review.SessionState, error) {
					if scope.UserID != userID || scope.DeckID != nil {
						t.Errorf("unexpected scope: %+v", scope)
					}
					return tc.serviceState, tc.serviceError
				},
			}
			handler := NewCardHandler(&mocks.MockCardService{}, reviewService, nil)

			req := httptest.NewRequest(http.MethodGet, "/cards/review/next", nil)
			if tc.userIDInCtx != uuid.Nil {
				req = withUserID(req, tc.userIDInCtx)
			}

			rr := httptest.NewRecorder()
			handler.GetNextReviewCard(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Fatalf("wrong status code: got %v want %v", rr.Code, tc.expectedStatus)
			}

			if tc.expectedStatus != http.StatusOK {
				return
			}

			var resp NextCardResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("failed to decode response: %v", err)
			}

			if !resp.Success {
				t.Error("expected success true")
			}
			if resp.HasNextCard != tc.expectNextCard {
				t.Errorf("hasNextCard: got %v want %v", resp.HasNextCard, tc.expectNextCard)
			}
			if tc.expectNextCard {
				if resp.NextCard == nil || resp.NextCard.ID != cardID {
					t.Errorf("wrong next card in response: %+v", resp.NextCard)
				}
				if !resp.NextCard.Reversed {
					t.Error("expected reversed presentation for word card")
				}
				if resp.RemainingCount != 3 {
					t.Errorf("remainingCount: got %d want 3", resp.RemainingCount)
				}
			} else {
				if resp.NextCard != nil {
					t.Errorf("expected null nextCard, got %+v", resp.NextCard)
				}
				if resp.Message == nil {
					t.Error("expected completion message")
				}
			}
		})
	}
}

func TestSubmitAnswer(t *testing.T) {
	userID := uuid.New()
	cardID := uuid.New()
	reviewedAt := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	submit := func(t *testing.T, handler *CardHandler, body []byte) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodPost, "/cards/"+cardID.String()+"/answer", bytes.NewReader(body))
		req = withUserID(req, userID)
		req = withPathParam(req, "id", cardID.String())
		rr := httptest.NewRecorder()
		handler.SubmitAnswer(rr, req)
		return rr
	}

	t.Run("successful answer returns outcome", func(t *testing.T) {
		reviewService := &mocks.MockSessionService{
			SubmitAnswerFn: func(ctx context.Context, scope store.ReviewScope, id uuid.UUID, quality int) (*review.AnswerOutcome, error) {
				if id != cardID || quality != 4 {
					t.Errorf("unexpected arguments: card=%s quality=%d", id, quality)
				}
				return &review.AnswerOutcome{
					HasNextCard:    true,
					NextCard:       &review.CardPrompt{ID: uuid.New(), Front: "f", Back: "b", Reversed: true},
					RemainingCount: 2,
					Reviewed: review.ReviewedCard{
						Interval:     6,
						EaseFactor:   2.5,
						NextReviewAt: reviewedAt.AddDate(0, 0, 6),
					},
				}, nil
			},
		}
		handler := NewCardHandler(&mocks.MockCardService{}, reviewService, nil)

		rr := submit(t, handler, []byte(`{"quality": 4}`))
		if rr.Code != http.StatusOK {
			t.Fatalf("wrong status code: got %v want %v, body %s", rr.Code, http.StatusOK, rr.Body.String())
		}

		var resp AnswerResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if !resp.Success || !resp.HasNextCard {
			t.Errorf("unexpected response flags: %+v", resp)
		}
		if resp.RemainingCount != 2 {
			t.Errorf("remainingCount: got %d want 2", resp.RemainingCount)
		}
		if resp.ReviewedCard.Interval != 6 || resp.ReviewedCard.EaseFactor != 2.5 {
			t.Errorf("unexpected reviewedCard: %+v", resp.ReviewedCard)
		}
	})

	t.Run("quality zero is a valid answer", func(t *testing.T) {
		var gotQuality int
		reviewService := &mocks.MockSessionService{
			SubmitAnswerFn: func(ctx context.Context, scope store.ReviewScope, id uuid.UUID, quality int) (*review.AnswerOutcome, error) {
				gotQuality = quality
				return &review.AnswerOutcome{Reviewed: review.ReviewedCard{Interval: 1}}, nil
			},
		}
		handler := NewCardHandler(&mocks.MockCardService{}, reviewService, nil)

		rr := submit(t, handler, []byte(`{"quality": 0}`))
		if rr.Code != http.StatusOK {
			t.Fatalf("wrong status code: got %v, body %s", rr.Code, rr.Body.String())
		}
		if gotQuality != 0 {
			t.Errorf("quality: got %d want 0", gotQuality)
		}
	})

	t.Run("quality outside the client set is rejected", func(t *testing.T) {
		// 1 and 2 are accepted by the scheduler but not offered by any
		// client, so the validation layer rejects them.
		for _, body := range []string{`{"quality": 1}`, `{"quality": 2}`, `{"quality": 6}`, `{}`} {
			handler := NewCardHandler(&mocks.MockCardService{}, &mocks.MockSessionService{
				SubmitAnswerFn: func(ctx context.Context, scope store.ReviewScope, id uuid.UUID, quality int) (*review.AnswerOutcome, error) {
					t.Errorf("service should not be called for body %s", body)
					return nil, nil
				},
			}, nil)

			rr := submit(t, handler, []byte(body))
			if rr.Code != http.StatusBadRequest {
				t.Errorf("body %s: got status %d want %d", body, rr.Code, http.StatusBadRequest)
			}
		}
	})

	t.Run("invalid quality from service maps to bad request", func(t *testing.T) {
		reviewService := &mocks.MockSessionService{
			SubmitAnswerFn: func(ctx context.Context, scope store.ReviewScope, id uuid.UUID, quality int) (*review.AnswerOutcome, error) {
				return nil, srs.ErrInvalidQuality
			},
		}
		handler := NewCardHandler(&mocks.MockCardService{}, reviewService, nil)

		rr := submit(t, handler, []byte(`{"quality": 3}`))
		if rr.Code != http.StatusBadRequest {
			t.Errorf("got status %d want %d", rr.Code, http.StatusBadRequest)
		}
	})

	t.Run("unknown card maps to not found", func(t *testing.T) {
		reviewService := &mocks.MockSessionService{
			SubmitAnswerFn: func(ctx context.Context, scope store.ReviewScope, id uuid.UUID, quality int) (*review.AnswerOutcome, error) {
				return nil, review.ErrCardNotFound
			},
		}
		handler := NewCardHandler(&mocks.MockCardService{}, reviewService, nil)

		rr := submit(t, handler, []byte(`{"quality": 4}`))
		if rr.Code != http.StatusNotFound {
			t.Errorf("got status %d want %d", rr.Code, http.StatusNotFound)
		}

		var resp shared.ErrorResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode error response: %v", err)
		}
		if resp.Success {
			t.Error("expected success false in error response")
		}
		if resp.Error != "Card not found" {
			t.Errorf("error message: got %q", resp.Error)
		}
	})

	t.Run("malformed card id is rejected", func(t *testing.T) {
		handler := NewCardHandler(&mocks.MockCardService{}, &mocks.MockSessionService{}, nil)

		req := httptest.NewRequest(http.MethodPost, "/cards/not-a-uuid/answer", bytes.NewReader([]byte(`{"quality":4}`)))
		req = withUserID(req, userID)
		req = withPathParam(req, "id", "not-a-uuid")
		rr := httptest.NewRecorder()
		handler.SubmitAnswer(rr, req)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("got status %d want %d", rr.Code, http.StatusBadRequest)
		}
	})
}

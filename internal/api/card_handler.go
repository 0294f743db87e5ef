// Package api provides HTTP handlers for the API.
package api

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/wordwell/wordwell-api/internal/api/shared"
	"github.com/wordwell/wordwell-api/internal/platform/logger"
	"github.com/wordwell/wordwell-api/internal/service"
	"github.com/wordwell/wordwell-api/internal/service/review"
	"github.com/wordwell/wordwell-api/internal/store"
)

// CardHandler handles card CRUD and collection-wide review requests.
type CardHandler struct {
	cardService   service.CardService
	reviewService review.SessionService
	logger        *slog.Logger
}

// NewCardHandler creates a new CardHandler.
func NewCardHandler(
	cardService service.CardService,
	reviewService review.SessionService,
	log *slog.Logger,
) *CardHandler {
	if log == nil {
		log = slog.Default()
	}

	return &CardHandler{
		cardService:   cardService,
		reviewService: reviewService,
		logger:        log.With(slog.String("component", "card_handler")),
	}
}

// CreateCard handles POST /cards. A word plus example sentences becomes one
// word card and one fill-in-the-blank card per sentence, created atomically.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	cards, err := h.cardService.CreateCard(r.Context(), userID, service.CreateCardInput{
		DeckID:           req.DeckID,
		Front:            req.Front,
		Back:             req.Back,
		Tags:             req.Tags,
		ExampleSentences: req.ExampleSentences,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, cards)
}

// ListCards handles GET /cards.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	cards, err := h.cardService.ListCards(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cards")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// GetCard handles GET /cards/{id}.
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	card, err := h.cardService.GetCard(r.Context(), cardID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to retrieve card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// UpdateCard handles PUT /cards/{id}.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req UpdateCardRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	card, err := h.cardService.UpdateCard(r.Context(), cardID, userID, service.UpdateCardInput{
		DeckID: req.DeckID,
		Front:  req.Front,
		Back:   req.Back,
		Tags:   req.Tags,
	})
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteCard handles DELETE /cards/{id}.
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.cardService.DeleteCard(r.Context(), cardID, userID); err != nil {
		HandleAPIError(w, r, err, "Failed to delete card")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetNextReviewCard handles GET /cards/review/next. The scope is the
// learner's whole collection.
func (h *CardHandler) GetNextReviewCard(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return
	}

	h.respondWithNextCard(w, r, store.UserScope(userID))
}

// SubmitAnswer handles POST /cards/{id}/answer. The scope is the learner's
// whole collection.
func (h *CardHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, cardID, ok := handleUserIDAndPathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	h.handleAnswer(w, r, store.UserScope(userID), cardID)
}

// respondWithNextCard runs the next-due-card query for a scope and writes
// the session state response. Shared with the deck handler.
func (h *CardHandler) respondWithNextCard(w http.ResponseWriter, r *http.Request, scope store.ReviewScope) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	state, err := h.reviewService.NextCard(r.Context(), scope)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get next review card")
		return
	}

	var nextCard *NextCardPayload
	if state.Card != nil {
		nextCard = nextCardPayload(state.Card)
		log.Debug("next review card selected",
			slog.String("card_id", state.Card.ID.String()),
			slog.Int("due_count", state.DueCount))
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NextCardResponse{
		Success:        true,
		HasNextCard:    state.Card != nil,
		NextCard:       nextCard,
		RemainingCount: state.DueCount,
		Message:        optionalMessage(state.Message),
	})
}

// handleAnswer decodes and validates an answer submission for a scope, runs
// it through the review service, and writes the outcome. Shared with the
// deck handler.
func (h *CardHandler) handleAnswer(
	w http.ResponseWriter,
	r *http.Request,
	scope store.ReviewScope,
	cardID uuid.UUID,
) {
	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	outcome, err := h.reviewService.SubmitAnswer(r.Context(), scope, cardID, *req.Quality)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to submit answer")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		Success:        true,
		HasNextCard:    outcome.HasNextCard,
		NextCard:       nextCardPayload(outcome.NextCard),
		RemainingCount: outcome.RemainingCount,
		Message:        optionalMessage(outcome.Message),
		ReviewedCard: ReviewedCardPayload{
			Interval:       outcome.Reviewed.Interval,
			EaseFactor:     outcome.Reviewed.EaseFactor,
			NextReviewDate: outcome.Reviewed.NextReviewAt,
		},
	})
}

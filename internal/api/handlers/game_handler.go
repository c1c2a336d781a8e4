package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gururaser/real-estate-game/internal/application/services"
	"github.com/gururaser/real-estate-game/internal/infrastructure/observability"
	apperrors "github.com/gururaser/real-estate-game/pkg/errors"
)

// GameService is the application surface the handler depends on
type GameService interface {
	NewGame(ctx context.Context) (*services.GameView, error)
	Get(ctx context.Context, id string) (*services.GameView, error)
	NewTarget(ctx context.Context, id string) (*services.GameView, error)
	Search(ctx context.Context, id string, input services.SearchInput) (*services.GameView, error)
	ResultsPage(ctx context.Context, id string, page int) (*services.GameView, error)
	Guess(ctx context.Context, id string, rawGuess string) (*services.GameView, error)
}

// GameHandler handles game-related HTTP requests
type GameHandler struct {
	game GameService
}

// NewGameHandler creates a new game handler
func NewGameHandler(game GameService) *GameHandler {
	return &GameHandler{game: game}
}

// NewGame handles POST /api/game
func (h *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	view, err := h.game.NewGame(r.Context())
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, view)
}

// GetGame handles GET /api/game/{id}
func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "game ID is required")
		return
	}

	view, err := h.game.Get(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// NewTarget handles POST /api/game/{id}/target
func (h *GameHandler) NewTarget(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "game ID is required")
		return
	}

	view, err := h.game.NewTarget(r.Context(), id)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// Search handles POST /api/game/{id}/search
func (h *GameHandler) Search(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "game ID is required")
		return
	}

	var input services.SearchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.game.Search(r.Context(), id, input)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// Results handles GET /api/game/{id}/results
func (h *GameHandler) Results(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "game ID is required")
		return
	}

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "page must be an integer")
			return
		}
		page = parsed
	}

	view, err := h.game.ResultsPage(r.Context(), id, page)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

type guessRequest struct {
	Guess string `json:"guess"`
}

// Guess handles POST /api/game/{id}/guess
func (h *GameHandler) Guess(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		respondWithError(w, http.StatusBadRequest, "game ID is required")
		return
	}

	var req guessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.game.Guess(r.Context(), id, req.Guess)
	if err != nil {
		respondWithAppError(w, r, err)
		return
	}
	respondWithJSON(w, http.StatusOK, view)
}

// respondWithAppError maps the error taxonomy onto HTTP status codes.
// Collaborator failures surface as 502 so the client can offer a retry.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("unhandled error")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	status := http.StatusInternalServerError
	switch appErr.Type {
	case apperrors.ErrorTypeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidGuess:
		status = http.StatusBadRequest
	case apperrors.ErrorTypeInvalidState, apperrors.ErrorTypeDivisionUndefined:
		status = http.StatusUnprocessableEntity
	case apperrors.ErrorTypeConflict, apperrors.ErrorTypeAlreadyScored:
		status = http.StatusConflict
	case apperrors.ErrorTypeExternal:
		status = http.StatusBadGateway
	default:
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("internal error")
	}

	respondWithJSON(w, status, map[string]string{
		"error": appErr.Message,
		"type":  string(appErr.Type),
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidPiece       = "INVALID_PIECE"
	CodeInvalidRotation    = "INVALID_ROTATION"
	CodeInvalidPlacement   = "INVALID_PLACEMENT"
	CodeInvalidBoard       = "INVALID_BOARD"
	CodeInvalidConfig      = "INVALID_CONFIG"
	CodeInvalidStrategy    = "INVALID_STRATEGY"
	CodeInvalidInput       = "INVALID_INPUT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeNotOwner           = "NOT_OWNER"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeGameNotFound       = "GAME_NOT_FOUND"
	CodePresetNotFound     = "PRESET_NOT_FOUND"
	CodeGameOver           = "GAME_OVER"
	CodeGameAbandoned      = "GAME_ABANDONED"
	CodeNoPlacement        = "NO_PLACEMENT"
	CodeUsernameExists     = "USERNAME_EXISTS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// Status returns the HTTP status code err maps to
func Status(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	switch {
	// Lookups
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrGameNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeGameNotFound, "Game not found"}}
	case errors.Is(err, model.ErrPresetNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePresetNotFound, "Preset not found"}}

	// Game state
	case errors.Is(err, model.ErrNotOwner):
		return &httpError{http.StatusForbidden, APIError{CodeNotOwner, "Only the game owner can perform this action"}}
	case errors.Is(err, model.ErrGameOver):
		return &httpError{http.StatusConflict, APIError{CodeGameOver, "Game is over"}}
	case errors.Is(err, model.ErrGameAbandoned):
		return &httpError{http.StatusConflict, APIError{CodeGameAbandoned, "Game has been abandoned"}}
	case errors.Is(err, model.ErrNoPlacementPossible):
		return &httpError{http.StatusConflict, APIError{CodeNoPlacement, "No valid placement for the current piece"}}

	// Input validation; the wrapped message carries the detail
	case errors.Is(err, model.ErrInvalidPiece):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPiece, err.Error()}}
	case errors.Is(err, model.ErrInvalidRotation):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRotation, err.Error()}}
	case errors.Is(err, model.ErrInvalidPlacement), errors.Is(err, model.ErrOutOfBounds):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidPlacement, err.Error()}}
	case errors.Is(err, model.ErrInvalidBoard), errors.Is(err, model.ErrInvalidCell):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidBoard, err.Error()}}
	case errors.Is(err, model.ErrInvalidConfig):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidConfig, err.Error()}}
	case errors.Is(err, model.ErrInvalidStrategy):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidStrategy, err.Error()}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid username or password"}}
	case errors.Is(err, auth.ErrInvalidSession):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Invalid or expired session"}}
	case errors.Is(err, auth.ErrUsernameExists):
		return &httpError{http.StatusConflict, APIError{CodeUsernameExists, "Username already exists"}}
	case errors.Is(err, auth.ErrInvalidUsername),
		errors.Is(err, auth.ErrInvalidPassword),
		errors.Is(err, auth.ErrInvalidDisplayName):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidInput, err.Error()}}

	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewInternalError creates an internal server error
func NewInternalError() error {
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
}

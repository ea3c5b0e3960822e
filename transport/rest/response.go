package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/reversi-backend/internal/apperror"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

var statusByCode = map[string]int{
	apperror.CodeOutOfRange:      http.StatusBadRequest,
	apperror.CodeNotYourTurn:     http.StatusBadRequest,
	apperror.CodeIllegalMove:     http.StatusBadRequest,
	apperror.CodeInvalidColor:    http.StatusBadRequest,
	apperror.CodeBadRequest:      http.StatusBadRequest,
	apperror.CodeNotFound:        http.StatusNotFound,
	apperror.CodeGameAlreadyOver: http.StatusConflict,
}

// StatusFor - maps an error code to its HTTP status.
func StatusFor(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// respondError - writes err as an ErrorResponse. Internal errors are logged and their text is hidden.
func respondError(log *slog.Logger, w http.ResponseWriter, err error) {
	code := apperror.Code(err)
	message := err.Error()

	if code == apperror.CodeInternal {
		log.Error("request failed", "error", err)
		message = "internal server error"
	}

	respondJSON(w, StatusFor(code), ErrorResponse{Error: code, Message: message})
}

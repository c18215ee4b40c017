package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Response is the JSON error envelope every handler returns on failure.
type Response struct {
	Error string `json:"error"`
}

// RespondWithJSON writes payload as the JSON body with the given status.
// Encoding failures are logged, not surfaced: the status line is already out.
func RespondWithJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		zap.L().Error("can't encode response", zap.Error(err))
	}
}

func RespondWithError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, Response{Error: message})
}

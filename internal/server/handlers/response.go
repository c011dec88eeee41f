package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/todosync/pkg/api"
)

// WriteData отправляет успешный ответ в конверте {"data": ...}
func WriteData(w http.ResponseWriter, logger *slog.Logger, status int, data any) {
	writeEnvelope(w, logger, status, api.Envelope{Data: data})
}

// WriteError отправляет ответ с ошибкой в конверте {"data": null, "error": {...}}
func WriteError(w http.ResponseWriter, logger *slog.Logger, status, code int, message string) {
	writeEnvelope(w, logger, status, api.Envelope{
		Error: &api.ErrorBody{Code: code, Message: message},
	})
}

func writeEnvelope(w http.ResponseWriter, logger *slog.Logger, status int, env api.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// decodeJSON читает тело запроса, запрещая неизвестные поля
func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// Типовые ответы об ошибках

func badRequest(w http.ResponseWriter, logger *slog.Logger, message string) {
	WriteError(w, logger, http.StatusBadRequest, api.CodeBadRequest, message)
}

func unauthorized(w http.ResponseWriter, logger *slog.Logger, code int, message string) {
	WriteError(w, logger, http.StatusUnauthorized, code, message)
}

func internalError(w http.ResponseWriter, logger *slog.Logger) {
	WriteError(w, logger, http.StatusInternalServerError, api.CodeInternal, "internal server error")
}

package api

import "encoding/json"

// Error codes carried in ErrorBody.Code.
// HTTP-like codes are used for generic failures, 1xxx-3xxx for domain errors.
const (
	CodeBadRequest         = 400
	CodeUnauthorized       = 401
	CodeForbidden          = 403
	CodeNotFound           = 404
	CodeTooManyRequests    = 429
	CodeInternal           = 500
	CodeTodoNotFound       = 1001
	CodeEmailExists        = 2001
	CodeInvalidCredentials = 2002
	CodeSyncConflict       = 3001
)

// Envelope is the response wrapper used by every endpoint:
// {"data": ...} on success, {"data": null, "error": {...}} on failure.
type Envelope struct {
	Data  any        `json:"data"`
	Error *ErrorBody `json:"error,omitempty"`
}

// RawEnvelope is used by clients to decode Data lazily.
type RawEnvelope struct {
	Error *ErrorBody      `json:"error,omitempty"`
	Data  json.RawMessage `json:"data"`
}

// ErrorBody описывает ошибку в ответе
type ErrorBody struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/adlens/adlens/internal/domain"
)

// Error is a structured failure response from the backend.
type Error struct {
	Status  int
	Code    string
	Message string
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: %s (%d %s)", e.Message, e.Status, e.Code)
	}
	return fmt.Sprintf("api: %s (%d)", e.Message, e.Status)
}

// Unwrap maps well-known statuses to domain sentinels so callers can use
// errors.Is without inspecting status codes.
func (e *Error) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusNotFound:
		return domain.ErrNotFound
	}
	return nil
}

// errorEnvelope matches the backend convention {error:{code,message,details}}.
// FastAPI wraps HTTPException payloads one level deeper under "detail", and
// plain-string details also occur, so parseError tries all three shapes.
type errorEnvelope struct {
	Error  *errorBody      `json:"error"`
	Detail json.RawMessage `json:"detail"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// parseError builds an *Error from a non-2xx response body, degrading to a
// generic message when the body is not the expected envelope.
func parseError(status int, body []byte) *Error {
	apiErr := &Error{Status: status, Message: "Request failed"}

	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return apiErr
	}

	if env.Error != nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		return apiErr
	}

	if len(env.Detail) > 0 {
		var inner errorEnvelope
		if err := json.Unmarshal(env.Detail, &inner); err == nil && inner.Error != nil {
			apiErr.Code = inner.Error.Code
			apiErr.Message = inner.Error.Message
			return apiErr
		}
		var msg string
		if err := json.Unmarshal(env.Detail, &msg); err == nil && msg != "" {
			apiErr.Message = msg
		}
	}

	return apiErr
}

package llm

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
	"google.golang.org/api/googleapi"
)

// ErrToolUseUnsupported documents a known incompatibility: tool and function
// calling are not supported with this chat binding and are never attempted.
// Nothing in the normal chat flow returns it.
var ErrToolUseUnsupported = errors.New("tool calling is not supported by this chat binding")

// AuthenticationError means the credential is missing, malformed, or was
// rejected by the remote service.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// TransportError covers network failures, malformed responses, and every
// other non-credential failure reaching the remote service.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// classify maps an SDK or network error onto the error taxonomy. HTTP 401 and
// 403 mean the credential was rejected. Gemini rejects bad API keys with a
// 400 whose message names the key, so that case is treated as authentication
// too. Everything else is a transport failure.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthenticationError{Err: err}
		}
		return &TransportError{Err: err}
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		switch gErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthenticationError{Err: err}
		case http.StatusBadRequest:
			if strings.Contains(strings.ToLower(gErr.Message), "api key") {
				return &AuthenticationError{Err: err}
			}
		}
		return &TransportError{Err: err}
	}
	return &TransportError{Err: err}
}

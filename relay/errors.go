package relay

import (
	"encoding/json"
	"fmt"
	"net/http"
)

type Kind int

const (
	MethodNotAllowed Kind = iota + 1
	BadRequest
	ConfigurationError
	UpstreamError
	InternalError
)

func (k Kind) String() string {
	switch k {
	case MethodNotAllowed:
		return "MethodNotAllowed"
	case BadRequest:
		return "BadRequest"
	case ConfigurationError:
		return "ConfigurationError"
	case UpstreamError:
		return "UpstreamError"
	case InternalError:
		return "InternalError"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

const (
	msgMethodNotAllowed = "Method Not Allowed"
	msgPromptRequired   = `El "prompt" es requerido.`
)

// Error is a terminal outcome of an invocation. It is rendered as the JSON
// body of the response and carries the status code to answer with.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details string
	// UpstreamBody is the raw upstream JSON, set for UpstreamError only.
	UpstreamBody json.RawMessage
}

func (e *Error) Error() string {
	if e.Details == "" {
		return fmt.Sprintf("%s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s: %s", e.Kind, e.Status, e.Message, e.Details)
}

func (e *Error) MarshalJSON() ([]byte, error) {
	switch e.Kind {
	case UpstreamError:
		return json.Marshal(struct {
			Error          string          `json:"error"`
			Details        string          `json:"details"`
			GoogleResponse json.RawMessage `json:"googleResponse"`
		}{e.Message, e.Details, e.UpstreamBody})
	case InternalError:
		return json.Marshal(struct {
			Error   string `json:"error"`
			Details string `json:"details"`
		}{e.Message, e.Details})
	default:
		return json.Marshal(struct {
			Error string `json:"error"`
		}{e.Message})
	}
}

func errMethodNotAllowed() *Error {
	return &Error{Kind: MethodNotAllowed, Status: http.StatusMethodNotAllowed, Message: msgMethodNotAllowed}
}

func errPromptRequired() *Error {
	return &Error{Kind: BadRequest, Status: http.StatusBadRequest, Message: msgPromptRequired}
}

func errConfiguration(msg string) *Error {
	return &Error{Kind: ConfigurationError, Status: http.StatusInternalServerError, Message: msg}
}

func errUpstream(status int, msg, details string, body []byte) *Error {
	return &Error{Kind: UpstreamError, Status: status, Message: msg, Details: details, UpstreamBody: body}
}

func errInternal(msg string, err error) *Error {
	return &Error{Kind: InternalError, Status: http.StatusInternalServerError, Message: msg, Details: err.Error()}
}

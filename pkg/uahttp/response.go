package uahttp

import (
	"encoding/json"
	"errors"
	"maps"
	"net/http"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Data  any            `json:"data,omitempty"`
	Meta  map[string]any `json:"meta,omitempty"`
	Error *ErrorDetail   `json:"error,omitempty"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string              `json:"code"`
	Message string              `json:"message"`
	Details map[string][]string `json:"details,omitempty"`
}

// Response renders itself to w.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

type jsonResponse struct {
	status int
	body   Envelope
	cause  error
}

func (j jsonResponse) Render(w http.ResponseWriter, _ *http.Request) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(j.status)
	return json.NewEncoder(w).Encode(j.body)
}

// StatusCode returns the status the response will be written with.
func (j jsonResponse) StatusCode() int { return j.status }

// JSONOption configures a JSON response.
type JSONOption func(*jsonResponse)

func WithStatus(status int) JSONOption {
	return func(j *jsonResponse) { j.status = status }
}

func WithMeta(meta map[string]any) JSONOption {
	return func(j *jsonResponse) { j.body.Meta = meta }
}

// WithCause attaches the error that led to the response, for logging only.
func WithCause(err error) JSONOption {
	return func(j *jsonResponse) { j.cause = err }
}

// JSON wraps data in the envelope with status 200.
func JSON(data any, opts ...JSONOption) Response {
	j := &jsonResponse{status: http.StatusOK, body: Envelope{Data: data}}
	for _, opt := range opts {
		opt(j)
	}
	return *j
}

// JSONError renders err in the envelope. HTTPError and ValidationError keep
// their status and details; anything else is a 500 with a generic message.
func JSONError(err error, opts ...JSONOption) Response {
	status, detail := errorToDetail(err)
	j := &jsonResponse{status: status, body: Envelope{Error: detail}, cause: err}
	for _, opt := range opts {
		opt(j)
	}
	return *j
}

func errorToDetail(err error) (int, *ErrorDetail) {
	var valErr ValidationError
	if errors.As(err, &valErr) {
		detail := &ErrorDetail{
			Code:    "validation_error",
			Message: "request validation failed",
			Details: make(map[string][]string, len(valErr)),
		}
		maps.Copy(detail.Details, valErr)
		return http.StatusUnprocessableEntity, detail
	}

	var httpErr HTTPError
	if errors.As(err, &httpErr) {
		msg := httpErr.Message
		if msg == "" {
			msg = http.StatusText(httpErr.Code)
		}
		return httpErr.Code, &ErrorDetail{Code: httpErr.Key, Message: msg}
	}

	return http.StatusInternalServerError, &ErrorDetail{
		Code:    ErrInternal.Key,
		Message: http.StatusText(http.StatusInternalServerError),
	}
}

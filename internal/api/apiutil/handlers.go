package apiutil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

// HandlerError carries the status and client-facing message for a failed
// request. Err is logged, never shown.
type HandlerError struct {
	Status  int
	Message string
	Details any
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

type errorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("missing request body")
		}
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteError renders err as a JSON error body. Anything that is not a
// HandlerError becomes a logged 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	logger := log.Ctx(r.Context())

	var handlerErr HandlerError
	if !errors.As(err, &handlerErr) {
		handlerErr = HandlerError{
			Status:  http.StatusInternalServerError,
			Message: "Internal Server Error",
			Err:     err,
		}
	}

	event := logger.Warn()
	if handlerErr.Status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Err(handlerErr.Err).
		Int("status", handlerErr.Status).
		Str("path", r.URL.Path).
		Msg(handlerErr.Message)

	if writeErr := WriteJSON(w, handlerErr.Status, errorResponse{
		Error:   handlerErr.Message,
		Details: handlerErr.Details,
	}); writeErr != nil {
		logger.Error().Err(writeErr).Msg("Failed to write error response")
	}
}

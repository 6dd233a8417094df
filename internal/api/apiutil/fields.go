package apiutil

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

func ParsePositiveInt64Field(raw string, field string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", field)
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("%s must be greater than 0", field)
	}
	return value, nil
}

// PathID reads a positive integer path parameter registered on the mux
// pattern, e.g. {id}.
func PathID(r *http.Request, key string) (int64, error) {
	id, err := ParsePositiveInt64Field(r.PathValue(key), key)
	if err != nil {
		return 0, FieldError{Field: key, Reason: "must be a positive integer"}
	}
	return id, nil
}

// RequirePositive rejects a missing or non-positive id decoded from a body.
func RequirePositive(value int64, field string) error {
	if value <= 0 {
		return FieldError{Field: field, Reason: "must be a positive integer"}
	}
	return nil
}

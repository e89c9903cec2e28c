package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	app_errors "intake-assistant/backend/internal/errors"
)

// maxBodyBytes bounds request bodies; a chat payload with eight history
// turns is a few kilobytes.
const maxBodyBytes = 64 << 10

var (
	validate *validator.Validate
	once     sync.Once
)

// getInstance returns the shared validator, creating it on first use.
func getInstance() *validator.Validate {
	once.Do(func() {
		validate = validator.New()
	})
	return validate
}

// validateRequest checks payload against its `validate` struct tags and
// returns a wrapped app_errors.ErrValidation listing every failed field.
func validateRequest(payload interface{}) error {
	err := getInstance().Struct(payload)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%w: an unexpected error occurred during validation: %s", app_errors.ErrValidation, err.Error())
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		// e.g. "Field 'Message' failed on the 'required' tag"
		messages = append(messages, fmt.Sprintf("Field '%s' failed on the '%s' tag", fieldErr.Field(), fieldErr.Tag()))
	}
	return fmt.Errorf("%w: %s", app_errors.ErrValidation, strings.Join(messages, "; "))
}

// decodeAndValidate reads a JSON body into dst and validates it. Malformed
// or oversized bodies are validation errors.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			return fmt.Errorf("%w: request body too large", app_errors.ErrValidation)
		case errors.Is(err, io.EOF):
			return fmt.Errorf("%w: request body is empty", app_errors.ErrValidation)
		default:
			return fmt.Errorf("%w: invalid request payload", app_errors.ErrValidation)
		}
	}
	return validateRequest(dst)
}

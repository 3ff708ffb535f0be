package docgen

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/tidwall/gjson"

	"docstudio/internal/config"
	"docstudio/internal/domain"
)

var errInvalidJSON = errors.New("Invalid JSON format")

// isJSON rejects strings that are not a single well-formed JSON value.
var isJSON = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	if !gjson.Valid(s) {
		return errInvalidJSON
	}
	return nil
})

// asValidationError turns ozzo-validation field errors into a domain FieldError
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if errors.As(err, &fieldErrs) {
		return domain.NewFieldError(fieldErrs)
	}
	return fmt.Errorf("%w: %v", domain.ErrValidation, err)
}

// documentName derives a document name from the first line of a description
func documentName(description string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(description), "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}
	if runes := []rune(line); len(runes) > config.MaxDocumentNameLength {
		line = string(runes[:config.MaxDocumentNameLength])
	}
	return line
}

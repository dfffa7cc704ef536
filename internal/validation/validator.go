package validation

import (
	"strconv"
	"strings"

	"syllabus-builder/internal/domain"
)

// EmptySourceMessage is shown when the syllabus field is blank.
const EmptySourceMessage = "Please enter some course topics or syllabus content."

// Validator provides request validation functionality
type Validator struct {
	defaultWeeks int
	maxWeeks     int
}

// NewValidator creates a validator for the configured week bounds.
func NewValidator(defaultWeeks, maxWeeks int) *Validator {
	return &Validator{defaultWeeks: defaultWeeks, maxWeeks: maxWeeks}
}

// DefaultWeeks is used when a request omits the week count.
func (v *Validator) DefaultWeeks() int {
	return v.defaultWeeks
}

// ValidateGenerateRequest checks the syllabus text and week count. A zero week count
// means "use the default" and is replaced in place.
func (v *Validator) ValidateGenerateRequest(text string, weeks *int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(text) == "" {
		errors = append(errors, domain.ValidationError{
			Field:   "text",
			Code:    domain.CodeMissingField,
			Message: EmptySourceMessage,
		})
	}

	if *weeks == 0 {
		*weeks = v.defaultWeeks
	}
	if *weeks < 1 || *weeks > v.maxWeeks {
		errors = append(errors, domain.NewOutOfRangeError("weeks", *weeks, 1, v.maxWeeks))
	}

	return errors
}

// ParseWeeks reads an optional week count from a query or form value.
func (v *Validator) ParseWeeks(raw string) (int, domain.ValidationErrors) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("weeks", raw)}
	}
	return n, nil
}

// ParseWeekNumber converts a one-based week number from a URL into a zero-based index.
// Bounds against the course are checked by the dashboard.
func (v *Validator) ParseWeekNumber(raw string) (int, domain.ValidationErrors) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.ValidationErrors{domain.NewInvalidFormatError("week", raw)}
	}
	if n < 1 {
		return 0, domain.ValidationErrors{domain.NewOutOfRangeError("week", n, 1, v.maxWeeks)}
	}
	return n - 1, nil
}

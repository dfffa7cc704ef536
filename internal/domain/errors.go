package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Generation errors
	CodeConfig               ErrorCode = "CONFIG_ERROR"
	CodeLLMServiceError      ErrorCode = "LLM_SERVICE_ERROR"
	CodeParse                ErrorCode = "PARSE_ERROR"
	CodeGenerationInProgress ErrorCode = "GENERATION_IN_PROGRESS"
	CodeCourseNotFound       ErrorCode = "COURSE_NOT_FOUND"
)

// GenerationFailedMessage is the only failure text shown to end users, whatever went wrong.
const GenerationFailedMessage = "Failed to generate course. Please verify your API Key and try again."

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// WithContext attaches a detail value reported alongside the error.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// NewConfigError reports a configuration problem that blocks generation, such as a missing credential.
func NewConfigError(message string) *DomainError {
	return NewError(CodeConfig, message, nil)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMServiceError, "Failed to process with LLM service", cause)
}

func NewParseError(message string, cause error) *DomainError {
	return NewError(CodeParse, message, cause)
}

func NewGenerationInProgressError() *DomainError {
	return NewError(CodeGenerationInProgress, "A course is already being generated", nil)
}

func NewCourseNotFoundError() *DomainError {
	return NewError(CodeCourseNotFound, "No course has been generated yet", nil)
}

// CodeOf returns the code of the first DomainError in err's chain, or CodeInternal.
func CodeOf(err error) ErrorCode {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

func IsConfigError(err error) bool  { return CodeOf(err) == CodeConfig }
func IsServiceError(err error) bool { return CodeOf(err) == CodeLLMServiceError }
func IsParseError(err error) bool   { return CodeOf(err) == CodeParse }

// IsGenerationFailure reports whether err is one of the failures users see as the generic message.
func IsGenerationFailure(err error) bool {
	switch CodeOf(err) {
	case CodeConfig, CodeLLMServiceError, CodeParse:
		return true
	}
	return false
}

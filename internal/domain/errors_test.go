package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewLLMServiceError(cause)

	assert.Equal(t, "Failed to process with LLM service: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	data, jerr := json.Marshal(err)
	require.NoError(t, jerr)
	assert.JSONEq(t, `{"code":"LLM_SERVICE_ERROR","message":"Failed to process with LLM service"}`, string(data))
}

func TestCodeOf(t *testing.T) {
	wrapped := fmt.Errorf("generate: %w", NewParseError("No response from AI", nil))
	assert.Equal(t, CodeParse, CodeOf(wrapped))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.True(t, IsParseError(wrapped))
	assert.True(t, IsConfigError(NewConfigError("missing")))
	assert.True(t, IsServiceError(NewLLMServiceError(nil)))
}

func TestIsGenerationFailure(t *testing.T) {
	assert.True(t, IsGenerationFailure(NewConfigError("x")))
	assert.True(t, IsGenerationFailure(NewLLMServiceError(nil)))
	assert.True(t, IsGenerationFailure(NewParseError("x", nil)))
	assert.False(t, IsGenerationFailure(NewInvalidInputError("x")))
	assert.False(t, IsGenerationFailure(NewGenerationInProgressError()))
	assert.False(t, IsGenerationFailure(errors.New("x")))
}

func TestWithContext(t *testing.T) {
	err := NewCourseNotFoundError().WithContext("session", "s1")
	assert.Equal(t, "s1", err.Context["session"])
}

func TestValidationErrors(t *testing.T) {
	errs := ValidationErrors{
		NewMissingFieldError("text"),
		NewOutOfRangeError("weeks", 20, 1, 16),
		NewInvalidFormatError("tab", "grades"),
	}
	assert.Equal(t, "text is required; weeks must be between 1 and 16; tab has an invalid format", errs.Error())
	assert.Equal(t, CodeInvalidFormat, errs[2].Code)
	assert.Equal(t, 20, errs[1].Value)
}

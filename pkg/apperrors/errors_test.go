package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeMatching(t *testing.T) {
	err := Conflict("duplicate pending verification")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, CodeConflict, CodeOf(err))
}

func TestWrappedCauseSurvives(t *testing.T) {
	cause := errors.New("unique constraint violated")
	err := Wrap(CodeConflict, "email already registered", cause)

	assert.True(t, errors.Is(err, ErrConflict))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "unique constraint")
}

func TestCodeSurvivesFmtWrapping(t *testing.T) {
	err := fmt.Errorf("approve verification: %w", InvalidState("record is not pending"))

	assert.True(t, errors.Is(err, ErrInvalidState))
	assert.Equal(t, CodeInvalidState, CodeOf(err))
}

func TestCodeOfPlainError(t *testing.T) {
	assert.Equal(t, Code(""), CodeOf(errors.New("boom")))
}

func TestValidationFields(t *testing.T) {
	err := ValidationFields("validation failed", map[string]string{"remarks": "This field is required"})

	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "This field is required", err.Fields["remarks"])
}

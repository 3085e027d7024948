package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_IsErrValidation(t *testing.T) {
	err := error(NewValidationError("email", "The email has already been taken."))
	require.True(t, errors.Is(err, ErrValidation))

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"The email has already been taken."}, ve.Fields["email"])
}

func TestValidationError_ErrorIsSortedAndJoined(t *testing.T) {
	v := &ValidationError{}
	v.Add("courses", "required")
	v.Add("amount", "must be at least 0")
	v.Add("amount", "must be numeric")

	assert.Equal(t, "validation failed: amount: must be at least 0; must be numeric, courses: required", v.Error())
}

func TestValidationError_Empty(t *testing.T) {
	var nilErr *ValidationError
	assert.True(t, nilErr.Empty())
	assert.True(t, (&ValidationError{}).Empty())
	assert.False(t, NewValidationError("a", "b").Empty())
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromErrorKeepsTypedErrors(t *testing.T) {
	wrapped := fmt.Errorf("lookup: %w", Clone(ErrNotFound, "forecast not found"))

	appErr := FromError(wrapped)
	assert.Equal(t, ErrNotFound.Code, appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.Status)
	assert.Equal(t, "forecast not found", appErr.Message)
}

func TestFromErrorNormalisesUnknownErrors(t *testing.T) {
	appErr := FromError(errors.New("connection refused"))
	assert.Equal(t, ErrInternal.Code, appErr.Code)
	assert.Equal(t, http.StatusInternalServerError, appErr.Status)
	assert.Contains(t, appErr.Error(), "connection refused")
	assert.Nil(t, FromError(nil))
}

func TestIsMatchesByCode(t *testing.T) {
	err := Wrap(errors.New("boom"), ErrMissingField.Code, ErrMissingField.Status, "missing: crop")
	assert.True(t, Is(err, ErrMissingField))
	assert.False(t, Is(err, ErrValidation))
	assert.False(t, Is(errors.New("plain"), ErrInternal))
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrForbidden, "admins only")
	assert.Equal(t, "admins only", clone.Message)
	assert.Equal(t, "forbidden", ErrForbidden.Message)
	assert.Nil(t, Clone(nil, "x"))
}

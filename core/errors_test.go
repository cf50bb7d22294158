package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrQuotaExceeded_IsForbidden(t *testing.T) {
	wrapped := fmt.Errorf("failed to create todo: %w", ErrQuotaExceeded)

	assert.True(t, errors.Is(wrapped, ErrQuotaExceeded))
	assert.True(t, errors.Is(wrapped, ErrForbidden))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
}

func TestIsNotFoundError(t *testing.T) {
	assert.False(t, IsNotFoundError(nil))
	assert.True(t, IsNotFoundError(ErrNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("todo td_1: %w", ErrNotFound)))
	assert.False(t, IsNotFoundError(errors.New("user not found")))
}

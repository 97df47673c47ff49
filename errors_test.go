package aviary

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCategories(t *testing.T) {
	transient := NewTransientError("rate limited", 429, nil)
	permanent := NewPermanentError("unknown agent", 404, nil)
	userInput := NewUserInputError("bad request", 400, nil)

	assert.True(t, IsTransient(transient))
	assert.False(t, IsTransient(permanent))
	assert.True(t, IsPermanent(permanent))
	assert.True(t, IsUserInput(userInput))
	assert.False(t, IsUserInput(permanent))

	assert.Equal(t, 429, StatusCodeOf(transient))
	assert.Equal(t, 0, StatusCodeOf(errors.New("plain")))
}

func TestErrorWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewTransientError("fetch run", 0, cause)

	assert.Equal(t, "fetch run: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)

	wrapped := fmt.Errorf("poll loop: %w", err)
	assert.True(t, IsTransient(wrapped))
	assert.Equal(t, 0, StatusCodeOf(wrapped))
}

func TestUncategorizedErrors(t *testing.T) {
	err := errors.New("something else")
	assert.False(t, IsTransient(err))
	assert.False(t, IsPermanent(err))
	assert.False(t, IsUserInput(err))
}

func TestErrEmptyUserInput(t *testing.T) {
	assert.True(t, IsUserInput(ErrEmptyUserInput))
}

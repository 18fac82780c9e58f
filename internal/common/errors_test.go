package common

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError(t *testing.T) {
	err := NewValidationError("amount", "enter a valid amount (minimum 1)")
	assert.True(t, IsValidation(err))
	assert.Equal(t, "amount: enter a valid amount (minimum 1)", err.Error())

	wrapped := fmt.Errorf("submit failed: %w", err)
	assert.True(t, IsValidation(wrapped), "validation survives wrapping")

	assert.False(t, IsValidation(errors.New("boom")))
}

func TestServerError(t *testing.T) {
	withMessage := &ServerError{StatusCode: 422, Message: "insufficient funds"}
	assert.Equal(t, "insufficient funds", withMessage.Error())

	bare := &ServerError{StatusCode: 500}
	assert.Equal(t, "server error (status 500)", bare.Error())
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		err  error
		name string
		want bool
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, want: true},
		{name: "marked retryable", err: &RetryableError{Err: errors.New("503"), Retryable: true}, want: true},
		{name: "marked non-retryable", err: &RetryableError{Err: errors.New("400"), Retryable: false}, want: false},
		{name: "not found", err: ErrNotFound, want: false},
		{name: "plain error", err: errors.New("boom"), want: false},
		{name: "validation", err: NewValidationError("amount", "bad"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRetryable(tt.err))
		})
	}
}

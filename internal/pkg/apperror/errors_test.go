package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindsMatch(t *testing.T) {
	cause := errors.New("disk on fire")

	tests := []struct {
		name string
		err  error
		kind error
	}{
		{"validation", Validation("No file uploaded"), ErrValidation},
		{"not found", NotFound("File not found"), ErrNotFound},
		{"decode", Decode(cause), ErrDecode},
		{"storage", Storage("write failed", cause), ErrStorage},
	}

	kinds := []error{ErrValidation, ErrNotFound, ErrDecode, ErrStorage}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range kinds {
				assert.Equal(t, k == tt.kind, errors.Is(tt.err, k), "kind %v", k)
			}
		})
	}
}

func TestCauseIsReachable(t *testing.T) {
	cause := errors.New("disk on fire")
	err := fmt.Errorf("upload: %w", Storage("write failed", cause))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrStorage)
	assert.Equal(t, "write failed", Message(err))
}

func TestMessageOfPlainError(t *testing.T) {
	assert.Equal(t, "", Message(errors.New("boom")))
}

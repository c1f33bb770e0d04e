package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	errMissing := New(KindNotFound, "thing not found")

	assert.Equal(t, KindNotFound, KindOf(errMissing))
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("load thing: %w", errMissing)))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, Kind(""), KindOf(nil))
}

func TestIs(t *testing.T) {
	errExpired := New(KindExpired, "expired")
	wrapped := fmt.Errorf("claim: %w", errExpired)

	assert.True(t, Is(wrapped, KindExpired))
	assert.False(t, Is(wrapped, KindConflict))
	assert.True(t, errors.Is(wrapped, errExpired))
}

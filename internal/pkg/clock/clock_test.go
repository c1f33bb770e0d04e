package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDateOf_UsesLocation(t *testing.T) {
	ist, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	// 20:00 UTC on Aug 14 is already Aug 15 in IST.
	instant := time.Date(2025, 8, 14, 20, 0, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2025, 8, 14, 0, 0, 0, 0, time.UTC), DateOf(instant, time.UTC))
	assert.Equal(t, time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC), DateOf(instant, ist))
}

func TestFixed(t *testing.T) {
	start := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	c := NewFixed(start, nil)

	assert.True(t, c.Now().Equal(start))
	c.Advance(2 * time.Hour)
	assert.True(t, c.Now().Equal(start.Add(2*time.Hour)))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Today(c))
}

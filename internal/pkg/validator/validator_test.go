package validator

import (
	"encoding/json"
	"testing"

	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsEmpty(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"abc", false},
		{" abc ", false},
	}
	for _, c := range cases {
		got := IsEmpty(c.input)
		if got != c.want {
			t.Errorf("IsEmpty(%q) = %v, want %v", c.input, got, c.want)
		}
	}
}

func TestIsValidDate(t *testing.T) {
	valid := []string{"2023-01-01", "2000-12-31", " 2025-08-15 "}
	invalid := []string{"2023-13-01", "2023-01-32", "2023/01/01", "01-01-2023", ""}
	for _, s := range valid {
		_, ok := IsValidDate(s)
		if !ok {
			t.Errorf("IsValidDate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		_, ok := IsValidDate(s)
		if ok {
			t.Errorf("IsValidDate(%q) = true, want false", s)
		}
	}
}

func TestIsValidClock(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	invalid := []string{"24:00", "9:30", "09:60", "0930", ""}
	for _, s := range valid {
		if !IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsValidClock(s) {
			t.Errorf("IsValidClock(%q) = true, want false", s)
		}
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("0188d0f2-7b8c-7b4a-8a2b-6b8b8b8b8b8b"))
	assert.True(t, IsValidUUID("123E4567-E89B-12D3-A456-426614174000"))
	assert.False(t, IsValidUUID("0188d0f27b8c7b4a8a2b6b8b8b8b8b8b"))
	assert.False(t, IsValidUUID(""))
}

func TestParseNonNegative(t *testing.T) {
	d, ok := ParseNonNegative("1.5")
	require.True(t, ok)
	assert.Equal(t, "1.5", d.String())

	_, ok = ParseNonNegative("-2")
	assert.False(t, ok)

	_, ok = ParseNonNegative("two")
	assert.False(t, ok)

	d, ok = ParseNonNegative("0")
	require.True(t, ok)
	assert.True(t, d.IsZero())
}

func TestNumberString_UnmarshalJSON(t *testing.T) {
	var payload struct {
		Hours NumberString `json:"hours"`
	}

	require.NoError(t, json.Unmarshal([]byte(`{"hours": 2.5}`), &payload))
	assert.Equal(t, "2.5", payload.Hours.String())

	require.NoError(t, json.Unmarshal([]byte(`{"hours": "3"}`), &payload))
	assert.Equal(t, "3", payload.Hours.String())

	require.NoError(t, json.Unmarshal([]byte(`{"hours": null}`), &payload))
	assert.Equal(t, "", payload.Hours.String())

	assert.Error(t, json.Unmarshal([]byte(`{"hours": true}`), &payload))
}

func TestValidationErrors(t *testing.T) {
	errs := Fail("reason", "reason is required")

	assert.Equal(t, "reason: reason is required", errs.Error())
	assert.Equal(t, map[string]string{"reason": "reason is required"}, errs.ToMap())
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(errs))
}

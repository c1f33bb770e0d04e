package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShiftLength(t *testing.T) {
	tests := []struct {
		name    string
		shift   Shift
		want    string
		nextDay bool
	}{
		{"general", DefaultShift, "8", false},
		{"night", Shift{StartTime: "22:00", EndTime: "06:00"}, "8", true},
		{"with break", Shift{StartTime: "06:00", EndTime: "14:30", BreakMinutes: 45}, "7.75", false},
		{"garbage", Shift{StartTime: "xx", EndTime: "yy"}, "0", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.shift.Length().String())
			assert.Equal(t, tt.nextDay, tt.shift.IsNextDayCheckout())
		})
	}
}

func TestCreateShiftRequest_Validate(t *testing.T) {
	ok := CreateShiftRequest{Name: "Night", StartTime: "22:00", EndTime: "06:00"}
	assert.NoError(t, ok.Validate())

	bad := CreateShiftRequest{StartTime: "9:00", EndTime: "9:00", BreakMinutes: -5}
	assert.Error(t, bad.Validate())
}

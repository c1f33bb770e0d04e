package approval

import (
	"encoding/json"
	"testing"

	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func firstField(t *testing.T, err error) string {
	t.Helper()
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 1)
	return verrs[0].Field
}

func TestSubmitRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantField string
	}{
		{"unknown type", `{"type":"overtime"}`, "type"},
		{"leave without anything", `{"type":"leave"}`, "category"},
		{"leave missing from", `{"type":"leave","category":"casual"}`, "from_date"},
		{"leave reversed range", `{"type":"leave","category":"casual","from_date":"2025-08-20","to_date":"2025-08-19"}`, "to_date"},
		{"leave half day over range", `{"type":"leave","category":"casual","from_date":"2025-08-19","to_date":"2025-08-20","session":"first_half","reason":"x"}`, "session"},
		{"leave no reason", `{"type":"leave","category":"casual","from_date":"2025-08-19","to_date":"2025-08-19","reason":"  "}`, "reason"},
		{"leave ok", `{"type":"leave","category":"medical","from_date":"2025-08-19","to_date":"2025-08-20","reason":"flu"}`, ""},
		{"od bad time", `{"type":"od","from_date":"2025-08-19","to_date":"2025-08-19","from_time":"25:00"}`, "from_time"},
		{"od missing purpose", `{"type":"od","from_date":"2025-08-19","to_date":"2025-08-19","place":"Pune"}`, "purpose"},
		{"od ok", `{"type":"od","from_date":"2025-08-19","to_date":"2025-08-21","purpose":"audit","place":"Pune"}`, ""},
		{"comp negative hours", `{"type":"compensatory","date":"2025-08-17","hours":-1,"reason":"x"}`, "hours"},
		{"comp garbage hours", `{"type":"compensatory","date":"2025-08-17","hours":"abc","reason":"x"}`, "hours"},
		{"comp missing hours", `{"type":"compensatory","date":"2025-08-17","reason":"x"}`, "hours"},
		{"comp string hours", `{"type":"compensatory","date":"2025-08-17","hours":"1.5","reason":"line down"}`, ""},
		{"comp number hours", `{"type":"compensatory","date":"2025-08-17","hours":0,"reason":"x"}`, ""},
		{"punch bad direction", `{"type":"punch_missed","date":"2025-08-17","punch_time":"09:00","direction":"up"}`, "direction"},
		{"punch ok", `{"type":"punch_missed","date":"2025-08-17","punch_time":"09:00","direction":"in","reason":"card"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req SubmitRequest
			require.NoError(t, json.Unmarshal([]byte(tt.body), &req))

			err := req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tt.wantField, firstField(t, err))
		})
	}
}

func TestSubmitRequest_ToRequest(t *testing.T) {
	req := SubmitRequest{Type: "compensatory", Date: "2025-08-17", Hours: "1.5", Reason: "line down"}
	require.NoError(t, req.Validate())

	r := req.ToRequest("emp-1")
	assert.Equal(t, TypeCompensatory, r.Type)
	require.NotNil(t, r.Compensatory)
	assert.Equal(t, "1.5", r.Compensatory.Hours.String())

	from, to := r.Span()
	assert.Equal(t, "2025-08-17", from.Format(validator.DateLayout))
	assert.Equal(t, from, to)
}

func TestDecideRequest_Validate(t *testing.T) {
	ok := DecideRequest{Role: "hod", Decision: "approved"}
	assert.NoError(t, ok.Validate())

	bad := DecideRequest{Role: "employee", Decision: "acknowledged"}
	var verrs validator.ValidationErrors
	require.ErrorAs(t, bad.Validate(), &verrs)
	assert.Len(t, verrs, 2)
}

func TestRequest_PayloadRoundTrip(t *testing.T) {
	body := SubmitRequest{Type: "leave", Category: "casual", FromDate: "2025-08-19", ToDate: "2025-08-20", Reason: "trip"}
	require.NoError(t, body.Validate())
	r := body.ToRequest("emp-1")
	r.Leave.Days = 2

	data, err := r.MarshalPayload()
	require.NoError(t, err)

	decoded := Request{Type: TypeLeave}
	require.NoError(t, decoded.UnmarshalPayload(data))
	assert.Equal(t, r.Leave, decoded.Leave)

	category, days := decoded.LeaveColumns()
	assert.Equal(t, "casual", *category)
	assert.Equal(t, 2.0, *days)
}

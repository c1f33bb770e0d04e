package approval

import (
	"encoding/json"
	"fmt"
)

// MarshalPayload encodes whichever payload the request carries, for storage.
func (r Request) MarshalPayload() ([]byte, error) {
	switch r.Type {
	case TypeLeave:
		return json.Marshal(r.Leave)
	case TypeOD:
		return json.Marshal(r.OD)
	case TypeCompensatory:
		return json.Marshal(r.Compensatory)
	case TypePunchMissed:
		return json.Marshal(r.PunchMissed)
	}
	return nil, fmt.Errorf("unknown request type %q", r.Type)
}

// UnmarshalPayload decodes stored payload data according to r.Type.
func (r *Request) UnmarshalPayload(data []byte) error {
	var target any
	switch r.Type {
	case TypeLeave:
		r.Leave = &LeavePayload{}
		target = r.Leave
	case TypeOD:
		r.OD = &ODPayload{}
		target = r.OD
	case TypeCompensatory:
		r.Compensatory = &CompensatoryPayload{}
		target = r.Compensatory
	case TypePunchMissed:
		r.PunchMissed = &PunchMissedPayload{}
		target = r.PunchMissed
	default:
		return fmt.Errorf("unknown request type %q", r.Type)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("decode %s payload: %w", r.Type, err)
	}
	return nil
}

// LeaveColumns returns the denormalised leave fields kept next to the payload
// so balances can be summed in the store.
func (r Request) LeaveColumns() (category *string, days *float64) {
	if r.Leave == nil {
		return nil, nil
	}
	c := string(r.Leave.Category)
	d := r.Leave.Days
	return &c, &d
}

package grant

import (
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
)

type ClaimRequest struct {
	Project     string `json:"project"`
	Description string `json:"description"`
}

func (r *ClaimRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Project) {
		errs = append(errs, validator.ValidationError{
			Field:   "project",
			Message: "project is required",
		})
	}
	if validator.IsEmpty(r.Description) {
		errs = append(errs, validator.ValidationError{
			Field:   "description",
			Message: "description is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClaimResponse struct {
	Project     string    `json:"project"`
	Description string    `json:"description"`
	ClaimedAt   time.Time `json:"claimed_at"`
}

type GrantResponse struct {
	ID            string         `json:"id"`
	EmployeeID    string         `json:"employee_id"`
	Date          string         `json:"date"`
	Hours         string         `json:"hours"`
	ClaimDeadline *time.Time     `json:"claim_deadline,omitempty"`
	Window        string         `json:"window"`
	SecondsLeft   *int64         `json:"seconds_left,omitempty"`
	Claimable     bool           `json:"claimable"`
	Claimed       bool           `json:"claimed"`
	Claim         *ClaimResponse `json:"claim,omitempty"`
	Source        string         `json:"source"`
	SourceID      string         `json:"source_id"`
	CreatedAt     time.Time      `json:"created_at"`
}

// ToResponse renders g with its window evaluated at now.
func ToResponse(g Grant, now time.Time) GrantResponse {
	w := RemainingTime(g, now)
	resp := GrantResponse{
		ID:            g.ID,
		EmployeeID:    g.EmployeeID,
		Date:          g.Date.Format(validator.DateLayout),
		Hours:         g.Hours.String(),
		ClaimDeadline: g.ClaimDeadline,
		Window:        string(w.State),
		Claimable:     g.IsClaimable(now),
		Claimed:       g.Claimed,
		Source:        string(g.Source),
		SourceID:      g.SourceID,
		CreatedAt:     g.CreatedAt,
	}
	if w.State == WindowRemaining {
		secs := int64(w.Left / time.Second)
		resp.SecondsLeft = &secs
	}
	if g.Claim != nil {
		resp.Claim = &ClaimResponse{
			Project:     g.Claim.Project,
			Description: g.Claim.Description,
			ClaimedAt:   g.Claim.ClaimedAt,
		}
	}
	return resp
}

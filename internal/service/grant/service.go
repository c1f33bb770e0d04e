package grant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/grant"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/notification"
	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
)

// Config holds claim window settings
type Config struct {
	ClaimWindow      time.Duration // default: 48 hours
	ReminderLead     time.Duration // default: 24 hours
	ReminderInterval time.Duration // default: 1 hour, must match the cron period
}

type grantService struct {
	repo     grant.GrantRepository
	sources  grant.SourceVerifier
	notifier notification.Notifier
	clock    clock.Clock
	logger   *slog.Logger
	config   Config
}

// NewGrantService builds the claim window manager. A nil sources treats every
// grant's source as standing.
func NewGrantService(repo grant.GrantRepository, sources grant.SourceVerifier, notifier notification.Notifier, clk clock.Clock, logger *slog.Logger, cfg Config) grant.GrantService {
	if cfg.ClaimWindow <= 0 {
		cfg.ClaimWindow = 48 * time.Hour
	}
	if cfg.ReminderLead <= 0 {
		cfg.ReminderLead = 24 * time.Hour
	}
	if cfg.ReminderInterval <= 0 {
		cfg.ReminderInterval = time.Hour
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &grantService{
		repo:     repo,
		sources:  sources,
		notifier: notifier,
		clock:    clk,
		logger:   logger.With("component", "grant"),
		config:   cfg,
	}
}

// Issue implements grant.GrantService.
func (s *grantService) Issue(ctx context.Context, g grant.Grant) (grant.Grant, error) {
	now := s.clock.Now()
	if g.ClaimDeadline == nil {
		deadline := now.Add(s.config.ClaimWindow)
		g.ClaimDeadline = &deadline
	}
	g.Claimed = false
	g.Claim = nil
	g.CreatedAt = now

	created, err := s.repo.Create(ctx, g)
	if errors.Is(err, grant.ErrDuplicateSource) {
		existing, getErr := s.repo.GetBySource(ctx, g.Source, g.SourceID)
		if getErr != nil {
			return grant.Grant{}, fmt.Errorf("load existing grant for %s %s: %w", g.Source, g.SourceID, getErr)
		}
		return existing, nil
	}
	if err != nil {
		return grant.Grant{}, fmt.Errorf("failed to issue grant: %w", err)
	}

	s.logger.Info("grant issued",
		"grant_id", created.ID, "employee_id", created.EmployeeID,
		"hours", created.Hours.String(), "source", created.Source, "source_id", created.SourceID)

	msg := fmt.Sprintf("You earned %s compensatory hours for %s.", created.Hours.String(), created.Date.Format(validator.DateLayout))
	if !created.MeetsMinimum() {
		msg += " Grants under one hour cannot be claimed."
	}
	s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		RecipientID: created.EmployeeID,
		Type:        notification.TypeGrantIssued,
		Title:       "Compensatory hours granted",
		Message:     msg,
		Data: map[string]any{
			"grant_id":       created.ID,
			"hours":          created.Hours.String(),
			"claim_deadline": created.ClaimDeadline,
		},
	})
	return created, nil
}

// GetGrant is open to the owner and to approvers.
func (s *grantService) GetGrant(ctx context.Context, actor user.ActingUser, grantID string) (grant.GrantResponse, error) {
	g, err := s.repo.GetByID(ctx, grantID)
	if err != nil {
		return grant.GrantResponse{}, err
	}
	if g.EmployeeID != actor.EmployeeID && !actor.Role.IsApprover() {
		return grant.GrantResponse{}, grant.ErrGrantAccess
	}
	return s.toResponse(ctx, g, s.clock.Now())
}

func (s *grantService) ListMine(ctx context.Context, actor user.ActingUser) ([]grant.GrantResponse, error) {
	grants, err := s.repo.ListByEmployee(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	out := make([]grant.GrantResponse, 0, len(grants))
	for _, g := range grants {
		resp, err := s.toResponse(ctx, g, now)
		if err != nil {
			return nil, err
		}
		out = append(out, resp)
	}
	return out, nil
}

// ListClaimable leaves out claimed, expired, sub-hour and withdrawn grants.
func (s *grantService) ListClaimable(ctx context.Context, actor user.ActingUser) ([]grant.GrantResponse, error) {
	grants, err := s.repo.ListByEmployee(ctx, actor.EmployeeID)
	if err != nil {
		return nil, err
	}
	now := s.clock.Now()
	out := make([]grant.GrantResponse, 0, len(grants))
	for _, g := range grants {
		if !g.IsClaimable(now) {
			continue
		}
		stands, err := s.sourceStands(ctx, g)
		if err != nil {
			return nil, err
		}
		if stands {
			out = append(out, grant.ToResponse(g, now))
		}
	}
	return out, nil
}

// Claim checks, in order: existence, ownership, claimed, expiry, minimum hours,
// the source still standing and the payload, then flips the grant with a
// compare-and-set.
func (s *grantService) Claim(ctx context.Context, actor user.ActingUser, grantID string, req grant.ClaimRequest) (grant.GrantResponse, error) {
	g, err := s.repo.GetByID(ctx, grantID)
	if err != nil {
		return grant.GrantResponse{}, err
	}
	if g.EmployeeID != actor.EmployeeID {
		return grant.GrantResponse{}, grant.ErrNotGrantOwner
	}
	if g.Claimed {
		return grant.GrantResponse{}, grant.ErrAlreadyClaimed
	}

	now := s.clock.Now()
	if grant.RemainingTime(g, now).State == grant.WindowExpired {
		return grant.GrantResponse{}, grant.ErrGrantExpired
	}
	if !g.MeetsMinimum() {
		return grant.GrantResponse{}, grant.ErrNotClaimable
	}
	stands, err := s.sourceStands(ctx, g)
	if err != nil {
		return grant.GrantResponse{}, err
	}
	if !stands {
		return grant.GrantResponse{}, grant.ErrSourceWithdrawn
	}
	if err := req.Validate(); err != nil {
		return grant.GrantResponse{}, err
	}

	claim := grant.Claim{Project: req.Project, Description: req.Description, ClaimedAt: now}
	won, err := s.repo.MarkClaimed(ctx, g.ID, claim, now)
	if err != nil {
		return grant.GrantResponse{}, fmt.Errorf("failed to claim grant: %w", err)
	}
	if !won {
		current, err := s.repo.GetByID(ctx, g.ID)
		if err != nil {
			return grant.GrantResponse{}, err
		}
		if current.Claimed {
			return grant.GrantResponse{}, grant.ErrAlreadyClaimed
		}
		return grant.GrantResponse{}, grant.ErrClaimConflict
	}

	g.Claimed = true
	g.Claim = &claim

	s.logger.Info("grant claimed", "grant_id", g.ID, "employee_id", g.EmployeeID, "project", req.Project)
	s.notifier.Notify(ctx, notification.CreateNotificationRequest{
		RecipientID: g.EmployeeID,
		Type:        notification.TypeGrantClaimed,
		Title:       "Compensatory hours claimed",
		Message:     fmt.Sprintf("%s hours claimed against %s.", g.Hours.String(), req.Project),
		Data:        map[string]any{"grant_id": g.ID},
	})
	return grant.ToResponse(g, now), nil
}

// SendExpiryReminders looks at deadlines in one interval-wide slice ending at
// now+lead. Each deadline falls in exactly one run's slice.
func (s *grantService) SendExpiryReminders(ctx context.Context) (int, error) {
	now := s.clock.Now()
	to := now.Add(s.config.ReminderLead)
	from := to.Add(-s.config.ReminderInterval)

	grants, err := s.repo.ListDeadlineBetween(ctx, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to list expiring grants: %w", err)
	}

	sent := 0
	for _, g := range grants {
		if !g.MeetsMinimum() {
			continue
		}
		if stands, err := s.sourceStands(ctx, g); err != nil || !stands {
			if err != nil {
				s.logger.Warn("skipping reminder, source check failed", "grant_id", g.ID, "error", err)
			}
			continue
		}
		s.notifier.Notify(ctx, notification.CreateNotificationRequest{
			RecipientID: g.EmployeeID,
			Type:        notification.TypeGrantExpiring,
			Title:       "Compensatory hours expiring",
			Message: fmt.Sprintf("Your %s hours from %s must be claimed by %s.",
				g.Hours.String(), g.Date.Format(validator.DateLayout),
				g.ClaimDeadline.In(s.clock.Location()).Format("02 Jan 15:04")),
			Data: map[string]any{"grant_id": g.ID, "claim_deadline": g.ClaimDeadline},
		})
		sent++
	}
	return sent, nil
}

func (s *grantService) sourceStands(ctx context.Context, g grant.Grant) (bool, error) {
	if s.sources == nil {
		return true, nil
	}
	stands, err := s.sources.SourceStands(ctx, g)
	if err != nil {
		return false, fmt.Errorf("failed to check grant source: %w", err)
	}
	return stands, nil
}

// toResponse renders g, marking it unclaimable when its source was withdrawn.
func (s *grantService) toResponse(ctx context.Context, g grant.Grant, now time.Time) (grant.GrantResponse, error) {
	resp := grant.ToResponse(g, now)
	if !resp.Claimable {
		return resp, nil
	}
	stands, err := s.sourceStands(ctx, g)
	if err != nil {
		return grant.GrantResponse{}, err
	}
	resp.Claimable = stands
	return resp, nil
}

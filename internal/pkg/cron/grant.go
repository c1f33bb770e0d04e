package cron

import (
	"context"
	"time"

	"github.com/cmlabs-hris/hris-workflow-go/internal/domain/grant"
)

// GrantReminderJob nudges owners of grants whose claim window is closing.
type GrantReminderJob struct {
	grantService grant.GrantService
	interval     time.Duration
}

// NewGrantReminderJob runs every interval, which must equal the grant
// service's reminder interval so each grant is reminded once.
func NewGrantReminderJob(grantService grant.GrantService, interval time.Duration) *GrantReminderJob {
	if interval <= 0 {
		interval = time.Hour
	}
	return &GrantReminderJob{
		grantService: grantService,
		interval:     interval,
	}
}

// RegisterJobs registers the reminder with the scheduler
func (j *GrantReminderJob) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("grant_expiry_reminders", j.interval, j.SendReminders)
}

func (j *GrantReminderJob) SendReminders(ctx context.Context) error {
	_, err := j.grantService.SendExpiryReminders(ctx)
	return err
}

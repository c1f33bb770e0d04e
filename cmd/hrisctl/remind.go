package main

import (
	"fmt"
	"log/slog"

	grantService "github.com/cmlabs-hris/hris-workflow-go/internal/service/grant"
	notificationService "github.com/cmlabs-hris/hris-workflow-go/internal/service/notification"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send claim expiry reminders once",
	Long: `Runs one pass of the reminder job the API server schedules every
CLAIM_REMINDER_INTERVAL. Schedule it externally at that interval when the
server is not running.`,
	Args: cobra.NoArgs,
	RunE: runRemind,
}

func runRemind(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.store.Close()

	notifSvc := notificationService.NewNotificationService(e.store.Notifications, e.clock, slog.Default(), notificationService.Config{
		BatchSize:     e.cfg.Notification.BatchSize,
		FlushInterval: e.cfg.Notification.FlushInterval,
		WorkerCount:   1,
		QueueSize:     e.cfg.Notification.QueueSize,
	})
	grants := grantService.NewGrantService(e.store.Grants, grantService.NewRequestSourceVerifier(e.store.Requests), notifSvc, e.clock, slog.Default(), grantService.Config{
		ClaimWindow:      e.cfg.Workflow.ClaimWindow,
		ReminderLead:     e.cfg.Workflow.ReminderLead,
		ReminderInterval: e.cfg.Workflow.ReminderInterval,
	})

	sent, err := grants.SendExpiryReminders(cmd.Context())
	// Stop flushes queued reminders before the store closes
	notifSvc.Stop()
	if err != nil {
		return err
	}

	logger.Info("reminder pass finished", zap.Int("sent", sent))
	fmt.Fprintf(cmd.OutOrStdout(), "reminders sent: %d\n", sent)
	return nil
}

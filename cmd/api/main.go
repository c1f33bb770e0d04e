package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/cmlabs-hris/hris-workflow-go/internal/config"
	appHTTP "github.com/cmlabs-hris/hris-workflow-go/internal/handler/http"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/hris-workflow-go/internal/repository"
	approvalService "github.com/cmlabs-hris/hris-workflow-go/internal/service/approval"
	attendanceService "github.com/cmlabs-hris/hris-workflow-go/internal/service/attendance"
	employeeService "github.com/cmlabs-hris/hris-workflow-go/internal/service/employee"
	grantService "github.com/cmlabs-hris/hris-workflow-go/internal/service/grant"
	holidayService "github.com/cmlabs-hris/hris-workflow-go/internal/service/holiday"
	notificationService "github.com/cmlabs-hris/hris-workflow-go/internal/service/notification"
	shiftService "github.com/cmlabs-hris/hris-workflow-go/internal/service/shift"
	"golang.org/x/sync/errgroup"
)

const version = "v1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "Server error:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := parseLevel(cfg.App.LogLevel)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clk := clock.New(loc)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := repository.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()
	logger.Info("store ready", "driver", cfg.Store.Driver)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	notifSvc := notificationService.NewNotificationService(store.Notifications, clk, logger, notificationService.Config{
		BatchSize:     cfg.Notification.BatchSize,
		FlushInterval: cfg.Notification.FlushInterval,
		WorkerCount:   cfg.Notification.WorkerCount,
		QueueSize:     cfg.Notification.QueueSize,
	})
	defer notifSvc.Stop()

	grantSvc := grantService.NewGrantService(store.Grants, grantService.NewRequestSourceVerifier(store.Requests), notifSvc, clk, logger, grantService.Config{
		ClaimWindow:      cfg.Workflow.ClaimWindow,
		ReminderLead:     cfg.Workflow.ReminderLead,
		ReminderInterval: cfg.Workflow.ReminderInterval,
	})
	shiftSvc := shiftService.NewShiftService(store.Shifts, store.Employees, clk)
	approvalSvc := approvalService.NewApprovalService(store.Requests, store.Employees, store.Holidays, grantSvc, notifSvc, clk, logger)
	attendanceSvc := attendanceService.NewAttendanceService(store.Attendance, store.Employees, store.Holidays, shiftSvc, grantSvc, clk, logger)
	employeeSvc := employeeService.NewEmployeeService(store.Employees, store.Requests, clk)
	holidaySvc := holidayService.NewHolidayService(store.Holidays, clk, logger)

	router := appHTTP.NewRouter(JWTService, appHTTP.Handlers{
		Request:      appHTTP.NewRequestHandler(approvalSvc),
		Grant:        appHTTP.NewGrantHandler(grantSvc),
		Attendance:   appHTTP.NewAttendanceHandler(attendanceSvc),
		Shift:        appHTTP.NewShiftHandler(shiftSvc),
		Employee:     appHTTP.NewEmployeeHandler(employeeSvc),
		Holiday:      appHTTP.NewHolidayHandler(holidaySvc, clk),
		Notification: appHTTP.NewNotificationHandler(notifSvc),
	}, appHTTP.RouterOptions{
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Env:            cfg.App.Env,
		Version:        version,
		LogLevel:       level,
	})

	scheduler := cron.NewScheduler(logger)
	cron.NewGrantReminderJob(grantSvc, cfg.Workflow.ReminderInterval).RegisterJobs(scheduler)

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Server running", "addr", server.Addr, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		scheduler.Start()
		<-gctx.Done()
		scheduler.Stop()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
		defer cancel()
		logger.Info("Shutting down server")
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

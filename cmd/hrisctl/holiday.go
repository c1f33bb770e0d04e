package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-workflow-go/internal/pkg/validator"
	holidayService "github.com/cmlabs-hris/hris-workflow-go/internal/service/holiday"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var holidayYear int

var holidayCmd = &cobra.Command{
	Use:   "holiday",
	Short: "Manage the holiday calendar",
}

var holidayImportCmd = &cobra.Command{
	Use:   "import [file.yaml]",
	Short: "Import holidays from a YAML file",
	Long: `Reads a file of the form

  holidays:
    - name: Independence Day
      date: 2025-08-15
    - name: Onam
      date: 05-09-2025
      type: restricted

Rows without a name or a readable date are dropped. Rows already stored are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runHolidayImport,
}

var holidayCheckCmd = &cobra.Command{
	Use:   "check [YYYY-MM-DD]",
	Short: "Report whether a date is a holiday",
	Args:  cobra.ExactArgs(1),
	RunE:  runHolidayCheck,
}

var holidayListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the holidays of a year",
	RunE:  runHolidayList,
}

func init() {
	holidayListCmd.Flags().IntVar(&holidayYear, "year", 0, "calendar year (default current)")
	holidayCmd.AddCommand(holidayImportCmd, holidayCheckCmd, holidayListCmd)
}

func runHolidayImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	req, err := holidayService.DecodeFile(f)
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.store.Close()

	svc := holidayService.NewHolidayService(e.store.Holidays, e.clock, slog.Default())
	result, err := svc.Import(cmd.Context(), req)
	if err != nil {
		return err
	}

	logger.Info("holidays imported",
		zap.String("file", args[0]),
		zap.Int("received", result.Received),
		zap.Int("imported", result.Imported),
		zap.Int("dropped", result.Dropped),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "received %d, imported %d, dropped %d\n", result.Received, result.Imported, result.Dropped)
	return nil
}

func runHolidayCheck(cmd *cobra.Command, args []string) error {
	date, ok := validator.IsValidDate(args[0])
	if !ok {
		return fmt.Errorf("date must be YYYY-MM-DD, got %q", args[0])
	}

	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.store.Close()

	svc := holidayService.NewHolidayService(e.store.Holidays, e.clock, slog.Default())
	result, err := svc.Check(cmd.Context(), date)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case result.IsRestrictedHoliday && result.Name != nil:
		fmt.Fprintf(out, "%s: restricted holiday (%s)\n", result.Date, *result.Name)
	case result.IsHoliday && result.Name != nil:
		fmt.Fprintf(out, "%s: holiday (%s)\n", result.Date, *result.Name)
	case result.IsHoliday:
		fmt.Fprintf(out, "%s: holiday\n", result.Date)
	default:
		fmt.Fprintf(out, "%s: working day\n", result.Date)
	}
	return nil
}

func runHolidayList(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd.Context())
	if err != nil {
		return err
	}
	defer e.store.Close()

	year := holidayYear
	if year == 0 {
		year = clock.Today(e.clock).Year()
	}

	svc := holidayService.NewHolidayService(e.store.Holidays, e.clock, slog.Default())
	list, err := svc.List(cmd.Context(), year)
	if err != nil {
		return err
	}
	for _, h := range list {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%-10s\t%s\n", h.Date, h.Type, h.Name)
	}
	return nil
}

package schedule

import (
	"bytes"
	"fmt"
	"path/filepath"
	"time"

	"github.com/felixgeelhaar/tempo/adapter/cli"
	"github.com/felixgeelhaar/tempo/internal/scheduling/infrastructure/export"
	"github.com/felixgeelhaar/tempo/internal/shared/infrastructure/security"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	exportWeek   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the schedule as text or iCalendar",
	Long: `Export the current schedule. Without --output the file is written to
the configured export directory; "-" writes to stdout.

iCalendar events are placed in the week starting on the Monday on or
before --week (default: this week).

Examples:
  tempo schedule export
  tempo schedule export --format ics --week 2025-06-09 -o week.ics
  tempo schedule export -o -`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.RequireApp()
		if err != nil {
			return err
		}

		exporter, err := export.New(exportFormat)
		if err != nil {
			return err
		}

		now := time.Now()
		week := now
		if exportWeek != "" {
			week, err = time.ParseInLocation("2006-01-02", exportWeek, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --week format, use YYYY-MM-DD: %w", err)
			}
		}

		view, err := app.GetScheduleHandler.Handle(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to get schedule: %w", err)
		}

		snap := export.Snapshot{
			Schedule:    view.Schedule,
			Unplaced:    view.Unplaced,
			GeneratedAt: now,
			WeekStart:   export.WeekStarting(week),
		}

		var buf bytes.Buffer
		if err := exporter.Export(&buf, snap); err != nil {
			return fmt.Errorf("failed to export schedule: %w", err)
		}

		if exportOutput == "-" {
			_, err := buf.WriteTo(cmd.OutOrStdout())
			return err
		}

		path := exportOutput
		if path == "" {
			path = filepath.Join(app.ExportDir, export.FileName(exporter, now))
		}
		path, err = security.WriteFile(path, buf.Bytes())
		if err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), cli.SuccessStyle.Render("Schedule exported to "+path))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "text", "export format (text, ics)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file, or - for stdout")
	exportCmd.Flags().StringVar(&exportWeek, "week", "", "any date in the week to anchor calendar events (YYYY-MM-DD)")
}

package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/metis/internal/domain"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var title, taskType string
	var estimated, actual, session float64

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record a completed task to improve future estimates",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			if title == "" && app.interactive() {
				if err := runLogWizard(&title, &taskType, &estimated, &actual, &session); err != nil {
					return err
				}
			}

			if title == "" {
				return fmt.Errorf("--title is required")
			}
			if actual <= 0 {
				return fmt.Errorf("--actual must be positive, got %v", actual)
			}

			rec := &domain.CompletionRecord{
				ID:             uuid.New().String(),
				TaskTitle:      title,
				TaskType:       domain.NormalizeTaskType(taskType),
				EstimatedHours: estimated,
				ActualHours:    actual,
				SessionHours:   session,
				CompletedAt:    time.Now().UTC(),
			}
			if err := app.Completions.Create(ctx, rec); err != nil {
				return fmt.Errorf("recording completion: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Logged %s (%s, %.1fh actual)\n", rec.TaskTitle, rec.TaskType, rec.ActualHours)

			if estimated > 0 {
				ratio := estimated / actual
				switch {
				case ratio < 0.8:
					fmt.Fprintln(out, "You under-estimated this one; future estimates will adjust.")
				case ratio > 1.25:
					fmt.Fprintln(out, "You over-estimated this one; future estimates will adjust.")
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Task title")
	cmd.Flags().StringVar(&taskType, "type", "assignment", "Task type (assignment|exam|quiz|project|reading|lab|presentation|discussion)")
	cmd.Flags().Float64Var(&estimated, "estimated", 0, "Hours originally estimated")
	cmd.Flags().Float64Var(&actual, "actual", 0, "Hours actually spent")
	cmd.Flags().Float64Var(&session, "session", 0, "Typical single-sitting length in hours")

	return cmd
}

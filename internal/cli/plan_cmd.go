package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/metis/internal/cli/formatter"
	"github.com/alexanderramin/metis/internal/contract"
	"github.com/alexanderramin/metis/internal/db"
	"github.com/alexanderramin/metis/internal/pipeline"
	"github.com/alexanderramin/metis/internal/repository"
	"github.com/alexanderramin/metis/internal/scheduler"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	var hours int
	var start, source, label string
	var save bool

	cmd := &cobra.Command{
		Use:   "plan [FILE]",
		Short: "Parse tasks from text and build a day-by-day study plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			var text string
			var err error
			if len(args) == 0 && app.interactive() {
				text, err = runPlanWizard(&hours, &start)
			} else {
				text, err = readInput(cmd, args)
			}
			if err != nil {
				return err
			}
			if err := requireText(text); err != nil {
				return err
			}

			history := app.history(ctx)
			orch := app.orchestrator(history)
			rc := pipeline.NewRunContext("default")

			req := contract.PipelineRequest{
				Text:        text,
				SourceType:  source,
				HoursPerDay: hours,
				StartDate:   start,
			}
			res, err := orch.FullPipelineEnhanced(ctx, rc, req, history)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			prio := &contract.PriorityResult{
				Priorities:        res.Priorities,
				Recommendations:   res.Recommendations,
				HighPriorityCount: scheduler.CountHighPriority(res.Priorities),
			}
			fmt.Fprintln(out, formatter.FormatPriorities(prio, res.Tasks))
			fmt.Fprintln(out, formatter.FormatSchedule(&res.Schedule))
			writeStageNotes(out, res.Stages)

			if save {
				sp := &repository.StoredPlan{
					ID:          uuid.New().String(),
					Label:       label,
					CreatedAt:   time.Now().UTC(),
					HoursPerDay: hours,
					Plan:        res.Schedule,
				}
				if err := savePlan(ctx, app, sp); err != nil {
					return fmt.Errorf("saving plan: %w", err)
				}
				fmt.Fprintf(out, "Saved plan %s\n", shortID(sp.ID))
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&hours, "hours", app.defaultHours(), "Available study hours per day (1-30)")
	cmd.Flags().StringVar(&start, "start", "", "First plan day (YYYY-MM-DD, defaults to tomorrow)")
	cmd.Flags().StringVar(&source, "source", "", "Source type hint (syllabus|todo|email)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the generated plan")
	cmd.Flags().StringVar(&label, "label", "", "Label for the saved plan")

	return cmd
}

// savePlan persists a plan and its sessions in one transaction when a unit
// of work is available.
func savePlan(ctx context.Context, app *App, sp *repository.StoredPlan) error {
	if app.UoW != nil {
		return app.UoW.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
			return repository.NewSQLitePlanRepo(tx).Save(ctx, sp)
		})
	}
	return app.Plans.Save(ctx, sp)
}

// writeStageNotes surfaces degraded pipeline stages without failing the run.
func writeStageNotes(w io.Writer, stages map[string]contract.StageStatus) {
	order := []string{
		pipeline.StageParsing,
		pipeline.StagePrediction,
		pipeline.StagePrioritization,
		pipeline.StageScheduling,
	}
	for _, name := range order {
		st, ok := stages[name]
		if !ok || !st.Degraded {
			continue
		}
		detail := st.Detail
		if st.Error != "" {
			detail = st.Error
		}
		fmt.Fprintln(w, formatter.Dim(fmt.Sprintf("note: %s ran degraded (%s)", name, detail)))
	}
}

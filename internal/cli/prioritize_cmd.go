package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/metis/internal/cli/formatter"
	"github.com/alexanderramin/metis/internal/pipeline"
	"github.com/spf13/cobra"
)

func newPrioritizeCmd(app *App) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "prioritize [FILE]",
		Short: "Extract tasks and rank them by urgency and importance",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			text, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			if err := requireText(text); err != nil {
				return err
			}

			history := app.history(ctx)
			orch := app.orchestrator(history)
			rc := pipeline.NewRunContext("default")

			tasks, _, err := orch.ParseDocumentEnhanced(ctx, rc, text, source)
			if err != nil {
				return err
			}

			res, degraded := orch.PrioritizeTasks(ctx, rc, tasks)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatPriorities(&res, tasks))
			if degraded {
				fmt.Fprintln(out, formatter.Dim("note: ranking ran degraded, using heuristic order"))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source type hint (syllabus|todo|email)")

	return cmd
}

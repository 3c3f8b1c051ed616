package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/metis/internal/cli/formatter"
	"github.com/alexanderramin/metis/internal/pipeline"
	"github.com/spf13/cobra"
)

func newParseCmd(app *App) *cobra.Command {
	var source string

	cmd := &cobra.Command{
		Use:   "parse [FILE]",
		Short: "Extract tasks and workload estimates from text",
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

			tasks, degraded, err := orch.ParseDocumentEnhanced(ctx, rc, text, source)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatTasks(tasks, time.Now()))
			if degraded {
				fmt.Fprintln(out, formatter.Dim("note: estimation ran degraded, using default estimates"))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "Source type hint (syllabus|todo|email)")

	return cmd
}

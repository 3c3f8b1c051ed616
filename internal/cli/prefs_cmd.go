package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/alexanderramin/metis/internal/cli/formatter"
	"github.com/alexanderramin/metis/internal/domain"
	"github.com/alexanderramin/metis/internal/habits"
	"github.com/alexanderramin/metis/internal/repository"
	"github.com/spf13/cobra"
)

func newPrefsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage scheduling preferences",
	}

	cmd.AddCommand(
		newPrefsShowCmd(app),
		newPrefsSetCmd(app),
		newPrefsDeriveCmd(app),
	)

	return cmd
}

func loadPrefs(ctx context.Context, app *App) (domain.UserPreferences, error) {
	p, err := app.Prefs.Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.DefaultPreferences(), nil
	}
	if err != nil {
		return domain.UserPreferences{}, err
	}
	return *p, nil
}

func newPrefsShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the active preferences",
		RunE: func(cmd *cobra.Command, args []string) error {
			prefs, err := loadPrefs(context.Background(), app)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPreferences(prefs))
			return nil
		},
	}
}

func newPrefsSetCmd(app *App) *cobra.Command {
	var timeOfDay string
	var sessionLength float64
	var shortSessions bool

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Override preference fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			prefs, err := loadPrefs(ctx, app)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("time-of-day") {
				switch timeOfDay {
				case "morning", "afternoon", "evening":
					prefs.OptimalTimeOfDay = timeOfDay
				default:
					return fmt.Errorf("invalid time of day %q, expected morning|afternoon|evening", timeOfDay)
				}
			}
			if cmd.Flags().Changed("session-length") {
				if sessionLength <= 0 {
					return fmt.Errorf("session length must be positive, got %v", sessionLength)
				}
				prefs.RecommendedSessionLength = sessionLength
			}
			if cmd.Flags().Changed("short-sessions") {
				prefs.PrefersShortSessions = shortSessions
			}

			if err := app.Prefs.Upsert(ctx, &prefs); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatPreferences(prefs))
			return nil
		},
	}

	cmd.Flags().StringVar(&timeOfDay, "time-of-day", "", "Preferred study time (morning|afternoon|evening)")
	cmd.Flags().Float64Var(&sessionLength, "session-length", 0, "Preferred session length in hours")
	cmd.Flags().BoolVar(&shortSessions, "short-sessions", false, "Cap sessions at shorter blocks")

	return cmd
}

func newPrefsDeriveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "derive",
		Short: "Recompute preferences from completion history",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			history := app.history(ctx)
			prefs, ok := habits.DerivePreferences(history)
			if !ok {
				fmt.Fprintln(out, "Not enough history to derive preferences; log completed tasks with `metis log` first.")
				return nil
			}

			if err := app.Prefs.Upsert(ctx, &prefs); err != nil {
				return err
			}

			fmt.Fprintf(out, "Derived from %d completions.\n", len(history))
			fmt.Fprintln(out, formatter.FormatPreferences(prefs))
			return nil
		},
	}
}

package cli

import (
	"context"
	"strings"

	"github.com/alexanderramin/metis/internal/calibration"
	"github.com/alexanderramin/metis/internal/config"
	"github.com/alexanderramin/metis/internal/db"
	"github.com/alexanderramin/metis/internal/domain"
	"github.com/alexanderramin/metis/internal/intelligence"
	"github.com/alexanderramin/metis/internal/pipeline"
	"github.com/alexanderramin/metis/internal/repository"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// App holds references to all services and repositories used by CLI
// commands. Estimator and Ranker may be nil when no LLM backend is
// configured; the pipeline degrades to deterministic fallbacks.
type App struct {
	Extractor intelligence.ExtractService
	Estimator intelligence.EstimateService
	Ranker    intelligence.RankService

	Prefs       repository.PreferencesRepo
	Completions repository.CompletionRepo
	Plans       repository.PlanRepo
	UoW         db.UnitOfWork

	Config *config.Config
	Logger *zap.Logger

	// Interactive reports whether stdin/stdout are a terminal; wizards
	// only run when it returns true.
	Interactive func() bool
}

// NewRootCmd creates the top-level "metis" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "metis",
		Short:         "Turn task lists into a prioritized study plan",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	// Accept underscore flag spelling (--time_of_day) alongside dashes.
	root.SetGlobalNormalizationFunc(func(f *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	root.AddCommand(
		newPlanCmd(app),
		newParseCmd(app),
		newPrioritizeCmd(app),
		newPlansCmd(app),
		newLogCmd(app),
		newPrefsCmd(app),
	)

	return root
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.Interactive != nil && a.Interactive()
}

func (a *App) defaultHours() int {
	if a.Config != nil && a.Config.HoursPerDay > 0 {
		return a.Config.HoursPerDay
	}
	return 4
}

// history loads the completion records that feed the calibrated estimator
// and derived preferences, bounded by the configured window. A read failure
// is logged and treated as no history.
func (a *App) history(ctx context.Context) []domain.CompletionRecord {
	if a.Completions == nil {
		return nil
	}

	var (
		recs []domain.CompletionRecord
		err  error
	)
	if a.Config != nil && a.Config.HistoryWindowDays > 0 {
		recs, err = a.Completions.ListRecent(ctx, a.Config.HistoryWindowDays)
	} else {
		recs, err = a.Completions.ListAll(ctx)
	}
	if err != nil {
		a.logger().Warn("reading completion history failed", zap.Error(err))
		return nil
	}
	return recs
}

// orchestrator builds a pipeline orchestrator with a predictor trained on
// the given history. Built per invocation so a fresh history is picked up
// between runs.
func (a *App) orchestrator(history []domain.CompletionRecord) *pipeline.Orchestrator {
	return pipeline.NewOrchestrator(
		a.Extractor,
		a.Estimator,
		a.Ranker,
		calibration.NewPredictor(history),
		a.Logger,
	)
}

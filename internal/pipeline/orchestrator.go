// Package pipeline dispatches the named planning workflows: parse,
// predict, prioritize, schedule, and the full parse-to-schedule sequence.
// Each workflow is a linear run of stage calls; stage failures are caught
// at this boundary and turned into structured results so independently
// useful upstream output survives a downstream failure.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/metis/internal/calibration"
	"github.com/alexanderramin/metis/internal/contract"
	"github.com/alexanderramin/metis/internal/domain"
	"github.com/alexanderramin/metis/internal/fusion"
	"github.com/alexanderramin/metis/internal/habits"
	"github.com/alexanderramin/metis/internal/importer"
	"github.com/alexanderramin/metis/internal/intelligence"
	"github.com/alexanderramin/metis/internal/scheduler"
)

// Daily hour budget bounds accepted from callers.
const (
	minHoursPerDay = 1
	maxHoursPerDay = 30
)

// defaultConcurrency bounds the estimate fan-out so a slow model server
// doesn't get hammered with one request per task.
const defaultConcurrency = 4

// Orchestrator wires the planning stages together. Construct with
// NewOrchestrator; the zero value is not usable.
type Orchestrator struct {
	extractor intelligence.ExtractService
	estimator intelligence.EstimateService
	ranker    intelligence.RankService
	predictor *calibration.Predictor
	logger    *zap.Logger

	now         func() time.Time
	concurrency int
}

// NewOrchestrator creates an Orchestrator. estimator, ranker, and
// predictor may be nil; the corresponding stages then run degraded on
// their deterministic fallbacks. A nil logger logs nowhere.
func NewOrchestrator(
	extractor intelligence.ExtractService,
	estimator intelligence.EstimateService,
	ranker intelligence.RankService,
	predictor *calibration.Predictor,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		extractor:   extractor,
		estimator:   estimator,
		ranker:      ranker,
		predictor:   predictor,
		logger:      logger,
		now:         time.Now,
		concurrency: defaultConcurrency,
	}
}

// ParseDocument extracts tasks from raw text. This stage is fatal: with
// no tasks there is nothing for the rest of the pipeline to do.
func (o *Orchestrator) ParseDocument(ctx context.Context, rc RunContext, text, sourceType string) ([]domain.Task, error) {
	o.logger.Info("pipeline stage starting",
		zap.String("run_id", rc.RunID),
		zap.String("stage", StageParsing))

	raw, err := o.extractor.Extract(ctx, text, sourceType)
	if err != nil {
		return nil, &FatalStageError{Stage: StageParsing, Err: err}
	}
	if errs := importer.ValidateRawTasks(raw); len(errs) > 0 {
		return nil, &FatalStageError{Stage: StageParsing, Err: errors.Join(errs...)}
	}

	tasks := importer.Convert(raw)
	o.logger.Info("pipeline stage complete",
		zap.String("run_id", rc.RunID),
		zap.String("stage", StageParsing),
		zap.Int("tasks_found", len(tasks)))
	return tasks, nil
}

// PredictWorkload enriches every task with a fused workload estimate,
// fanning out over the estimator with bounded concurrency. It never
// fails the pipeline: tasks whose estimate cannot be produced get the
// fixed fallback, and the returned flag reports whether any did.
func (o *Orchestrator) PredictWorkload(ctx context.Context, rc RunContext, tasks []domain.Task, useHybrid bool) ([]domain.Task, bool) {
	o.logger.Info("pipeline stage starting",
		zap.String("run_id", rc.RunID),
		zap.String("stage", StagePrediction),
		zap.Int("tasks", len(tasks)),
		zap.Bool("hybrid", useHybrid))

	enriched := make([]domain.Task, len(tasks))
	copy(enriched, tasks)

	var degraded atomic.Bool

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i := range enriched {
		g.Go(func() error {
			task := &enriched[i]

			freeform, err := o.estimate(gctx, task)
			if err != nil {
				degraded.Store(true)
				o.logger.Warn("estimate fell back to defaults",
					zap.String("run_id", rc.RunID),
					zap.String("task", task.Title),
					zap.Error(&DegradedStageError{Stage: StagePrediction, Err: err}))
				freeform = fusion.FallbackEstimate()
			}

			est := fusion.Fuse(freeform, o.calibrated(task, useHybrid))
			task.EstimatedHours = est.EstimatedHours
			task.StressScore = est.StressScore
			task.Complexity = est.Complexity
			return nil
		})
	}
	g.Wait() // workers only report nil; the barrier is what matters

	o.logger.Info("pipeline stage complete",
		zap.String("run_id", rc.RunID),
		zap.String("stage", StagePrediction),
		zap.Bool("degraded", degraded.Load()))
	return enriched, degraded.Load()
}

func (o *Orchestrator) estimate(ctx context.Context, task *domain.Task) (fusion.FreeformEstimate, error) {
	if o.estimator == nil {
		return fusion.FreeformEstimate{}, fmt.Errorf("no estimator configured")
	}
	return o.estimator.Estimate(ctx, task)
}

// calibrated returns the second-opinion hour figure for fusion, or nil
// when hybrid mode is off or the predictor lacks history for the type.
func (o *Orchestrator) calibrated(task *domain.Task, useHybrid bool) *float64 {
	if !useHybrid || o.predictor == nil || !o.predictor.Trained(task.Type) {
		return nil
	}
	hours := o.predictor.Predict(task)
	return &hours
}

// PrioritizeTasks scores and ranks the task list, writing the fused
// scores back onto the tasks. The returned flag reports a degraded run:
// the external advisor failed and the heuristic ranking stood alone.
func (o *Orchestrator) PrioritizeTasks(ctx context.Context, rc RunContext, tasks []domain.Task) (contract.PriorityResult, bool) {
	o.logger.Info("pipeline stage starting",
		zap.String("run_id", rc.RunID),
		zap.String("stage", StagePrioritization),
		zap.Int("tasks", len(tasks)))

	heuristic := scheduler.ScoreHeuristic(tasks, o.now(), scheduler.DefaultWeights())

	var advice *scheduler.RankAdvice
	var recommendations []string
	degraded := false
	if o.ranker != nil && len(tasks) > 0 {
		if result, err := o.ranker.Rank(ctx, tasks); err != nil {
			degraded = true
			o.logger.Warn("rank advice unavailable, heuristic order stands",
				zap.String("run_id", rc.RunID),
				zap.Error(&DegradedStageError{Stage: StagePrioritization, Err: err}))
		} else {
			advice = result.Advice
			recommendations = result.Recommendations
		}
	} else if len(tasks) > 0 {
		degraded = true
	}

	priorities := scheduler.FuseRankings(heuristic, advice)

	byID := make(map[string]contract.TaskPriority, len(priorities))
	for _, p := range priorities {
		byID[p.TaskID] = p
	}
	for i := range tasks {
		if p, ok := byID[tasks[i].EffectiveID()]; ok {
			tasks[i].PriorityScore = p.PriorityScore
			tasks[i].PriorityRank = p.Rank
		}
	}

	result := contract.PriorityResult{
		Priorities:        priorities,
		Recommendations:   recommendations,
		HighPriorityCount: scheduler.CountHighPriority(priorities),
	}

	o.logger.Info("pipeline stage complete",
		zap.String("run_id", rc.RunID),
		zap.String("stage", StagePrioritization),
		zap.Int("high_priority", result.HighPriorityCount),
		zap.Bool("degraded", degraded))
	return result, degraded
}

// GenerateSchedule allocates the tasks into a day-by-day session plan.
func (o *Orchestrator) GenerateSchedule(
	rc RunContext,
	tasks []domain.Task,
	hoursPerDay int,
	startDate string,
	prefs *domain.UserPreferences,
) (contract.SchedulePlan, error) {
	if hoursPerDay < minHoursPerDay || hoursPerDay > maxHoursPerDay {
		return contract.SchedulePlan{}, &ValidationError{
			Field:  "hours_per_day",
			Reason: fmt.Sprintf("must be between %d and %d, got %d", minHoursPerDay, maxHoursPerDay, hoursPerDay),
		}
	}

	start := scheduler.DefaultStartDate(o.now())
	if startDate != "" {
		parsed, err := time.Parse("2006-01-02", startDate)
		if err != nil {
			return contract.SchedulePlan{}, &ValidationError{
				Field:  "start_date",
				Reason: fmt.Sprintf("%q is not YYYY-MM-DD", startDate),
			}
		}
		start = parsed
	}

	plan := scheduler.BuildPlan(tasks, hoursPerDay, start, prefs)

	o.logger.Info("pipeline stage complete",
		zap.String("run_id", rc.RunID),
		zap.String("stage", StageScheduling),
		zap.Int("sessions", len(plan.Sessions)),
		zap.Int("days_planned", plan.DaysPlanned),
		zap.Bool("needs_more_hours", plan.NeedsMoreHours))
	return plan, nil
}

// FullPipeline runs parse, predict, prioritize, and schedule in sequence.
// Parsing and request validation abort the run; the middle stages degrade
// to their deterministic fallbacks and are reported as such in Stages.
func (o *Orchestrator) FullPipeline(ctx context.Context, rc RunContext, req contract.PipelineRequest) (*contract.PipelineResult, error) {
	result := &contract.PipelineResult{
		RunID:  rc.RunID,
		Stages: map[string]contract.StageStatus{},
	}

	tasks, err := o.ParseDocument(ctx, rc, req.Text, req.SourceType)
	if err != nil {
		return nil, err
	}
	result.Stages[StageParsing] = contract.StageStatus{
		Success: true,
		Detail:  fmt.Sprintf("%d tasks found", len(tasks)),
	}

	tasks, estimateDegraded := o.PredictWorkload(ctx, rc, tasks, req.UseHybrid)
	result.Stages[StagePrediction] = contract.StageStatus{
		Success:  true,
		Degraded: estimateDegraded,
		Detail:   fmt.Sprintf("%d tasks analyzed", len(tasks)),
	}

	priorities, rankDegraded := o.PrioritizeTasks(ctx, rc, tasks)
	result.Stages[StagePrioritization] = contract.StageStatus{
		Success:  true,
		Degraded: rankDegraded,
		Detail:   fmt.Sprintf("%d high priority", priorities.HighPriorityCount),
	}

	plan, err := o.GenerateSchedule(rc, tasks, req.HoursPerDay, req.StartDate, req.Preferences)
	if err != nil {
		return nil, err
	}
	result.Stages[StageScheduling] = contract.StageStatus{
		Success: true,
		Detail:  fmt.Sprintf("%d sessions over %d days", len(plan.Sessions), plan.DaysPlanned),
	}

	result.Tasks = tasks
	result.Priorities = priorities.Priorities
	result.Schedule = plan
	result.Recommendations = append(result.Recommendations, priorities.Recommendations...)
	if plan.Warning != "" {
		result.Recommendations = append(result.Recommendations, plan.Warning)
	}
	return result, nil
}

// ParseDocumentEnhanced parses and immediately estimates, so callers that
// only want an enriched task list skip the ranking and scheduling stages.
func (o *Orchestrator) ParseDocumentEnhanced(ctx context.Context, rc RunContext, text, sourceType string) ([]domain.Task, bool, error) {
	tasks, err := o.ParseDocument(ctx, rc, text, sourceType)
	if err != nil {
		return nil, false, err
	}
	tasks, degraded := o.PredictWorkload(ctx, rc, tasks, true)
	return tasks, degraded, nil
}

// FullPipelineEnhanced is FullPipeline with the auxiliary signals wired
// in: preferences derived from completion history when the request
// carries none, and hybrid calibration forced on.
func (o *Orchestrator) FullPipelineEnhanced(
	ctx context.Context,
	rc RunContext,
	req contract.PipelineRequest,
	history []domain.CompletionRecord,
) (*contract.PipelineResult, error) {
	req.UseHybrid = true
	if req.Preferences == nil {
		if prefs, ok := habits.DerivePreferences(history); ok {
			req.Preferences = &prefs
			o.logger.Info("derived preferences from history",
				zap.String("run_id", rc.RunID),
				zap.Float64("estimation_bias", prefs.EstimationBias),
				zap.Float64("session_length", prefs.RecommendedSessionLength))
		}
	}
	return o.FullPipeline(ctx, rc, req)
}

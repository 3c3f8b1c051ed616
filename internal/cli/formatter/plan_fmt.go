package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/metis/internal/contract"
	"github.com/alexanderramin/metis/internal/repository"
)

// FormatSchedule formats a study plan into a styled day-by-day CLI view.
func FormatSchedule(plan *contract.SchedulePlan) string {
	var b strings.Builder

	if len(plan.Sessions) == 0 {
		b.WriteString(Dim("No sessions scheduled.") + "\n")
		return RenderBox("Plan", b.String())
	}

	// Sessions arrive ordered by day; group in encounter order.
	currentDay := ""
	for _, s := range plan.Sessions {
		if s.Day != currentDay {
			if currentDay != "" {
				b.WriteString("\n")
			}
			currentDay = s.Day
			b.WriteString(StyleHeader.Render(PlanDay(s.Day)) + "\n")
		}

		b.WriteString(fmt.Sprintf("  %s  %s  %s\n",
			StyleFg.Render(Truncate(s.TaskTitle, taskTitleWidth)),
			StyleBlue.Render(FormatHours(s.EstimatedHours)),
			PriorityIndicator(s.Priority),
		))
	}

	// Summary line.
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s %s\n",
		Bold(FormatHours(plan.TotalHours)),
		Dim(fmt.Sprintf("over %d days", plan.DaysPlanned)),
	))

	if plan.Warning != "" {
		b.WriteString("\n")
		style := StyleYellow
		if plan.NeedsMoreHours {
			style = StyleRed
		}
		b.WriteString(style.Render(fmt.Sprintf("  WARNING: %s", plan.Warning)) + "\n")
	}

	return RenderBox("Plan", b.String())
}

// FormatStoredPlan formats a saved plan with its metadata header.
func FormatStoredPlan(p *repository.StoredPlan) string {
	var b strings.Builder

	label := p.Label
	if label == "" {
		label = "(unlabeled)"
	}
	id := p.ID
	if len(id) > 8 {
		id = id[:8]
	}
	b.WriteString(fmt.Sprintf("%s  %s\n",
		Bold(label),
		Dim(fmt.Sprintf("%s · saved %s · %d hours/day",
			id,
			p.CreatedAt.Format("2006-01-02"),
			p.HoursPerDay,
		)),
	))
	b.WriteString("\n")
	b.WriteString(FormatSchedule(&p.Plan))

	return b.String()
}

// FormatPlanList formats saved plan summaries into a styled CLI table.
func FormatPlanList(plans []repository.PlanSummary) string {
	var b strings.Builder

	if len(plans) == 0 {
		b.WriteString(Dim("No saved plans.") + "\n")
		return RenderBox("Saved Plans", b.String())
	}

	headers := []string{"ID", "LABEL", "SAVED", "HOURS", "DAYS", "SESSIONS"}
	rows := make([][]string, 0, len(plans))

	for _, p := range plans {
		label := p.Label
		if label == "" {
			label = "--"
		}
		rows = append(rows, []string{
			TruncID(p.ID),
			Bold(Truncate(label, taskTitleWidth)),
			StyleFg.Render(p.CreatedAt.Format("2006-01-02")),
			StyleFg.Render(FormatHours(p.TotalHours)),
			StyleFg.Render(fmt.Sprintf("%d", p.DaysPlanned)),
			StyleFg.Render(fmt.Sprintf("%d", p.SessionCount)),
		})
	}

	b.WriteString(RenderTable(headers, rows))

	return RenderBox("Saved Plans", b.String())
}

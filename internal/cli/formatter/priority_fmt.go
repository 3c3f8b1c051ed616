package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/metis/internal/contract"
	"github.com/alexanderramin/metis/internal/domain"
)

// FormatPriorities formats a fused priority ranking into a styled CLI
// table. Tasks are used to resolve titles; entries whose id cannot be
// resolved fall back to the raw id.
func FormatPriorities(res *contract.PriorityResult, tasks []domain.Task) string {
	var b strings.Builder

	if len(res.Priorities) == 0 {
		b.WriteString(Dim("Nothing to prioritize.") + "\n")
		return RenderBox("Priorities", b.String())
	}

	titles := make(map[string]string, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		titles[t.EffectiveID()] = t.Title
	}

	headers := []string{"RANK", "TASK", "SCORE", "PRIORITY"}
	rows := make([][]string, 0, len(res.Priorities))

	for _, p := range res.Priorities {
		title := titles[p.TaskID]
		if title == "" {
			title = p.TaskID
		}

		rows = append(rows, []string{
			Bold(fmt.Sprintf("%d", p.Rank)),
			StyleFg.Render(Truncate(title, taskTitleWidth)),
			StyleFg.Render(fmt.Sprintf("%.2f", p.PriorityScore)),
			PriorityIndicator(p.PriorityScore),
		})
	}

	b.WriteString(RenderTable(headers, rows))

	// Summary line.
	b.WriteString("\n")
	if res.HighPriorityCount > 0 {
		b.WriteString(StyleRed.Render(fmt.Sprintf("%d high priority", res.HighPriorityCount)) + "\n")
	} else {
		b.WriteString(StyleGreen.Render("No high-priority tasks") + "\n")
	}

	// Recommendations.
	if len(res.Recommendations) > 0 {
		b.WriteString("\n")
		for _, rec := range res.Recommendations {
			b.WriteString(Dim(fmt.Sprintf("  %s", rec)) + "\n")
		}
	}

	return RenderBox("Priorities", b.String())
}

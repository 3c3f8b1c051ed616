package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/metis/internal/domain"
)

const taskTitleWidth = 32

// FormatTasks formats extracted tasks and their fused estimates into a
// styled CLI table.
func FormatTasks(tasks []domain.Task, now time.Time) string {
	var b strings.Builder

	if len(tasks) == 0 {
		b.WriteString(Dim("No tasks found.") + "\n")
		return RenderBox("Tasks", b.String())
	}

	headers := []string{"TITLE", "TYPE", "DUE", "HOURS", "STRESS"}
	rows := make([][]string, 0, len(tasks))

	var total float64
	for i := range tasks {
		t := &tasks[i]
		total += t.EstimatedHours

		rows = append(rows, []string{
			Bold(Truncate(t.Title, taskTitleWidth)),
			StyleBlue.Render(string(t.Type)),
			DueDateStyled(t.DueDate, now),
			StyleFg.Render(FormatHours(t.EstimatedHours)),
			StressIndicator(t.StressScore),
		})
	}

	b.WriteString(RenderTable(headers, rows))

	// Summary line.
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%s  %s\n",
		Bold(fmt.Sprintf("%d tasks", len(tasks))),
		Dim(fmt.Sprintf("%s estimated", FormatHours(total))),
	))

	return RenderBox("Tasks", b.String())
}

package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/metis/internal/contract"
)

// ValidateRawTasks checks extracted task records before conversion.
// Returns every problem found, not just the first.
func ValidateRawTasks(raw []contract.RawTask) []error {
	var errs []error

	seen := make(map[string]int)
	for i, t := range raw {
		prefix := fmt.Sprintf("tasks[%d]", i)

		title := strings.TrimSpace(t.Title)
		if title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		} else if prev, dup := seen[strings.ToLower(title)]; dup && t.ID == "" {
			errs = append(errs, fmt.Errorf("%s.title %q duplicates tasks[%d] and neither has an id", prefix, title, prev))
		} else {
			seen[strings.ToLower(title)] = i
		}

		if t.DueDate != "" {
			if _, err := time.Parse("2006-01-02", t.DueDate); err != nil {
				errs = append(errs, fmt.Errorf("%s.due_date: invalid date format %q (expected YYYY-MM-DD)", prefix, t.DueDate))
			}
		}
		if t.GradePercentage != nil && (*t.GradePercentage < 0 || *t.GradePercentage > 100) {
			errs = append(errs, fmt.Errorf("%s.grade_percentage must be in [0,100], got %v", prefix, *t.GradePercentage))
		}
		if t.EstimatedHours != nil && *t.EstimatedHours < 0 {
			errs = append(errs, fmt.Errorf("%s.estimated_hours must be non-negative, got %v", prefix, *t.EstimatedHours))
		}
	}

	return errs
}

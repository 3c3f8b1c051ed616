package importer

import (
	"strings"
	"time"

	"github.com/alexanderramin/metis/internal/contract"
	"github.com/alexanderramin/metis/internal/domain"
	"github.com/google/uuid"
)

// Convert transforms validated raw records into domain tasks ready for the
// pipeline. Call ValidateRawTasks first; Convert assumes the records are
// valid and silently drops untitled ones.
func Convert(raw []contract.RawTask) []domain.Task {
	tasks := make([]domain.Task, 0, len(raw))
	for _, r := range raw {
		title := strings.TrimSpace(r.Title)
		if title == "" {
			continue
		}

		id := r.ID
		if id == "" {
			id = uuid.New().String()
		}

		task := domain.Task{
			ID:          id,
			Title:       title,
			Description: strings.TrimSpace(r.Description),
			Type:        domain.NormalizeTaskType(r.TaskType),
			Status:      domain.StatusPending,
		}
		if r.DueDate != "" {
			if due, err := time.Parse("2006-01-02", r.DueDate); err == nil {
				task.DueDate = &due
			}
		}
		if r.GradePercentage != nil {
			task.GradePercentage = *r.GradePercentage
		}
		if r.EstimatedHours != nil {
			task.EstimatedHours = *r.EstimatedHours
		}
		tasks = append(tasks, task)
	}
	return tasks
}

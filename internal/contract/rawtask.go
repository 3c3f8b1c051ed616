package contract

// RawTask is the extractor's output shape: one task record as found in the
// source text, before validation and enrichment. Numeric fields are
// pointers so the importer can distinguish "absent" from zero.
type RawTask struct {
	ID              string   `json:"id,omitempty"`
	Title           string   `json:"title"`
	Description     string   `json:"description,omitempty"`
	TaskType        string   `json:"task_type,omitempty"`
	DueDate         string   `json:"due_date,omitempty"` // YYYY-MM-DD or empty
	GradePercentage *float64 `json:"grade_percentage,omitempty"`
	EstimatedHours  *float64 `json:"estimated_hours,omitempty"`
}

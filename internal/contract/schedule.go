package contract

// ScheduleSession is one bounded block of work time allocated to a single
// task on a single day. Sessions are immutable once created and carry no
// wall-clock start time; placing them within a day is left to the consumer.
type ScheduleSession struct {
	ID             string  `json:"id"`
	TaskID         string  `json:"task_id"`
	TaskTitle      string  `json:"task_title"`
	Day            string  `json:"day"` // YYYY-MM-DD
	Priority       float64 `json:"priority"`
	EstimatedHours float64 `json:"estimated_hours"`
}

// SchedulePlan is the output of the session scheduler.
type SchedulePlan struct {
	Sessions            []ScheduleSession `json:"sessions"`
	TotalHours          float64           `json:"total_hours"`
	DaysPlanned         int               `json:"days_planned"`
	Warning             string            `json:"warning,omitempty"`
	NeedsMoreHours      bool              `json:"needs_more_hours"`
	AdjustedHoursPerDay int               `json:"adjusted_hours_per_day"`
}

package domain

import "time"

// CompletionRecord captures the outcome of one finished task. Records feed
// the calibrated hour model and the derived user preferences.
type CompletionRecord struct {
	ID             string
	TaskTitle      string
	TaskType       TaskType
	EstimatedHours float64
	ActualHours    float64
	SessionHours   float64 // typical single-sitting length, 0 if unknown
	CompletedAt    time.Time
}

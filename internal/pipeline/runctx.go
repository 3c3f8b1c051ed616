package pipeline

import "github.com/google/uuid"

// RunContext identifies one pipeline invocation. It is threaded read-only
// through every stage; stages never write to it.
type RunContext struct {
	RunID    string
	UserID   string
	Metadata map[string]string
}

// NewRunContext mints a RunContext with a fresh run id.
func NewRunContext(userID string) RunContext {
	return RunContext{
		RunID:  uuid.New().String(),
		UserID: userID,
	}
}

package domain

type TaskType string

const (
	TypeAssignment   TaskType = "Assignment"
	TypeExam         TaskType = "Exam"
	TypeQuiz         TaskType = "Quiz"
	TypeProject      TaskType = "Project"
	TypeReading      TaskType = "Reading"
	TypeLab          TaskType = "Lab"
	TypePresentation TaskType = "Presentation"
	TypeDiscussion   TaskType = "Discussion"
	TypeOther        TaskType = "Other"
)

// ValidTaskTypes is the canonical set of accepted task type strings.
var ValidTaskTypes = map[TaskType]bool{
	TypeAssignment: true, TypeExam: true, TypeQuiz: true,
	TypeProject: true, TypeReading: true, TypeLab: true,
	TypePresentation: true, TypeDiscussion: true, TypeOther: true,
}

// NormalizeTaskType maps free-text type strings onto the canonical set.
// Unknown strings map to Other.
func NormalizeTaskType(s string) TaskType {
	switch TaskType(s) {
	case TypeAssignment, TypeExam, TypeQuiz, TypeProject,
		TypeReading, TypeLab, TypePresentation, TypeDiscussion:
		return TaskType(s)
	}
	switch s {
	case "assignment", "homework", "hw":
		return TypeAssignment
	case "exam", "test", "midterm", "final":
		return TypeExam
	case "quiz":
		return TypeQuiz
	case "project":
		return TypeProject
	case "reading", "read":
		return TypeReading
	case "lab", "laboratory":
		return TypeLab
	case "presentation", "talk":
		return TypePresentation
	case "discussion", "forum":
		return TypeDiscussion
	}
	return TypeOther
}

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

type Complexity string

const (
	ComplexityLow    Complexity = "low"
	ComplexityMedium Complexity = "medium"
	ComplexityHigh   Complexity = "high"
)

// NormalizeComplexity coerces a free-text complexity string onto the
// canonical set, defaulting to medium.
func NormalizeComplexity(s string) Complexity {
	switch Complexity(s) {
	case ComplexityLow, ComplexityMedium, ComplexityHigh:
		return Complexity(s)
	}
	return ComplexityMedium
}

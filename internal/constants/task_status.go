package constants

type TaskStatus string

const (
	StatusNew        TaskStatus = "New"
	StatusPlanned    TaskStatus = "Planned"
	StatusInProgress TaskStatus = "InProgress"
	StatusCompleted  TaskStatus = "Completed"
	StatusCancelled  TaskStatus = "Cancelled"
	StatusOnHold     TaskStatus = "OnHold"
)

// Statuses is the full value set; status is validated for membership only,
// there is no enforced transition table.
var Statuses = []TaskStatus{
	StatusNew,
	StatusPlanned,
	StatusInProgress,
	StatusCompleted,
	StatusCancelled,
	StatusOnHold,
}

// ConflictStatuses are the statuses that make a top-level task eligible for
// overlap conflicts.
var ConflictStatuses = []TaskStatus{StatusPlanned, StatusInProgress}

func (s TaskStatus) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

type TaskPriority string

const (
	PriorityLow      TaskPriority = "Low"
	PriorityAverage  TaskPriority = "Average"
	PriorityHigh     TaskPriority = "High"
	PriorityCritical TaskPriority = "Critical"
)

package cleanup

import "context"

// Job names everything a partially failed create may have left behind: the
// parent's identifier prefix catches subtasks whose taskids were derived
// from it even if they were never linked, and DocIDs carries whatever the
// saga collected before failing.
type Job struct {
	ProjectID    string   `json:"projectid"`
	TaskIDPrefix string   `json:"taskid_prefix"`
	DocIDs       []string `json:"docids"`
}

// TreeDeleter executes the compensating delete. It must be idempotent:
// deleting already-deleted identifiers is a no-op.
type TreeDeleter interface {
	DeleteTaskTree(ctx context.Context, projectID, taskIDPrefix string, docIDs []string) error
}

// Scheduler accepts compensation jobs decoupled from the caller's
// request/response cycle. Delivery is best-effort and deliberately delayed,
// so in-flight subtask creations that have not returned yet are still
// caught by the prefix match. Failures are logged, never surfaced.
type Scheduler interface {
	Schedule(job Job)
}

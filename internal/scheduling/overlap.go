package scheduling

import (
	"context"
	"time"
)

// ConflictCounter is the store-side query behind the overlap check: count
// top-level tasks in the project whose window intersects the given bounds,
// restricted to conflict-eligible statuses and excluding excludeTaskID.
type ConflictCounter interface {
	CountOverlapping(ctx context.Context, projectID string, start, end *time.Time, excludeTaskID string) (int64, error)
}

type Checker struct {
	conflicts ConflictCounter
}

func NewChecker(conflicts ConflictCounter) *Checker {
	return &Checker{conflicts: conflicts}
}

// HasConflict reports whether the candidate window intersects any existing
// Planned/InProgress top-level task in the project. Bounds are inclusive:
// windows that touch at an endpoint conflict. A fully absent window never
// conflicts; a one-sided window is compared on the supplied side only.
func (c *Checker) HasConflict(ctx context.Context, projectID string, start, end *time.Time, excludeTaskID string) (bool, error) {
	if start == nil && end == nil {
		return false, nil
	}

	count, err := c.conflicts.CountOverlapping(ctx, projectID, start, end, excludeTaskID)
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

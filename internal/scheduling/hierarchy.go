package scheduling

import (
	"context"
	"time"

	errs "task-planner.com/task-planner/internal/errors"
	model "task-planner.com/task-planner/internal/models"
)

// Validator applies the temporal rules a task must pass before it is
// persisted. A task with a parent is checked for containment only; a
// top-level task is checked for overlap against its project.
type Validator struct {
	overlaps *Checker
}

func NewValidator(conflicts ConflictCounter) *Validator {
	return &Validator{overlaps: NewChecker(conflicts)}
}

// Validate enforces the window rules on a candidate task. When parent is
// non-nil the candidate is adopted as its subtask: ParentTask is set and
// each defined bound must lie within the parent's window (inclusive) on the
// sides the parent defines. Subtasks are never overlap-checked against
// siblings. When parent is nil the candidate's window must not conflict
// with any other Planned/InProgress top-level task in the project; the
// candidate's own TaskID is excluded so an update does not conflict with
// itself.
func (v *Validator) Validate(ctx context.Context, task *model.Task, parent *model.Task) error {
	if parent != nil {
		task.ParentTask = parent.TaskID

		if parent.StartTime != nil && task.StartTime != nil && !withinParent(*task.StartTime, parent) {
			return errs.ErrTimelineContainment
		}
		if parent.EndTime != nil && task.EndTime != nil && !withinParent(*task.EndTime, parent) {
			return errs.ErrTimelineContainment
		}
		return nil
	}

	conflict, err := v.overlaps.HasConflict(ctx, task.ProjectID, task.StartTime, task.EndTime, task.TaskID)
	if err != nil {
		return err
	}
	if conflict {
		return errs.ErrTaskOverlap
	}
	return nil
}

func withinParent(t time.Time, parent *model.Task) bool {
	if parent.StartTime != nil && t.Before(*parent.StartTime) {
		return false
	}
	if parent.EndTime != nil && t.After(*parent.EndTime) {
		return false
	}
	return true
}

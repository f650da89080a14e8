package validators

import (
	dto "task-planner.com/task-planner/internal/data_models"
	errs "task-planner.com/task-planner/internal/errors"
)

const (
	maxTaskNameLen    = 100
	maxDescriptionLen = 250
)

func ValidateCreateTaskRequest(r *dto.CreateTaskRequest) error {
	if r.ProjectID == "" {
		return errs.ErrProjectIDRequired
	}
	if r.TaskType == "" {
		return errs.Validation("Task Type (SwimLane) is required")
	}
	if err := validateNaming(r.TaskName, r.Description); err != nil {
		return err
	}
	for i := range r.Subtasks {
		if err := ValidateSubtaskRequest(&r.Subtasks[i]); err != nil {
			return err
		}
	}
	return nil
}

func ValidateSubtaskRequest(r *dto.SubtaskRequest) error {
	return validateNaming(r.TaskName, r.Description)
}

func validateNaming(taskName, description string) error {
	if taskName == "" {
		return errs.Validation("Task Name is required")
	}
	if len(taskName) > maxTaskNameLen {
		return errs.Validation("Task Name exceeds max size 100")
	}
	if len(description) > maxDescriptionLen {
		return errs.Validation("Description exceeds max size 250")
	}
	return nil
}

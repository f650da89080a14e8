package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"gorm.io/datatypes"

	"task-planner.com/task-planner/internal/cleanup"
	"task-planner.com/task-planner/internal/constants"
	dto "task-planner.com/task-planner/internal/data_models"
	errs "task-planner.com/task-planner/internal/errors"
	model "task-planner.com/task-planner/internal/models"
	repository "task-planner.com/task-planner/internal/repositories"
	"task-planner.com/task-planner/internal/scheduling"
)

const defaultListLimit = 1000

// TaskService coordinates multi-document task operations over a store that
// only offers single-document atomicity. Validation runs before any write;
// a partially failed create is undone by a scheduled compensating delete.
type TaskService struct {
	repo      *repository.TaskRepository
	validator *scheduling.Validator
	cleanup   cleanup.Scheduler
	events    Events
}

func NewTaskService(repo *repository.TaskRepository, cleanupScheduler cleanup.Scheduler, events Events) *TaskService {
	if events == nil {
		events = LogEvents{}
	}
	return &TaskService{
		repo:      repo,
		validator: scheduling.NewValidator(repo),
		cleanup:   cleanupScheduler,
		events:    events,
	}
}

// CreateTask runs the create saga: validate and persist the top-level task,
// create the requested subtasks concurrently, then attach the children to
// the parent. All subtask creations run to completion even when one fails,
// so the compensation job can account for every identifier that was
// actually created. On any failure past the parent insert the original
// error is reported and a delayed best-effort cleanup removes the partial
// tree. Success carries only the parent's identifier.
func (s *TaskService) CreateTask(ctx context.Context, req dto.CreateTaskRequest) (*dto.CreatedTask, error) {
	parent, err := taskFromCreate(req)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(ctx, parent, nil); err != nil {
		return nil, err
	}

	parent, err = s.repo.CreateTask(ctx, parent)
	if err != nil {
		return nil, err
	}

	if len(req.Subtasks) == 0 {
		s.events.TaskCreated(parent.TaskID)
		return &dto.CreatedTask{TaskID: parent.TaskID}, nil
	}

	childIDs, err := s.createSubtasks(ctx, parent, req.Subtasks)
	if err != nil {
		s.compensate(parent, childIDs)
		return nil, err
	}

	parent.Subtasks = datatypes.JSONSlice[string](childIDs)
	if _, err := s.repo.Update(ctx, parent); err != nil {
		s.compensate(parent, childIDs)
		return nil, err
	}

	s.events.TaskCreated(parent.TaskID)
	return &dto.CreatedTask{TaskID: parent.TaskID}, nil
}

// createSubtasks validates and creates every subtask concurrently, mirrors
// of each other only through the shared parent. It returns the document ids
// of the subtasks that were created, in request order, and the first error
// encountered.
func (s *TaskService) createSubtasks(ctx context.Context, parent *model.Task, reqs []dto.SubtaskRequest) ([]string, error) {
	type outcome struct {
		docID string
		err   error
	}

	outcomes := make([]outcome, len(reqs))
	var wg sync.WaitGroup

	for i, subReq := range reqs {
		wg.Add(1)
		go func(i int, subReq dto.SubtaskRequest) {
			defer wg.Done()

			sub, err := taskFromSubtask(parent, subReq)
			if err == nil {
				err = s.validator.Validate(ctx, sub, parent)
			}
			if err == nil {
				sub, err = s.repo.CreateTask(ctx, sub)
			}
			if err != nil {
				outcomes[i] = outcome{err: err}
				return
			}

			s.events.SubtaskCreated(parent.TaskID, sub.TaskID)
			outcomes[i] = outcome{docID: sub.DocID}
		}(i, subReq)
	}
	wg.Wait()

	var created []string
	var firstErr error
	for _, out := range outcomes {
		if out.docID != "" {
			created = append(created, out.docID)
		}
		if out.err != nil && firstErr == nil {
			firstErr = out.err
		}
	}
	return created, firstErr
}

func (s *TaskService) compensate(parent *model.Task, childIDs []string) {
	s.cleanup.Schedule(cleanup.Job{
		ProjectID:    parent.ProjectID,
		TaskIDPrefix: parent.TaskID,
		DocIDs:       append(childIDs, parent.DocID),
	})
	s.events.CleanupScheduled(parent.TaskID)
}

// GetTask returns the task with subtasks populated, or nil when no task
// matches; absence is a benign result, not an error.
func (s *TaskService) GetTask(ctx context.Context, projectID, taskID string) (*dto.TaskResponse, error) {
	task, err := s.repo.FindByTaskID(ctx, projectID, taskID)
	if errors.Is(err, errs.ErrTaskNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	children, err := s.repo.FindByDocIDs(ctx, []string(task.Subtasks))
	if err != nil {
		return nil, err
	}

	resp := dto.FromTask(task, children, false)
	return &resp, nil
}

// ListTasks returns one page of top-level tasks matching the query, with
// subtasks populated but trimmed of their heavy list fields.
func (s *TaskService) ListTasks(ctx context.Context, query dto.ListTasksQuery) (*dto.TaskPage, error) {
	filter := repository.ListFilter{
		ProjectID: query.ProjectID,
		Status:    query.Status,
		TaskID:    query.TaskID,
		Limit:     query.Limit,
		Page:      query.Page,
	}
	if filter.Limit <= 0 {
		filter.Limit = defaultListLimit
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}

	var err error
	if filter.StartFrom, err = parseOptionalTime(query.StartTime); err != nil {
		return nil, err
	}
	if filter.EndUntil, err = parseOptionalTime(query.EndTime); err != nil {
		return nil, err
	}
	if query.Tags != "" {
		filter.Tags = strings.Split(query.Tags, ",")
	}

	tasks, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	results := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		resp := dto.FromTask(&tasks[i], nil, false)

		children, err := s.repo.FindByDocIDs(ctx, []string(tasks[i].Subtasks))
		if err != nil {
			return nil, err
		}
		for j := range children {
			resp.Subtasks = append(resp.Subtasks, dto.FromTask(&children[j], nil, true))
		}

		results = append(results, resp)
	}

	totalPages := (total + int64(filter.Limit) - 1) / int64(filter.Limit)
	return &dto.TaskPage{
		Results:     results,
		Limit:       filter.Limit,
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: filter.Page,
	}, nil
}

// UpdateTask applies only the fields present in the request. A window
// change on a top-level task is re-checked for overlap against the rest of
// the project, excluding the task itself; subtask windows are not editable
// here. Returns the authoritative post-update document.
func (s *TaskService) UpdateTask(ctx context.Context, projectID, taskID string, req dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.repo.FindByTaskID(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}

	if err := applyBodyFields(task, req); err != nil {
		return nil, err
	}

	if task.TopLevel() {
		windowChanged := false
		if req.StartTime != nil {
			if task.StartTime, err = parseOptionalTime(*req.StartTime); err != nil {
				return nil, err
			}
			windowChanged = true
		}
		if req.EndTime != nil {
			if task.EndTime, err = parseOptionalTime(*req.EndTime); err != nil {
				return nil, err
			}
			windowChanged = true
		}
		if windowChanged {
			if err := s.validator.Validate(ctx, task, nil); err != nil {
				return nil, err
			}
		}
	}

	updated, err := s.repo.Update(ctx, task)
	if err != nil {
		return nil, err
	}
	s.events.TaskUpdated(updated.TaskID)

	children, err := s.repo.FindByDocIDs(ctx, []string(updated.Subtasks))
	if err != nil {
		return nil, err
	}

	resp := dto.FromTask(updated, children, false)
	return &resp, nil
}

// DeleteTask cascades: stored subtask references are bulk-deleted, then the
// task itself. Detaching the deleted task from its parent's subtask list is
// a secondary consistency repair; its failure is logged and never rolls
// back the completed deletion.
func (s *TaskService) DeleteTask(ctx context.Context, projectID, taskID string) (*dto.DeletedTask, error) {
	task, err := s.repo.FindByTaskID(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}

	if len(task.Subtasks) > 0 {
		if err := s.repo.DeleteManyByDocIDs(ctx, []string(task.Subtasks)); err != nil {
			return nil, err
		}
	}

	if err := s.repo.DeleteByDocID(ctx, task.DocID); err != nil {
		return nil, err
	}

	if task.ParentTask != "" {
		s.detachFromParent(ctx, task)
	}

	return &dto.DeletedTask{TaskID: task.TaskID}, nil
}

func (s *TaskService) detachFromParent(ctx context.Context, task *model.Task) {
	parent, err := s.repo.FindByTaskID(ctx, task.ProjectID, task.ParentTask)
	if err != nil {
		log.Printf("delete %s: parent %s not loadable for detach: %v", task.TaskID, task.ParentTask, err)
		return
	}

	kept := make([]string, 0, len(parent.Subtasks))
	for _, id := range parent.Subtasks {
		if id != task.DocID {
			kept = append(kept, id)
		}
	}
	if len(kept) == len(parent.Subtasks) {
		return
	}

	parent.Subtasks = datatypes.JSONSlice[string](kept)
	if _, err := s.repo.Update(ctx, parent); err != nil {
		log.Printf("delete %s: failed to detach from parent %s: %v", task.TaskID, parent.TaskID, err)
	}
}

// AddSubtask creates a single subtask under an existing parent, containment
// checked, and records it in the parent's subtask list.
func (s *TaskService) AddSubtask(ctx context.Context, projectID, parentTaskID string, req dto.SubtaskRequest) (*dto.TaskResponse, error) {
	parent, err := s.repo.FindByTaskID(ctx, projectID, parentTaskID)
	if errors.Is(err, errs.ErrTaskNotFound) {
		return nil, errs.ErrParentTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	sub, err := taskFromSubtask(parent, req)
	if err != nil {
		return nil, err
	}
	if err := s.validator.Validate(ctx, sub, parent); err != nil {
		return nil, err
	}

	sub, err = s.repo.CreateTask(ctx, sub)
	if err != nil {
		return nil, err
	}

	parent.Subtasks = append(parent.Subtasks, sub.DocID)
	if _, err := s.repo.Update(ctx, parent); err != nil {
		s.cleanup.Schedule(cleanup.Job{
			ProjectID:    projectID,
			TaskIDPrefix: sub.TaskID,
			DocIDs:       []string{sub.DocID},
		})
		s.events.CleanupScheduled(sub.TaskID)
		return nil, err
	}

	s.events.SubtaskCreated(parent.TaskID, sub.TaskID)
	resp := dto.FromTask(sub, nil, false)
	return &resp, nil
}

// EditSubtask applies a partial update to a subtask resolved through its
// parent pairing. Window fields are not re-validated on subtask edits.
func (s *TaskService) EditSubtask(ctx context.Context, projectID, parentTaskID, subTaskID string, req dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	sub, err := s.repo.FindSubtask(ctx, projectID, parentTaskID, subTaskID)
	if err != nil {
		return nil, err
	}

	if err := applyBodyFields(sub, req); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, sub)
	if err != nil {
		return nil, err
	}
	s.events.TaskUpdated(updated.TaskID)

	resp := dto.FromTask(updated, nil, false)
	return &resp, nil
}

func taskFromCreate(req dto.CreateTaskRequest) (*model.Task, error) {
	status := constants.StatusNew
	if req.Status != "" {
		status = constants.TaskStatus(req.Status)
		if !status.Valid() {
			return nil, errs.InvalidStatus(req.Status)
		}
	}

	start, err := parseOptionalTime(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalTime(req.EndTime)
	if err != nil {
		return nil, err
	}

	return &model.Task{
		ProjectID:   req.ProjectID,
		TaskName:    req.TaskName,
		Description: req.Description,
		TaskType:    req.TaskType,
		Priority:    constants.TaskPriority(req.Priority),
		Assignee:    req.Assignee,
		StartTime:   start,
		EndTime:     end,
		Status:      status,
		Tags:        datatypes.JSONSlice[string](req.Tags),
		Links:       datatypes.JSONSlice[string](req.Links),
	}, nil
}

func taskFromSubtask(parent *model.Task, req dto.SubtaskRequest) (*model.Task, error) {
	start, err := parseOptionalTime(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseOptionalTime(req.EndTime)
	if err != nil {
		return nil, err
	}

	return &model.Task{
		ProjectID:   parent.ProjectID,
		ParentTask:  parent.TaskID,
		TaskName:    req.TaskName,
		Description: req.Description,
		TaskType:    req.TaskType,
		Priority:    constants.TaskPriority(req.Priority),
		Assignee:    req.Assignee,
		StartTime:   start,
		EndTime:     end,
		Tags:        datatypes.JSONSlice[string](req.Tags),
		Links:       datatypes.JSONSlice[string](req.Links),
	}, nil
}

func applyBodyFields(task *model.Task, req dto.UpdateTaskRequest) error {
	if req.TaskName != nil {
		task.TaskName = *req.TaskName
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.TaskType != nil {
		task.TaskType = *req.TaskType
	}
	if req.Priority != nil {
		task.Priority = constants.TaskPriority(*req.Priority)
	}
	if req.Assignee != nil {
		task.Assignee = *req.Assignee
	}
	if req.Tags != nil {
		task.Tags = datatypes.JSONSlice[string](*req.Tags)
	}
	if req.Links != nil {
		task.Links = datatypes.JSONSlice[string](*req.Links)
	}
	if req.Status != nil {
		status := constants.TaskStatus(*req.Status)
		if !status.Valid() {
			return errs.InvalidStatus(*req.Status)
		}
		task.Status = status
	}
	return nil
}

func parseOptionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := scheduling.ParseTime(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

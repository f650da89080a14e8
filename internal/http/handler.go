package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	dto "task-planner.com/task-planner/internal/data_models"
	errs "task-planner.com/task-planner/internal/errors"
	"task-planner.com/task-planner/internal/http/validators"
	"task-planner.com/task-planner/internal/services"
)

type Handler struct {
	taskService *services.TaskService
}

func NewHandler(taskService *services.TaskService) *Handler {
	return &Handler{
		taskService: taskService,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return Failure(c, errs.Validation("invalid JSON payload"))
	}
	if req.Assignee == "" {
		if userID, ok := c.Get("userid").(string); ok {
			req.Assignee = userID
		}
	}
	if err := validators.ValidateCreateTaskRequest(&req); err != nil {
		return Failure(c, err)
	}

	created, err := h.taskService.CreateTask(c.Request().Context(), req)
	if err != nil {
		return Failure(c, err)
	}

	return Success(c, http.StatusCreated, created)
}

func (h *Handler) GetTask(c echo.Context) error {
	taskID := c.Param("taskid")
	if taskID == "" {
		return Failure(c, errs.ErrTaskIDRequired)
	}
	projectID := c.QueryParam("projectid")
	if projectID == "" {
		return Failure(c, errs.ErrProjectIDRequired)
	}

	task, err := h.taskService.GetTask(c.Request().Context(), projectID, taskID)
	if err != nil {
		return Failure(c, err)
	}
	if task == nil {
		// Absence is benign: an empty result, not a failure.
		return Success(c, http.StatusOK, echo.Map{})
	}

	return Success(c, http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	projectID := c.QueryParam("projectid")
	if projectID == "" {
		return Failure(c, errs.ErrProjectIDRequired)
	}

	query := dto.ListTasksQuery{
		ProjectID: projectID,
		StartTime: c.QueryParam("starttime"),
		EndTime:   c.QueryParam("endtime"),
		Status:    c.QueryParam("status"),
		Tags:      c.QueryParam("tags"),
		TaskID:    c.QueryParam("taskid"),
	}
	query.Limit, _ = strconv.Atoi(c.QueryParam("limit"))
	query.Page, _ = strconv.Atoi(c.QueryParam("page"))

	page, err := h.taskService.ListTasks(c.Request().Context(), query)
	if err != nil {
		return Failure(c, err)
	}

	return Paginate(c, page)
}

func (h *Handler) UpdateTask(c echo.Context) error {
	taskID := c.Param("taskid")
	projectID := c.QueryParam("projectid")
	if projectID == "" {
		return Failure(c, errs.ErrProjectIDRequired)
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return Failure(c, errs.Validation("invalid JSON payload"))
	}

	task, err := h.taskService.UpdateTask(c.Request().Context(), projectID, taskID, req)
	if err != nil {
		return Failure(c, err)
	}

	return Success(c, http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	taskID := c.Param("taskid")
	projectID := c.QueryParam("projectid")
	if projectID == "" {
		return Failure(c, errs.ErrProjectIDRequired)
	}

	deleted, err := h.taskService.DeleteTask(c.Request().Context(), projectID, taskID)
	if err != nil {
		return Failure(c, err)
	}

	return Success(c, http.StatusOK, deleted)
}

func (h *Handler) AddSubtask(c echo.Context) error {
	parentTaskID := c.Param("taskid")
	projectID := c.QueryParam("projectid")
	if projectID == "" {
		return Failure(c, errs.ErrProjectIDRequired)
	}

	var req dto.SubtaskRequest
	if err := c.Bind(&req); err != nil {
		return Failure(c, errs.Validation("invalid JSON payload"))
	}
	if req.Assignee == "" {
		if userID, ok := c.Get("userid").(string); ok {
			req.Assignee = userID
		}
	}
	if err := validators.ValidateSubtaskRequest(&req); err != nil {
		return Failure(c, err)
	}

	subtask, err := h.taskService.AddSubtask(c.Request().Context(), projectID, parentTaskID, req)
	if err != nil {
		return Failure(c, err)
	}

	return Success(c, http.StatusCreated, subtask)
}

func (h *Handler) EditSubtask(c echo.Context) error {
	parentTaskID := c.Param("taskid")
	subTaskID := c.Param("subtaskid")
	projectID := c.QueryParam("projectid")
	if projectID == "" {
		return Failure(c, errs.ErrProjectIDRequired)
	}

	var req dto.UpdateTaskRequest
	if err := c.Bind(&req); err != nil {
		return Failure(c, errs.Validation("invalid JSON payload"))
	}

	subtask, err := h.taskService.EditSubtask(c.Request().Context(), projectID, parentTaskID, subTaskID, req)
	if err != nil {
		return Failure(c, err)
	}

	return Success(c, http.StatusOK, subtask)
}

package http

import (
	"time"

	"github.com/labstack/echo/v4"

	middleware "task-planner.com/task-planner/internal/http/middlewares"
)

func Register(e *echo.Echo, h *Handler, rateLimitPerMinute int, auth middleware.Authenticator) {
	e.Use(middleware.RateLimiter(rateLimitPerMinute, time.Minute))

	tasks := e.Group("/tasks", middleware.Authenticate(auth))

	tasks.POST("", h.CreateTask)
	tasks.GET("", h.ListTasks)
	tasks.GET("/:taskid", h.GetTask)
	tasks.PATCH("/:taskid", h.UpdateTask)
	tasks.DELETE("/:taskid", h.DeleteTask)
	tasks.POST("/:taskid/subtask", h.AddSubtask)
	tasks.PATCH("/:taskid/subtask/:subtaskid", h.EditSubtask)
}

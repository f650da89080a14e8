package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-planner.com/task-planner/internal/data_models"
	errs "task-planner.com/task-planner/internal/errors"
)

// Every response carries an explicit status discriminator; failures add a
// human-readable message and nothing else.

func Success(c echo.Context, status int, result interface{}) error {
	body := echo.Map{"status": "success"}
	if result != nil {
		body["result"] = result
	}
	return c.JSON(status, body)
}

func Paginate(c echo.Context, page *dto.TaskPage) error {
	return c.JSON(http.StatusOK, echo.Map{
		"status":      "success",
		"results":     page.Results,
		"limit":       page.Limit,
		"total":       page.Total,
		"totalpages":  page.TotalPages,
		"currentpage": page.CurrentPage,
	})
}

func Failure(c echo.Context, err error) error {
	return c.JSON(errs.StatusCode(err), echo.Map{
		"status": "failure",
		"error":  err.Error(),
	})
}

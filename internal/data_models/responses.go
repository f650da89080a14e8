package dto

import (
	model "task-planner.com/task-planner/internal/models"
	"task-planner.com/task-planner/internal/scheduling"
)

type CommentResponse struct {
	Body string `json:"body"`
	Date string `json:"date"`
}

// TaskResponse is a task document as callers see it: internal doc ids
// hidden, timestamps rendered back to the canonical string form, subtasks
// populated inline.
type TaskResponse struct {
	ProjectID   string            `json:"projectid"`
	ParentTask  string            `json:"parenttask,omitempty"`
	TaskID      string            `json:"taskid"`
	TaskName    string            `json:"taskname"`
	Description string            `json:"description,omitempty"`
	TaskType    string            `json:"tasktype,omitempty"`
	Priority    string            `json:"priority,omitempty"`
	Assignee    string            `json:"assignee,omitempty"`
	StartTime   string            `json:"starttime,omitempty"`
	EndTime     string            `json:"endtime,omitempty"`
	Status      string            `json:"status"`
	Tags        []string          `json:"tags,omitempty"`
	Links       []string          `json:"links,omitempty"`
	Comments    []CommentResponse `json:"comments,omitempty"`
	Subtasks    []TaskResponse    `json:"subtasks,omitempty"`
	Created     string            `json:"created"`
	Updated     string            `json:"updated"`
}

type CreatedTask struct {
	TaskID string `json:"taskid"`
}

type DeletedTask struct {
	TaskID string `json:"taskid"`
}

type TaskPage struct {
	Results     []TaskResponse `json:"results"`
	Limit       int            `json:"limit"`
	Total       int64          `json:"total"`
	TotalPages  int64          `json:"totalpages"`
	CurrentPage int            `json:"currentpage"`
}

// FromTask maps a stored task to its response form. Trimmed drops the heavy
// list fields, the shape used for subtasks inside a listing.
func FromTask(task *model.Task, subtasks []model.Task, trimmed bool) TaskResponse {
	created := task.Created
	updated := task.Updated

	resp := TaskResponse{
		ProjectID:   task.ProjectID,
		ParentTask:  task.ParentTask,
		TaskID:      task.TaskID,
		TaskName:    task.TaskName,
		Description: task.Description,
		TaskType:    task.TaskType,
		Priority:    string(task.Priority),
		Assignee:    task.Assignee,
		StartTime:   scheduling.FormatTime(task.StartTime),
		EndTime:     scheduling.FormatTime(task.EndTime),
		Status:      string(task.Status),
		Created:     scheduling.FormatTime(&created),
		Updated:     scheduling.FormatTime(&updated),
	}

	if !trimmed {
		resp.Tags = task.Tags
		resp.Links = task.Links
		for _, comment := range task.Comments {
			date := comment.Date
			resp.Comments = append(resp.Comments, CommentResponse{
				Body: comment.Body,
				Date: scheduling.FormatTime(&date),
			})
		}
	}

	for i := range subtasks {
		resp.Subtasks = append(resp.Subtasks, FromTask(&subtasks[i], nil, trimmed))
	}

	return resp
}

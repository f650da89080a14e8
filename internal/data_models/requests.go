package dto

// SubtaskRequest is the body of an add-subtask call and the per-item shape
// inside a create request. Timestamps travel as canonical
// "YYYY-MM-DD HH:mm:ss" strings.
type SubtaskRequest struct {
	TaskName    string   `json:"taskname"`
	Description string   `json:"description"`
	TaskType    string   `json:"tasktype"`
	Priority    string   `json:"priority"`
	Assignee    string   `json:"assignee"`
	StartTime   string   `json:"starttime"`
	EndTime     string   `json:"endtime"`
	Tags        []string `json:"tags"`
	Links       []string `json:"links"`
}

type CreateTaskRequest struct {
	ProjectID   string           `json:"projectid"`
	TaskName    string           `json:"taskname"`
	Description string           `json:"description"`
	TaskType    string           `json:"tasktype"`
	Priority    string           `json:"priority"`
	Assignee    string           `json:"assignee"`
	StartTime   string           `json:"starttime"`
	EndTime     string           `json:"endtime"`
	Status      string           `json:"status"`
	Tags        []string         `json:"tags"`
	Links       []string         `json:"links"`
	Subtasks    []SubtaskRequest `json:"subtasks"`
}

// UpdateTaskRequest applies only the fields present in the request body;
// pointers distinguish "absent" from "set to empty". An empty timestamp
// string clears the bound.
type UpdateTaskRequest struct {
	TaskName    *string   `json:"taskname"`
	Description *string   `json:"description"`
	TaskType    *string   `json:"tasktype"`
	Priority    *string   `json:"priority"`
	Assignee    *string   `json:"assignee"`
	StartTime   *string   `json:"starttime"`
	EndTime     *string   `json:"endtime"`
	Status      *string   `json:"status"`
	Tags        *[]string `json:"tags"`
	Links       *[]string `json:"links"`
}

// ListTasksQuery carries the query-string filters of a list call. Tags is
// the raw comma-separated value.
type ListTasksQuery struct {
	ProjectID string
	StartTime string
	EndTime   string
	Status    string
	Tags      string
	TaskID    string
	Limit     int
	Page      int
}

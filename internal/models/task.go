package model

import (
	"time"

	"gorm.io/datatypes"

	"task-planner.com/task-planner/internal/constants"
)

// Comment is stored inline on the task as part of a JSON array column.
type Comment struct {
	Body string    `json:"body"`
	Date time.Time `json:"date"`
}

// Task is a top-level task or a subtask. DocID is the internal document
// identifier; TaskID is the generated human-readable identifier. A subtask
// carries its parent's TaskID in ParentTask, and the parent owns the
// Subtasks membership list (DocIDs, in creation order). Only the task
// service mutates Subtasks.
type Task struct {
	DocID       string                           `gorm:"primaryKey;size:36" json:"-"`
	ProjectID   string                           `gorm:"size:36;index;not null" json:"projectid"`
	ParentTask  string                           `gorm:"size:64;index" json:"parenttask,omitempty"`
	TaskID      string                           `gorm:"uniqueIndex;size:64" json:"taskid"`
	TaskName    string                           `gorm:"size:100;not null" json:"taskname"`
	Description string                           `gorm:"size:250" json:"description,omitempty"`
	TaskType    string                           `gorm:"size:50" json:"tasktype,omitempty"`
	Priority    constants.TaskPriority           `gorm:"type:varchar(20)" json:"priority,omitempty"`
	Assignee    string                           `gorm:"size:100" json:"assignee,omitempty"`
	StartTime   *time.Time                       `json:"-"`
	EndTime     *time.Time                       `json:"-"`
	Status      constants.TaskStatus             `gorm:"type:varchar(20);not null" json:"status"`
	Subtasks    datatypes.JSONSlice[string]      `json:"-"`
	Tags        datatypes.JSONSlice[string]      `json:"tags,omitempty"`
	Links       datatypes.JSONSlice[string]      `json:"links,omitempty"`
	Comments    datatypes.JSONSlice[Comment]     `json:"comments,omitempty"`
	Created     time.Time                        `gorm:"<-:create" json:"created"`
	Updated     time.Time                        `json:"updated"`
}

// TopLevel reports whether the task participates in overlap checking.
func (t *Task) TopLevel() bool {
	return t.ParentTask == ""
}

// Scheduled reports whether the task has at least one window bound; tasks
// without any bound never participate in temporal checks.
func (t *Task) Scheduled() bool {
	return t.StartTime != nil || t.EndTime != nil
}

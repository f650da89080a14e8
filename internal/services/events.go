package services

import "log"

// Events receives notifications after the orchestrator commits or fails an
// operation. The sink is injected at construction instead of living in a
// process-wide emitter, so consumers (mail notification, audit) attach
// explicitly.
type Events interface {
	TaskCreated(taskID string)
	SubtaskCreated(parentTaskID, taskID string)
	TaskUpdated(taskID string)
	CleanupScheduled(taskIDPrefix string)
}

// LogEvents is the default sink: it only logs.
type LogEvents struct{}

func (LogEvents) TaskCreated(taskID string) {
	log.Printf("task-created: %s", taskID)
}

func (LogEvents) SubtaskCreated(parentTaskID, taskID string) {
	log.Printf("subtask-created: %s under %s", taskID, parentTaskID)
}

func (LogEvents) TaskUpdated(taskID string) {
	log.Printf("task-updated: %s", taskID)
}

func (LogEvents) CleanupScheduled(taskIDPrefix string) {
	log.Printf("task-create-error: cleanup scheduled for %s", taskIDPrefix)
}

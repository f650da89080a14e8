package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"task-planner.com/task-planner/internal/constants"
	errs "task-planner.com/task-planner/internal/errors"
	model "task-planner.com/task-planner/internal/models"
)

// TaskRepository is the persistence boundary for tasks and sequences. Every
// operation touches a single row or runs as a single statement; cross
// document consistency is the task service's job.
type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// NextSequence atomically increments and returns the counter for the given
// key, creating it at 1 on first use. Single statement, safe under
// concurrent callers sharing the key.
func (r *TaskRepository) NextSequence(ctx context.Context, modelName, field string) (int64, error) {
	var seq int64
	err := r.db.WithContext(ctx).Raw(
		`INSERT INTO sequences (model, field, seq) VALUES (?, ?, 1)
		 ON CONFLICT (model, field) DO UPDATE SET seq = seq + 1
		 RETURNING seq`,
		modelName, field,
	).Scan(&seq).Error
	if err != nil {
		return 0, err
	}
	return seq, nil
}

// CreateTask mints the document id, the sequence-derived task id and the
// system timestamps, then inserts the row. A task carrying ParentTask gets
// its identifier prefixed with the parent's, so parentage stays recoverable
// from the identifier itself. The zero padding is cosmetic: values past 99
// simply widen the string.
func (r *TaskRepository) CreateTask(ctx context.Context, task *model.Task) (*model.Task, error) {
	seq, err := r.NextSequence(ctx, "Task", "taskid")
	if err != nil {
		return nil, err
	}

	if task.ParentTask != "" {
		task.TaskID = fmt.Sprintf("%s#T-%02d", task.ParentTask, seq)
	} else {
		task.TaskID = fmt.Sprintf("T-%02d", seq)
	}

	task.DocID = uuid.NewString()
	if task.Status == "" {
		task.Status = constants.StatusNew
	}

	now := time.Now().UTC()
	task.Created = now
	task.Updated = now

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return nil, err
	}

	return task, nil
}

func (r *TaskRepository) FindByTaskID(ctx context.Context, projectID, taskID string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND task_id = ?", projectID, taskID).
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindSubtask resolves the parent/subtask pairing within a project.
func (r *TaskRepository) FindSubtask(ctx context.Context, projectID, parentTaskID, taskID string) (*model.Task, error) {
	var task model.Task
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND parent_task = ? AND task_id = ?", projectID, parentTaskID, taskID).
		First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrParentTaskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByDocIDs loads documents by internal id, returned in the order of the
// requested ids; ids with no matching row are skipped.
func (r *TaskRepository) FindByDocIDs(ctx context.Context, docIDs []string) ([]model.Task, error) {
	if len(docIDs) == 0 {
		return nil, nil
	}

	var rows []model.Task
	if err := r.db.WithContext(ctx).Where("doc_id IN ?", docIDs).Find(&rows).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]model.Task, len(rows))
	for _, row := range rows {
		byID[row.DocID] = row
	}

	ordered := make([]model.Task, 0, len(rows))
	for _, id := range docIDs {
		if row, ok := byID[id]; ok {
			ordered = append(ordered, row)
		}
	}
	return ordered, nil
}

// ListFilter narrows a top-level task listing. ProjectID is mandatory; the
// remaining fields apply only when set.
type ListFilter struct {
	ProjectID string
	StartFrom *time.Time
	EndUntil  *time.Time
	Status    string
	Tags      []string
	TaskID    string
	Limit     int
	Page      int
}

// List returns one page of top-level tasks plus the total match count.
func (r *TaskRepository) List(ctx context.Context, filter ListFilter) ([]model.Task, int64, error) {
	if filter.Limit <= 0 {
		return nil, 0, errs.ErrInvalidLimit
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	var total int64
	if err := r.listQuery(ctx, filter).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var tasks []model.Task
	err := r.listQuery(ctx, filter).
		Order("start_time asc, task_id asc").
		Offset((page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&tasks).Error
	if err != nil {
		return nil, 0, err
	}

	return tasks, total, nil
}

func (r *TaskRepository) listQuery(ctx context.Context, filter ListFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("project_id = ?", filter.ProjectID).
		Where("parent_task = ''")

	if filter.StartFrom != nil {
		query = query.Where("start_time >= ?", *filter.StartFrom)
	}
	if filter.EndUntil != nil {
		query = query.Where("end_time <= ?", *filter.EndUntil)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if len(filter.Tags) > 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM json_each(tasks.tags) WHERE json_each.value IN ?)",
			filter.Tags,
		)
	}
	if filter.TaskID != "" {
		query = query.Where("task_id = ?", filter.TaskID)
	}

	return query
}

// CountOverlapping counts conflict-eligible top-level tasks in the project
// whose window intersects the given bounds, inclusive on both ends. Rows
// lacking the compared bound never match, so half-scheduled tasks only
// conflict on the side they define.
func (r *TaskRepository) CountOverlapping(ctx context.Context, projectID string, start, end *time.Time, excludeTaskID string) (int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("project_id = ?", projectID).
		Where("parent_task = ''").
		Where("status IN ?", constants.ConflictStatuses)

	if start != nil {
		query = query.Where("end_time IS NOT NULL AND end_time >= ?", *start)
	}
	if end != nil {
		query = query.Where("start_time IS NOT NULL AND start_time <= ?", *end)
	}
	if excludeTaskID != "" {
		query = query.Where("task_id <> ?", excludeTaskID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update persists the task's mutable columns, bumps the updated timestamp
// and returns the authoritative post-update row. Created is never touched.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) (*model.Task, error) {
	task.Updated = time.Now().UTC()

	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("doc_id = ?", task.DocID).
		Updates(map[string]interface{}{
			"task_name":   task.TaskName,
			"description": task.Description,
			"task_type":   task.TaskType,
			"priority":    task.Priority,
			"assignee":    task.Assignee,
			"start_time":  task.StartTime,
			"end_time":    task.EndTime,
			"status":      task.Status,
			"subtasks":    task.Subtasks,
			"tags":        task.Tags,
			"links":       task.Links,
			"comments":    task.Comments,
			"updated":     task.Updated,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, errs.ErrTaskNotFound
	}

	var fresh model.Task
	if err := r.db.WithContext(ctx).First(&fresh, "doc_id = ?", task.DocID).Error; err != nil {
		return nil, err
	}
	return &fresh, nil
}

func (r *TaskRepository) DeleteByDocID(ctx context.Context, docID string) error {
	return r.db.WithContext(ctx).Where("doc_id = ?", docID).Delete(&model.Task{}).Error
}

// DeleteManyByDocIDs removes a set of documents; already-absent ids are a
// no-op, which keeps the cascade and the compensation idempotent.
func (r *TaskRepository) DeleteManyByDocIDs(ctx context.Context, docIDs []string) error {
	if len(docIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("doc_id IN ?", docIDs).Delete(&model.Task{}).Error
}

// DeleteTaskTree removes every document whose identifier derives from the
// given prefix, plus any explicitly collected document ids. This is the
// compensation target for a partially failed create: the prefix match
// catches subtasks that were created but never linked.
func (r *TaskRepository) DeleteTaskTree(ctx context.Context, projectID, taskIDPrefix string, docIDs []string) error {
	query := r.db.WithContext(ctx).Where("project_id = ?", projectID)

	if len(docIDs) > 0 {
		query = query.Where("task_id LIKE ? OR doc_id IN ?", taskIDPrefix+"%", docIDs)
	} else {
		query = query.Where("task_id LIKE ?", taskIDPrefix+"%")
	}

	return query.Delete(&model.Task{}).Error
}

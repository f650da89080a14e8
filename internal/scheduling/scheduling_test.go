package scheduling

import (
	"context"
	"errors"
	"testing"
	"time"

	errs "task-planner.com/task-planner/internal/errors"
	model "task-planner.com/task-planner/internal/models"
)

type fakeConflictCounter struct {
	count  int64
	err    error
	called bool
}

func (f *fakeConflictCounter) CountOverlapping(ctx context.Context, projectID string, start, end *time.Time, excludeTaskID string) (int64, error) {
	f.called = true
	return f.count, f.err
}

func ts(t *testing.T, value string) *time.Time {
	t.Helper()
	parsed, err := ParseTime(value)
	if err != nil {
		t.Fatalf("failed to parse %q: %v", value, err)
	}
	return &parsed
}

func TestParseTime(t *testing.T) {
	parsed, err := ParseTime("2024-01-10 09:00:00")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if parsed.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", parsed.Location())
	}
	if got := FormatTime(&parsed); got != "2024-01-10 09:00:00" {
		t.Errorf("round trip mismatch: %q", got)
	}
}

func TestParseTime_InvalidFormat(t *testing.T) {
	for _, value := range []string{"2024-01-10", "10/01/2024 09:00:00", "not a date"} {
		if _, err := ParseTime(value); !errors.Is(err, errs.ErrInvalidDate) {
			t.Errorf("ParseTime(%q): expected invalid date error, got %v", value, err)
		}
	}
}

func TestFormatTime_Nil(t *testing.T) {
	if got := FormatTime(nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestHasConflict_UnscheduledNeverConflicts(t *testing.T) {
	counter := &fakeConflictCounter{count: 5}
	checker := NewChecker(counter)

	conflict, err := checker.HasConflict(context.Background(), "p1", nil, nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conflict {
		t.Error("unscheduled window must never conflict")
	}
	if counter.called {
		t.Error("store must not be queried for an absent window")
	}
}

func TestHasConflict_OneSidedWindow(t *testing.T) {
	counter := &fakeConflictCounter{count: 1}
	checker := NewChecker(counter)

	conflict, err := checker.HasConflict(context.Background(), "p1", ts(t, "2024-03-01 00:00:00"), nil, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !conflict {
		t.Error("expected conflict for one-sided window")
	}
}

func TestValidate_SubtaskContainment(t *testing.T) {
	parent := &model.Task{
		TaskID:    "T-01",
		StartTime: ts(t, "2024-03-01 10:00:00"),
		EndTime:   ts(t, "2024-03-01 12:00:00"),
	}
	validator := NewValidator(&fakeConflictCounter{})

	cases := []struct {
		name    string
		start   *time.Time
		end     *time.Time
		wantErr error
	}{
		{"inside", ts(t, "2024-03-01 10:30:00"), ts(t, "2024-03-01 11:30:00"), nil},
		{"exact bounds are inclusive", ts(t, "2024-03-01 10:00:00"), ts(t, "2024-03-01 12:00:00"), nil},
		{"starts before parent", ts(t, "2024-03-01 09:59:59"), ts(t, "2024-03-01 11:00:00"), errs.ErrTimelineContainment},
		{"ends after parent", ts(t, "2024-03-01 11:00:00"), ts(t, "2024-03-01 12:00:01"), errs.ErrTimelineContainment},
		{"unscheduled subtask", nil, nil, nil},
		{"only end defined, inside", nil, ts(t, "2024-03-01 11:00:00"), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub := &model.Task{StartTime: tc.start, EndTime: tc.end}
			err := validator.Validate(context.Background(), sub, parent)
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
			if err == nil && sub.ParentTask != parent.TaskID {
				t.Errorf("expected parenttask %q, got %q", parent.TaskID, sub.ParentTask)
			}
		})
	}
}

func TestValidate_ParentWithOpenEnd(t *testing.T) {
	// Parent defines only a start: the subtask's bounds are checked against
	// that side alone.
	parent := &model.Task{
		TaskID:    "T-01",
		StartTime: ts(t, "2024-03-01 10:00:00"),
	}
	validator := NewValidator(&fakeConflictCounter{})

	sub := &model.Task{
		StartTime: ts(t, "2024-03-02 00:00:00"),
		EndTime:   ts(t, "2024-06-01 00:00:00"),
	}
	if err := validator.Validate(context.Background(), sub, parent); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	early := &model.Task{StartTime: ts(t, "2024-02-01 00:00:00")}
	if err := validator.Validate(context.Background(), early, parent); !errors.Is(err, errs.ErrTimelineContainment) {
		t.Errorf("expected containment error, got %v", err)
	}
}

func TestValidate_TopLevelOverlap(t *testing.T) {
	validator := NewValidator(&fakeConflictCounter{count: 1})

	task := &model.Task{
		ProjectID: "p1",
		StartTime: ts(t, "2024-03-01 00:00:00"),
		EndTime:   ts(t, "2024-03-05 00:00:00"),
	}
	if err := validator.Validate(context.Background(), task, nil); !errors.Is(err, errs.ErrTaskOverlap) {
		t.Errorf("expected overlap error, got %v", err)
	}
}

func TestValidate_TopLevelNoConflict(t *testing.T) {
	validator := NewValidator(&fakeConflictCounter{})

	task := &model.Task{
		ProjectID: "p1",
		StartTime: ts(t, "2024-03-01 00:00:00"),
		EndTime:   ts(t, "2024-03-05 00:00:00"),
	}
	if err := validator.Validate(context.Background(), task, nil); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus lifecycle of a care task
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "inProgress"
	TaskCompleted  TaskStatus = "completed"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// Priority of a task. Values outside high/medium/low are kept as-is and rank 0.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank high=3, medium=2, low=1, anything else 0
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

// Task care task. Only TaskRepository.ToggleStatus mutates Status and CompletedAt.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Status      TaskStatus `json:"status"`
	Priority    Priority   `json:"priority"`
	Patient     string     `json:"patient"`
	DueDate     *time.Time `json:"dueDate"`
	CompletedAt *time.Time `json:"completedAt"`
	Notes       string     `json:"notes,omitempty"`
}

// IsOverdue evaluated against the wall clock on every call.
func (t *Task) IsOverdue() bool {
	return t.IsOverdueAt(time.Now())
}

// IsOverdueAt not completed, has a due date, and the due date is strictly before now.
func (t *Task) IsOverdueAt(now time.Time) bool {
	return t.Status != TaskCompleted && t.DueDate != nil && t.DueDate.Before(now)
}

// IsDueToday due date falls on today's calendar day in the local timezone.
func (t *Task) IsDueToday() bool {
	return t.IsDueTodayAt(time.Now())
}

// IsDueTodayAt compares calendar dates in now's location; time of day is ignored.
func (t *Task) IsDueTodayAt(now time.Time) bool {
	if t.DueDate == nil {
		return false
	}
	dy, dm, dd := t.DueDate.In(now.Location()).Date()
	ny, nm, nd := now.Date()
	return dy == ny && dm == nm && dd == nd
}

// TaskParams named constructor input
type TaskParams struct {
	ID          string
	Title       string
	Status      TaskStatus
	Priority    Priority
	Patient     string
	DueDate     *time.Time
	CompletedAt *time.Time
	Notes       string
}

// NewTask defaults: generated ID, status pending, priority medium.
func NewTask(p TaskParams) (*Task, error) {
	if strings.TrimSpace(p.Title) == "" {
		return nil, fmt.Errorf("%w: task title is required", ErrInvalidEntity)
	}

	status := p.Status
	if status == "" {
		status = TaskPending
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown task status %q", ErrInvalidEntity, p.Status)
	}

	priority := p.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	id := p.ID
	if id == "" {
		id = uuid.NewString()
	}

	return &Task{
		ID:          id,
		Title:       p.Title,
		Status:      status,
		Priority:    priority,
		Patient:     p.Patient,
		DueDate:     copyTime(p.DueDate),
		CompletedAt: copyTime(p.CompletedAt),
		Notes:       p.Notes,
	}, nil
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

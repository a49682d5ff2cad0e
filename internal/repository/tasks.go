package repository

import (
	"sort"
	"sync"
	"time"

	"careconnect/internal/models"
)

// TaskRepository task list. Views are pure; ToggleStatus is the only write.
type TaskRepository struct {
	mu    sync.RWMutex
	tasks []*models.Task
	now   func() time.Time
}

// NewTaskRepository now may be nil (wall clock).
func NewTaskRepository(tasks []*models.Task, now func() time.Time) *TaskRepository {
	if now == nil {
		now = time.Now
	}
	return &TaskRepository{
		tasks: append([]*models.Task(nil), tasks...),
		now:   now,
	}
}

func (r *TaskRepository) All() []*models.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append(make([]*models.Task, 0, len(r.tasks)), r.tasks...)
}

func (r *TaskRepository) FindByID(id string) *models.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.findLocked(id)
}

func (r *TaskRepository) findLocked(id string) *models.Task {
	for _, t := range r.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (r *TaskRepository) ByStatus(s models.TaskStatus) []*models.Task {
	return r.filter(func(t *models.Task) bool { return t.Status == s })
}

func (r *TaskRepository) Pending() []*models.Task { return r.ByStatus(models.TaskPending) }

func (r *TaskRepository) InProgress() []*models.Task { return r.ByStatus(models.TaskInProgress) }

func (r *TaskRepository) Completed() []*models.Task { return r.ByStatus(models.TaskCompleted) }

// Overdue evaluated against the repository clock at call time
func (r *TaskRepository) Overdue() []*models.Task {
	now := r.now()
	return r.filter(func(t *models.Task) bool { return t.IsOverdueAt(now) })
}

func (r *TaskRepository) DueToday() []*models.Task {
	now := r.now()
	return r.filter(func(t *models.Task) bool { return t.IsDueTodayAt(now) })
}

// SortedByPriorityAndDate every task in SortByPriorityAndDate order
func (r *TaskRepository) SortedByPriorityAndDate() []*models.Task {
	out := r.All()
	SortByPriorityAndDate(out)
	return out
}

// SortByPriorityAndDate sorts tasks in place: highest priority rank first
// (unknown priorities rank 0), then earliest due date; tasks without a due
// date go last within their rank. Stable.
func SortByPriorityAndDate(tasks []*models.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		pi, pj := tasks[i].Priority.Rank(), tasks[j].Priority.Rank()
		if pi != pj {
			return pi > pj
		}
		return dueBefore(tasks[i].DueDate, tasks[j].DueDate)
	})
}

// dueBefore orders nil (no due date) after every real date
func dueBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}

// ToggleStatus flips completed and pending in place and returns the same
// task. Moving to completed stamps CompletedAt; moving back clears it.
// In-progress tasks go to completed. Returns nil when id is unknown.
func (r *TaskRepository) ToggleStatus(id string) *models.Task {
	r.mu.Lock()
	defer r.mu.Unlock()

	t := r.findLocked(id)
	if t == nil {
		return nil
	}

	if t.Status == models.TaskCompleted {
		t.Status = models.TaskPending
		t.CompletedAt = nil
	} else {
		now := r.now()
		t.Status = models.TaskCompleted
		t.CompletedAt = &now
	}
	return t
}

func (r *TaskRepository) filter(keep func(*models.Task) bool) []*models.Task {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*models.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"careconnect/internal/models"
)

func TestWriteTasksXLSX(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	overdue, err := models.NewTask(models.TaskParams{ID: "1", Title: "Dressing change", Priority: models.PriorityHigh, Patient: "Margaret Hollis", DueDate: &yesterday})
	require.NoError(t, err)
	done, err := models.NewTask(models.TaskParams{ID: "2", Title: "Care plan", Status: models.TaskCompleted, DueDate: &yesterday, CompletedAt: &now})
	require.NoError(t, err)
	later, err := models.NewTask(models.TaskParams{ID: "3", Title: "PT follow-up", Priority: models.PriorityLow, DueDate: &tomorrow})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteTasksXLSX(&buf, []*models.Task{overdue, done, later}, now))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{TasksSheet}, f.GetSheetList())

	rows, err := f.GetRows(TasksSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, TaskHeaders, rows[0])
	assert.Equal(t, []string{"1", "Dressing change", "Margaret Hollis", "high", "pending", "2026-03-01 10:00", "", "Yes"}, rows[1])
	assert.Equal(t, []string{"2", "Care plan", "", "medium", "completed", "2026-03-01 10:00", "2026-03-02 10:00", "No"}, rows[2])
	assert.Equal(t, []string{"3", "PT follow-up", "", "low", "pending", "2026-03-03 10:00", "", "No"}, rows[3])
}

func TestWriteTasksXLSX_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTasksXLSX(&buf, nil, time.Now()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(TasksSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, TaskHeaders, rows[0])
}

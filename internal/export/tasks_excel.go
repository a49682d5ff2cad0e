package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"careconnect/internal/models"
)

const (
	TasksSheet = "Tasks"
	timeLayout = "2006-01-02 15:04"
)

// TaskHeaders column order of the task workbook
var TaskHeaders = []string{"ID", "Title", "Patient", "Priority", "Status", "Due", "Completed", "Overdue"}

var taskColumnWidths = []float64{10, 36, 22, 10, 12, 18, 18, 10}

// WriteTasksXLSX writes one row per task, in the given order. Overdue is
// evaluated against now.
func WriteTasksXLSX(w io.Writer, tasks []*models.Task, now time.Time) error {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(TasksSheet)
	if err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, header := range TaskHeaders {
		if err := setCell(f, i+1, 1, header); err != nil {
			return fmt.Errorf("failed to set header %q: %w", header, err)
		}
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(TasksSheet, col, col, taskColumnWidths[i]); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	if err := f.SetCellStyle(TasksSheet, "A1", fmt.Sprintf("%c1", 'A'+len(TaskHeaders)-1), headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for i, t := range tasks {
		row := i + 2
		overdue := "No"
		if t.IsOverdueAt(now) {
			overdue = "Yes"
		}
		values := []any{
			t.ID,
			t.Title,
			t.Patient,
			string(t.Priority),
			string(t.Status),
			formatTime(t.DueDate),
			formatTime(t.CompletedAt),
			overdue,
		}
		for col, v := range values {
			if v == "" {
				continue
			}
			if err := setCell(f, col+1, row, v); err != nil {
				return fmt.Errorf("failed to set cell at row %d, col %d: %w", row, col+1, err)
			}
		}
	}

	if err := f.SetPanes(TasksSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze panes: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(TasksSheet, cell, value)
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

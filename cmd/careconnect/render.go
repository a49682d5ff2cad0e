package main

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	noteStyle   = lipgloss.NewStyle().Faint(true)
)

func renderTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	fmt.Fprintln(w, t.Render())
}

func renderTitle(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf(format, args...)))
}

func renderNote(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, noteStyle.Render(fmt.Sprintf(format, args...)))
}

func formatWhen(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("Mon Jan 2 15:04")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"careconnect/internal/export"
	"careconnect/internal/models"
	"careconnect/internal/repository"
	"careconnect/internal/service"
	"careconnect/internal/viewmode"
)

func newPatientsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patients",
		Short: "Patient lists",
	}

	var view string
	list := &cobra.Command{
		Use:   "list",
		Short: "List patients in a view mode",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := service.FromContext(cmd.Context())

			mode, ok := viewmode.ParseMode(view)
			if !ok {
				renderNote(cmd.ErrOrStderr(), "unknown view %q, showing all patients", view)
			}
			v := app.Views.Select(mode)

			rows := make([][]string, 0, len(v.Patients))
			for _, p := range v.Patients {
				rows = append(rows, []string{
					p.ID,
					p.FullName(),
					orDash(string(p.Criticality)),
					formatWhen(p.NextVisit),
					orDash(p.Room),
				})
			}
			renderTitle(cmd.OutOrStdout(), "Patients (%s): %d", v.Mode, len(v.Patients))
			renderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Criticality", "Next visit", "Room"}, rows)
			return nil
		},
	}
	list.Flags().StringVar(&view, "view", string(viewmode.All), "all, needing_attention or upcoming_visits")

	cmd.AddCommand(list)
	return cmd
}

func newTasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Care tasks",
	}

	var filter, sortBy string
	list := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := service.FromContext(cmd.Context())

			tasks, err := selectTasks(app.Tasks, filter, sortBy)
			if err != nil {
				return err
			}
			now := app.Now()
			rows := make([][]string, 0, len(tasks))
			for _, t := range tasks {
				overdue := ""
				if t.IsOverdueAt(now) {
					overdue = "overdue"
				}
				rows = append(rows, []string{
					t.ID,
					t.Title,
					orDash(t.Patient),
					string(t.Priority),
					string(t.Status),
					formatWhen(t.DueDate),
					overdue,
				})
			}
			renderTitle(cmd.OutOrStdout(), "Tasks (%s): %d", filter, len(tasks))
			renderTable(cmd.OutOrStdout(), []string{"ID", "Title", "Patient", "Priority", "Status", "Due", ""}, rows)
			return nil
		},
	}
	list.Flags().StringVar(&filter, "filter", "all", "all, pending, in_progress, completed, overdue or today")
	list.Flags().StringVar(&sortBy, "sort", "", "priority: highest priority first, then earliest due")

	toggle := &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task completed, or back to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := service.FromContext(cmd.Context())

			t := app.Tasks.ToggleStatus(args[0])
			if t == nil {
				return fmt.Errorf("task %s not found", args[0])
			}
			completed := "-"
			if t.CompletedAt != nil {
				completed = formatWhen(t.CompletedAt)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (completed: %s)\n", t.ID, t.Status, completed)
			return nil
		},
	}

	var out string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Write tasks to an Excel workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := service.FromContext(cmd.Context())

			tasks, err := selectTasks(app.Tasks, filter, sortBy)
			if err != nil {
				return err
			}
			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("failed to create %s: %w", out, err)
			}
			if err := export.WriteTasksXLSX(f, tasks, app.Now()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("failed to close %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d tasks to %s\n", len(tasks), out)
			return nil
		},
	}
	exportCmd.Flags().StringVar(&out, "out", "tasks.xlsx", "Output file")
	exportCmd.Flags().StringVar(&filter, "filter", "all", "Same filters as list")
	exportCmd.Flags().StringVar(&sortBy, "sort", "", "priority")

	cmd.AddCommand(list, toggle, exportCmd)
	return cmd
}

// selectTasks applies a repository filter, then the optional priority sort
func selectTasks(repo *repository.TaskRepository, filter, sortBy string) ([]*models.Task, error) {
	var tasks []*models.Task
	switch filter {
	case "", "all":
		tasks = repo.All()
	case "pending":
		tasks = repo.Pending()
	case "in_progress", "inProgress":
		tasks = repo.InProgress()
	case "completed":
		tasks = repo.Completed()
	case "overdue":
		tasks = repo.Overdue()
	case "today":
		tasks = repo.DueToday()
	default:
		return nil, fmt.Errorf("unknown filter %q", filter)
	}

	switch sortBy {
	case "":
	case "priority":
		repository.SortByPriorityAndDate(tasks)
	default:
		return nil, fmt.Errorf("unknown sort %q", sortBy)
	}
	return tasks, nil
}

func newMessagesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Caregiver inbox",
	}

	var unreadOnly bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List messages, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := service.FromContext(cmd.Context())

			rows := [][]string{}
			for _, m := range app.Messages.Recent() {
				if unreadOnly && !m.Unread {
					continue
				}
				mark := ""
				if m.Unread {
					mark = "*"
				}
				rows = append(rows, []string{mark, m.SentAt.Format("Jan 2 15:04"), m.Sender, m.Subject})
			}
			renderTitle(cmd.OutOrStdout(), "Messages: %d unread", app.Messages.UnreadCount())
			renderTable(cmd.OutOrStdout(), []string{"", "Sent", "From", "Subject"}, rows)
			return nil
		},
	}
	list.Flags().BoolVar(&unreadOnly, "unread", false, "Only unread messages")

	cmd.AddCommand(list)
	return cmd
}

func newLoginCmd() *cobra.Command {
	var email, password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check caregiver credentials",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := service.FromContext(cmd.Context())

			if err := app.Auth.Validate(email, password); err != nil {
				app.Logger.Info("Login rejected", zap.String("email", email), zap.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s\n", email)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	return cmd
}

package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/canteiro/internal/cli/formatter"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/alexanderramin/canteiro/internal/service"
	"github.com/spf13/cobra"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"t"},
		Short:   "Manage budgeted tasks of a stage",
	}

	cmd.AddCommand(
		newTaskAddCmd(app),
		newTaskListCmd(app),
		newTaskUpdateCmd(app),
		newTaskDoneCmd(app),
		newTaskRemoveCmd(app),
	)

	return cmd
}

func newTaskAddCmd(app *App) *cobra.Command {
	var (
		name   string
		cost   float64
		status string
	)

	cmd := &cobra.Command{
		Use:   "add STAGE",
		Short: "Add a task to a stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := service.CreateTaskInput{
				StageID:      args[0],
				Name:         name,
				BudgetedCost: cost,
			}
			if cmd.Flags().Changed("status") {
				st, err := domain.ParseTaskStatus(status)
				if err != nil {
					return err
				}
				in.Status = &st
			}

			t, err := app.Tasks.Create(context.Background(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created task %s %s %s\n",
				formatter.Bold(t.Name), formatter.Money(app.Locale, t.BudgetedCost), formatter.Dim(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Task name")
	cmd.Flags().Float64Var(&cost, "cost", 0, "Budgeted cost")
	cmd.Flags().StringVar(&status, "status", "", "Initial status: not-started, in-progress, completed")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list STAGE",
		Short: "List tasks of a stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := app.Tasks.ListByStage(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No tasks found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaskList(tasks, app.Locale))
			return nil
		},
	}
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var (
		name   string
		cost   float64
		status string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a task's name, budgeted cost or status",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch domain.TaskPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("cost") {
				patch.BudgetedCost = &cost
			}
			if cmd.Flags().Changed("status") {
				st, err := domain.ParseTaskStatus(status)
				if err != nil {
					return err
				}
				patch.Status = &st
			}
			if patch.Name == nil && patch.BudgetedCost == nil && patch.Status == nil {
				return fmt.Errorf("nothing to update: pass --name, --cost or --status")
			}

			t, err := app.Tasks.Update(context.Background(), args[0], patch)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s %s %s\n",
				formatter.Bold(t.Name), formatter.Money(app.Locale, t.BudgetedCost), formatter.StatusPill(t.Status))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New name")
	cmd.Flags().Float64Var(&cost, "cost", 0, "New budgeted cost")
	cmd.Flags().StringVar(&status, "status", "", "New status: not-started, in-progress, completed")

	return cmd
}

func newTaskDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done ID",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := domain.TaskCompleted
			t, err := app.Tasks.Update(context.Background(), args[0], domain.TaskPatch{Status: &st})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Completed task %s\n", formatter.Bold(t.Name))
			return nil
		},
	}
}

func newTaskRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			t, err := app.Tasks.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Tasks.Remove(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s\n", formatter.Bold(t.Name))
			return nil
		},
	}
}

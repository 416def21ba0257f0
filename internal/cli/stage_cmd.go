package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/canteiro/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newStageCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "stage",
		Aliases: []string{"s"},
		Short:   "Manage stages of a phase",
	}

	cmd.AddCommand(
		newStageAddCmd(app),
		newStageListCmd(app),
		newStageRenameCmd(app),
		newStageRemoveCmd(app),
		newStageRecalcCmd(app),
	)

	return cmd
}

func newStageAddCmd(app *App) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "add PHASE",
		Short: "Add a stage to a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Stages.Create(context.Background(), args[0], name)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created stage %s %s\n", formatter.Bold(s.Name), formatter.Dim(s.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Stage name")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newStageListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list PHASE",
		Short: "List stages of a phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stages, err := app.Stages.ListByPhase(context.Background(), args[0])
			if err != nil {
				return err
			}
			if len(stages) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stages found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStageList(stages, app.Locale))
			return nil
		},
	}
}

func newStageRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Stages.Rename(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed stage to %s\n", formatter.Bold(s.Name))
			return nil
		},
	}
}

func newStageRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a stage with its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			s, err := app.Stages.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Stages.Delete(ctx, s.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted stage %s\n", formatter.Bold(s.Name))
			return nil
		},
	}
}

func newStageRecalcCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc ID",
		Short: "Recompute progress for a stage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Progress.RecalculateStage(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Bold(s.Name), formatter.RenderProgress(s.Progress, 20))
			return nil
		},
	}
}

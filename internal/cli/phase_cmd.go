package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/canteiro/internal/cli/formatter"
	"github.com/alexanderramin/canteiro/internal/service"
	"github.com/spf13/cobra"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "phase",
		Aliases: []string{"p"},
		Short:   "Manage phases of a construction",
	}

	cmd.AddCommand(
		newPhaseNewCmd(app),
		newPhaseListCmd(app),
		newPhaseRenameCmd(app),
		newPhaseRemoveCmd(app),
		newPhaseRecalcCmd(app),
	)

	return cmd
}

func newPhaseNewCmd(app *App) *cobra.Command {
	var (
		name       string
		templateID string
		blank      bool
	)

	cmd := &cobra.Command{
		Use:   "new CONSTRUCTION",
		Short: "Create a phase, copying the template's stages and tasks by default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			constructionID, err := resolveConstructionID(ctx, app, args[0])
			if err != nil {
				return err
			}

			if blank {
				if name == "" {
					return fmt.Errorf("--name is required with --blank")
				}
				p, err := app.Phases.Create(ctx, constructionID, name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Created phase %s %s\n", formatter.Bold(p.Name), formatter.Dim(p.ID))
				return nil
			}

			res, err := app.Phases.CreateFromTemplate(ctx, constructionID, service.TemplateCopyOptions{
				Name:       name,
				TemplateID: templateID,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCopyResult(res.Phase, res.StageCount, res.TaskCount))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Phase name (default \"New Phase\")")
	cmd.Flags().StringVar(&templateID, "template", "", "Template construction ID (default from config)")
	cmd.Flags().BoolVar(&blank, "blank", false, "Create an empty phase instead of copying the template")
	cmd.MarkFlagsMutuallyExclusive("blank", "template")

	return cmd
}

func newPhaseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list CONSTRUCTION",
		Short: "List phases of a construction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			constructionID, err := resolveConstructionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			phases, err := app.Phases.ListByConstruction(ctx, constructionID)
			if err != nil {
				return err
			}
			if len(phases) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No phases found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPhaseList(phases, app.Locale))
			return nil
		},
	}
}

func newPhaseRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename ID NAME",
		Short: "Rename a phase",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Phases.Rename(context.Background(), args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed phase to %s\n", formatter.Bold(p.Name))
			return nil
		},
	}
}

func newPhaseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a phase with its stages and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Phases.GetByID(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Phases.Delete(ctx, p.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted phase %s\n", formatter.Bold(p.Name))
			return nil
		},
	}
}

func newPhaseRecalcCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc ID",
		Short: "Recompute progress for a phase and its stages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := app.Progress.RecalculatePhase(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Bold(p.Name), formatter.RenderProgress(p.Progress, 20))
			return nil
		},
	}
}

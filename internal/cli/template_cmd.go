package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/canteiro/internal/cli/formatter"
	"github.com/alexanderramin/canteiro/internal/plan"
	"github.com/spf13/cobra"
)

func newTemplateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage the template construction new phases are copied from",
	}

	cmd.AddCommand(
		newTemplateSeedCmd(app),
		newTemplateShowCmd(app),
		newTemplateExportCmd(app),
	)

	return cmd
}

func newTemplateSeedCmd(app *App) *cobra.Command {
	var (
		file    string
		replace bool
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the template construction from a plan file or the built-in plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := plan.Default()
			if file != "" {
				loaded, err := plan.Load(file)
				if err != nil {
					return err
				}
				p = loaded
			}

			tree, err := app.Templates.Seed(context.Background(), p, replace)
			if err != nil {
				return err
			}
			phases, stages, tasks := tree.Counts()
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded template %s: %d phases, %d stages, %d tasks, budget %s\n",
				formatter.Bold(tree.Construction.Name), phases, stages, tasks, formatter.Money(app.Locale, tree.Cost()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Plan file (.yaml, .yml or .json)")
	cmd.Flags().BoolVar(&replace, "replace", false, "Replace an existing template")

	return cmd
}

func newTemplateShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the template hierarchy",
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := app.Templates.Tree(context.Background())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatConstructionShow(tree, app.Locale))
			return nil
		},
	}
}

func newTemplateExportCmd(app *App) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the template as a plan file to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := plan.ParseFormat(format)
			if err != nil {
				return err
			}
			tree, err := app.Templates.Tree(context.Background())
			if err != nil {
				return err
			}
			return plan.Encode(cmd.OutOrStdout(), plan.FromTree(tree), f)
		},
	}

	cmd.Flags().StringVar(&format, "format", "yaml", "Output format: yaml or json")

	return cmd
}

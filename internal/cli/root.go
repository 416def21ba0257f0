package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "canteiro" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "canteiro",
		Short:         "Construction progress tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newConstructionCmd(app),
		newPhaseCmd(app),
		newStageCmd(app),
		newTaskCmd(app),
		newTemplateCmd(app),
	)

	return root
}

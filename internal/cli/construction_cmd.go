package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/canteiro/internal/cli/formatter"
	"github.com/alexanderramin/canteiro/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newConstructionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "construction",
		Aliases: []string{"c"},
		Short:   "Manage constructions",
	}

	cmd.AddCommand(
		newConstructionAddCmd(app),
		newConstructionListCmd(app),
		newConstructionShowCmd(app),
		newConstructionUpdateCmd(app),
		newConstructionRemoveCmd(app),
		newConstructionRecalcCmd(app),
	)

	return cmd
}

type constructionFlags struct {
	name, address, cep, city, district, owner string
}

func (f *constructionFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Construction name")
	fs.StringVar(&f.address, "address", "", "Street address")
	fs.StringVar(&f.cep, "cep", "", "Postal code")
	fs.StringVar(&f.city, "city", "", "City")
	fs.StringVar(&f.district, "district", "", "District")
	fs.StringVar(&f.owner, "owner", "", "Owner ID")
}

// apply copies every flag the user set onto c.
func (f *constructionFlags) apply(fs *pflag.FlagSet, c *domain.Construction) {
	set := map[string]*string{
		"name":     &c.Name,
		"address":  &c.Address,
		"cep":      &c.PostalCode,
		"city":     &c.City,
		"district": &c.District,
		"owner":    &c.OwnerID,
	}
	values := map[string]string{
		"name":     f.name,
		"address":  f.address,
		"cep":      f.cep,
		"city":     f.city,
		"district": f.district,
		"owner":    f.owner,
	}
	for flag, dst := range set {
		if fs.Changed(flag) {
			*dst = values[flag]
		}
	}
}

func newConstructionAddCmd(app *App) *cobra.Command {
	var flags constructionFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a construction",
		RunE: func(cmd *cobra.Command, args []string) error {
			c := &domain.Construction{}
			flags.apply(cmd.Flags(), c)
			if err := app.Constructions.Create(context.Background(), c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created construction %s %s\n", formatter.Bold(c.Name), c.ID)
			return nil
		},
	}

	flags.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newConstructionListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List constructions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cs, err := app.Constructions.List(context.Background())
			if err != nil {
				return err
			}
			if len(cs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No constructions found.")
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatConstructionList(cs, app.Templates.TemplateID(), app.Locale))
			return nil
		},
	}
}

func newConstructionShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a construction with its phases, stages and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveConstructionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			tree, err := app.Constructions.Tree(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatConstructionShow(tree, app.Locale))
			return nil
		},
	}
}

func newConstructionUpdateCmd(app *App) *cobra.Command {
	var flags constructionFlags

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update construction details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveConstructionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Constructions.GetByID(ctx, id)
			if err != nil {
				return err
			}
			flags.apply(cmd.Flags(), c)
			if err := app.Constructions.Update(ctx, c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated construction %s\n", formatter.Bold(c.Name))
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newConstructionRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Delete a construction and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveConstructionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Constructions.GetByID(ctx, id)
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete %q without --yes", c.Name)
				}
				ok, err := app.confirm(fmt.Sprintf("Delete %q with all its phases, stages and tasks?", c.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Constructions.Delete(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted construction %s\n", formatter.Bold(c.Name))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func newConstructionRecalcCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc ID",
		Short: "Recompute progress for every stage, phase and the construction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id, err := resolveConstructionID(ctx, app, args[0])
			if err != nil {
				return err
			}
			c, err := app.Progress.RecalculateConstruction(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", formatter.Bold(c.Name), formatter.RenderProgress(c.Progress, 20))
			return nil
		},
	}
}

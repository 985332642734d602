package command

import (
	"fmt"

	"github.com/simplecontainer/deployer/pkg/startup"
	"github.com/spf13/cobra"
)

func New() *cobra.Command {
	root := &cobra.Command{
		Use:           "deployer",
		Short:         "Rolling Docker deployments across hosts",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	startup.SetFlags(root.PersistentFlags())
	return root
}

// Cobra turns the command into a cobra command bound to app. Dependencies
// run in order before the command, the first error stops the run.
func (command Command) Cobra(app *App) *cobra.Command {
	short := command.Short
	if short == "" {
		short = fmt.Sprintf("%s %s", command.Parent, command.Name)
	}

	cobraCmd := &cobra.Command{
		Use:   command.Name,
		Short: short,
		Args:  command.Args,
		PreRunE: func(c *cobra.Command, args []string) error {
			if !command.Condition(app) {
				return fmt.Errorf("condition failed for command %s", c.Use)
			}

			for _, dep := range command.DependsOn {
				if err := dep(c.Context(), app, args); err != nil {
					return err
				}
			}

			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			return command.Command(c.Context(), app, args)
		},
	}

	command.Flags(cobraCmd)
	return cobraCmd
}

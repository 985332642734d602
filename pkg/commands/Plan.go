package commands

import (
	"context"
	"fmt"

	"github.com/simplecontainer/deployer/pkg/command"
	"github.com/simplecontainer/deployer/pkg/dryrun"
	"github.com/simplecontainer/deployer/pkg/formaters"
	"github.com/simplecontainer/deployer/pkg/plan"
	"github.com/spf13/cobra"
)

var planJSON bool

func DryRun() {
	Commands = append(Commands,
		command.NewBuilder().Parent(PARENT).Name("dry-run").Short("Print the docker commands a deploy would run").
			DependsOn(loadEnvironment).Function(cmdDryRun).BuildWithValidation(),
	)
}

func Plan() {
	Commands = append(Commands,
		command.NewBuilder().Parent(PARENT).Name("plan").Short("Show what a deploy would change on every host").
			DependsOn(loadEnvironment).Function(cmdPlan).Flags(cmdPlanFlags).BuildWithValidation(),
	)
}

func cmdDryRun(ctx context.Context, app *command.App, args []string) error {
	svc, g, err := app.Targets()
	if err != nil {
		return err
	}

	fmt.Fprintln(app.Out, dryrun.Render(g, svc))
	return nil
}

func cmdPlan(ctx context.Context, app *command.App, args []string) error {
	svc, g, err := app.Targets()
	if err != nil {
		return err
	}

	p, err := plan.Build(ctx, g, svc)
	if err != nil {
		return err
	}

	if planJSON {
		bytes, err := p.ToJSON()
		if err != nil {
			return err
		}

		fmt.Fprintln(app.Out, string(bytes))
		return nil
	}

	formaters.Plan(app.Out, p)
	return nil
}

func cmdPlanFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&planJSON, "json", false, "Print the plan as JSON")
}

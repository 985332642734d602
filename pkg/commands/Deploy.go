package commands

import (
	"context"
	"fmt"

	"github.com/simplecontainer/deployer/pkg/command"
	"github.com/simplecontainer/deployer/pkg/deploy"
	"github.com/simplecontainer/deployer/pkg/group"
	"github.com/simplecontainer/deployer/pkg/service"
)

type operation func(o *deploy.Orchestrator, ctx context.Context, g *group.Group, svc *service.Service) error

func Deploy() {
	Commands = append(Commands,
		command.NewBuilder().Parent(PARENT).Name("deploy").Short("Rolling deploy of the service to every host").
			DependsOn(loadEnvironment).Function(orchestrate("deploy %s to %d hosts", (*deploy.Orchestrator).Deploy)).BuildWithValidation(),
		command.NewBuilder().Parent(PARENT).Name("deploy:canary").Short("Deploy the service to the canary host").
			DependsOn(loadEnvironment).Function(orchestrate("deploy canary %s among %d hosts", (*deploy.Orchestrator).Canary)).BuildWithValidation(),
		command.NewBuilder().Parent(PARENT).Name("deploy:promote").Short("Deploy the canary tag to the remaining hosts").
			DependsOn(loadEnvironment).Function(orchestrate("promote canary of %s to %d hosts", (*deploy.Orchestrator).Promote)).BuildWithValidation(),
		command.NewBuilder().Parent(PARENT).Name("deploy:abort-canary").Short("Redeploy the production tag to the canary host").
			DependsOn(loadEnvironment).Function(orchestrate("abort canary of %s among %d hosts", (*deploy.Orchestrator).AbortCanary)).BuildWithValidation(),
	)
}

func Stop() {
	Commands = append(Commands,
		command.NewBuilder().Parent(PARENT).Name("stop").Short("Stop the service on every host").
			DependsOn(loadEnvironment).Function(orchestrate("stop %s on %d hosts", (*deploy.Orchestrator).StopAll)).BuildWithValidation(),
	)
}

// orchestrate confirms with the operator, runs fn and pushes metrics
// whatever the outcome.
func orchestrate(question string, fn operation) command.Function {
	return func(ctx context.Context, app *command.App, args []string) error {
		svc, g, err := app.Targets()
		if err != nil {
			return err
		}

		if err = confirm(app, fmt.Sprintf(question, svc.ImageRef(), g.Len())); err != nil {
			return err
		}

		o, err := app.Orchestrator(svc)
		if err != nil {
			return err
		}

		err = fn(o, ctx, g, svc)
		push(ctx, app)

		if err != nil {
			return err
		}

		done(app, "%s finished", svc.Name)
		return nil
	}
}

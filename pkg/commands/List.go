package commands

import (
	"context"
	"strings"
	"time"

	"github.com/simplecontainer/deployer/pkg/command"
	"github.com/simplecontainer/deployer/pkg/formaters"
	"github.com/simplecontainer/deployer/pkg/host"
	"go.uber.org/zap"
)

func List() {
	Commands = append(Commands,
		command.NewBuilder().Parent(PARENT).Name("list:running").Short("List running containers of the service").
			DependsOn(loadEnvironment).Function(cmdListRunning).BuildWithValidation(),
		command.NewBuilder().Parent(PARENT).Name("list:tags").Short("List the tag deployed on every host").
			DependsOn(loadEnvironment).Function(cmdListTags).BuildWithValidation(),
		command.NewBuilder().Parent(PARENT).Name("list:registry-tags").Short("List the tags of the image in its registry").
			DependsOn(loadEnvironment).Function(cmdListRegistryTags).BuildWithValidation(),
	)
}

func cmdListRunning(ctx context.Context, app *command.App, args []string) error {
	svc, g, err := app.Targets()
	if err != nil {
		return err
	}

	rows := []formaters.HostContainer{}

	err = g.Each(ctx, func(ctx context.Context, h *host.Host) error {
		containers, err := h.Ps(ctx, false)
		if err != nil {
			return err
		}

		for _, container := range containers {
			if strings.Contains(container.Image, svc.Image) {
				rows = append(rows, formaters.HostContainer{Host: h.Hostname, Container: container})
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	formaters.Containers(app.Out, rows, time.Now())
	return nil
}

func cmdListTags(ctx context.Context, app *command.App, args []string) error {
	svc, g, err := app.Targets()
	if err != nil {
		return err
	}

	assignments, err := g.CurrentTags(ctx, svc.Image)
	if err != nil {
		return err
	}

	canary, err := g.FindExistingCanary(ctx, svc.Image)
	if err != nil {
		app.Logger.Debug("no canary to mark", zap.Error(err))
		canary = nil
	}

	formaters.Tags(app.Out, assignments, canary)
	return nil
}

func cmdListRegistryTags(ctx context.Context, app *command.App, args []string) error {
	svc, err := app.Environment.Service()
	if err != nil {
		return err
	}

	tags, err := app.Environment.Registry().RepositoryTags(ctx, svc.Image)
	if err != nil {
		return err
	}

	formaters.RegistryTags(app.Out, tags)
	return nil
}

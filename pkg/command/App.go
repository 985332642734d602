package command

import (
	"github.com/simplecontainer/deployer/pkg/deploy"
	"github.com/simplecontainer/deployer/pkg/engine/docker"
	"github.com/simplecontainer/deployer/pkg/group"
	"github.com/simplecontainer/deployer/pkg/service"
)

// Targets builds the service and host group of the resolved environment.
func (app *App) Targets() (*service.Service, *group.Group, error) {
	svc, err := app.Environment.Service()
	if err != nil {
		return nil, nil, err
	}

	factory := app.Factory
	if factory == nil {
		factory = docker.Factory(app.Logger)
	}

	g, err := app.Environment.GroupWith(factory, app.Logger)
	if err != nil {
		return nil, nil, err
	}

	return svc, g, nil
}

func (app *App) Orchestrator(svc *service.Service) (*deploy.Orchestrator, error) {
	options, err := app.Environment.Options(app.Logger)
	if err != nil {
		return nil, err
	}

	registry, err := app.Environment.Callbacks(svc, app.Logger)
	if err != nil {
		return nil, err
	}

	return deploy.New(options, registry, app.Logger), nil
}

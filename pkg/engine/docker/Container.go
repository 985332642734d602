package docker

import (
	"context"
	"time"

	TDContainer "github.com/docker/docker/api/types/container"
	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/engine"
	"go.uber.org/zap"
	"k8s.io/utils/ptr"
)

func (docker *Docker) ListContainers(ctx context.Context, all bool) ([]engine.Container, error) {
	containers, err := docker.cli.ContainerList(ctx, TDContainer.ListOptions{
		All: all,
	})

	if err != nil {
		return nil, errors.Wrap(err, "listing containers")
	}

	records := make([]engine.Container, 0, len(containers))

	for _, c := range containers {
		ports := make([]engine.Port, 0, len(c.Ports))

		for _, p := range c.Ports {
			ports = append(ports, engine.Port{
				IP:          p.IP,
				PrivatePort: p.PrivatePort,
				PublicPort:  p.PublicPort,
				Type:        p.Type,
			})
		}

		records = append(records, engine.Container{
			ID:      c.ID,
			Names:   c.Names,
			Image:   c.Image,
			Ports:   ports,
			Labels:  c.Labels,
			Status:  c.Status,
			State:   c.State,
			Created: c.Created,
		})
	}

	return records, nil
}

func (docker *Docker) CreateContainer(ctx context.Context, name string, config *TDContainer.Config, hostConfig *TDContainer.HostConfig) (string, error) {
	resp, err := docker.cli.ContainerCreate(ctx, config, hostConfig, nil, nil, name)

	if err != nil {
		return "", errors.Wrapf(err, "creating container %s", name)
	}

	for _, warning := range resp.Warnings {
		docker.logger.Warn("engine warning on create", zap.String("container", name), zap.String("warning", warning))
	}

	return resp.ID, nil
}

func (docker *Docker) StartContainer(ctx context.Context, id string) error {
	if err := docker.cli.ContainerStart(ctx, id, TDContainer.StartOptions{}); err != nil {
		return errors.Wrapf(err, "failed to start container %s", id)
	}

	return nil
}

func (docker *Docker) StopContainer(ctx context.Context, id string, timeout time.Duration) error {
	err := docker.cli.ContainerStop(ctx, id, TDContainer.StopOptions{
		Timeout: ptr.To(int(timeout.Seconds())),
	})

	if err != nil {
		return errors.Wrapf(err, "stopping container %s", id)
	}

	return nil
}

func (docker *Docker) RestartContainer(ctx context.Context, id string, timeout time.Duration) error {
	err := docker.cli.ContainerRestart(ctx, id, TDContainer.StopOptions{
		Timeout: ptr.To(int(timeout.Seconds())),
	})

	if err != nil {
		return errors.Wrapf(err, "restarting container %s", id)
	}

	return nil
}

func (docker *Docker) RemoveContainer(ctx context.Context, id string) error {
	if err := docker.cli.ContainerRemove(ctx, id, TDContainer.RemoveOptions{}); err != nil {
		return errors.Wrapf(err, "removing container %s", id)
	}

	return nil
}

func (docker *Docker) InspectContainer(ctx context.Context, id string) (engine.ContainerDetails, error) {
	data, err := docker.cli.ContainerInspect(ctx, id)

	if err != nil {
		return engine.ContainerDetails{}, errors.Wrapf(err, "inspecting container %s", id)
	}

	details := engine.ContainerDetails{
		PortBindings: map[string][]string{},
	}

	if data.ContainerJSONBase != nil {
		details.ID = data.ID
		details.Name = data.Name
		details.Image = data.Image

		if created, err := time.Parse(time.RFC3339Nano, data.Created); err == nil {
			details.Created = created
		}

		if data.State != nil {
			details.Running = data.State.Running
			details.Status = data.State.Status
		}

		if data.HostConfig != nil {
			details.Binds = data.HostConfig.Binds
			details.NetworkMode = string(data.HostConfig.NetworkMode)

			for port, bindings := range data.HostConfig.PortBindings {
				for _, binding := range bindings {
					details.PortBindings[string(port)] = append(details.PortBindings[string(port)], binding.HostPort)
				}
			}
		}
	}

	if data.Config != nil {
		details.Image = data.Config.Image
		details.Env = data.Config.Env
		details.Labels = data.Config.Labels
	}

	return details, nil
}

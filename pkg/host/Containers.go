package host

import (
	"context"
	"strconv"
	"strings"
	"time"

	TDContainer "github.com/docker/docker/api/types/container"
	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/engine"
)

// Ps lists running containers, or every container when all is set.
func (h *Host) Ps(ctx context.Context, all bool) ([]engine.Container, error) {
	client, err := h.Client()
	if err != nil {
		return nil, err
	}

	containers, err := client.ListContainers(ctx, all)
	if err != nil {
		return nil, errors.Wrapf(err, "listing containers on %s", h.Hostname)
	}

	return containers, nil
}

func (h *Host) FindContainersByPublicPort(ctx context.Context, port uint16, protocol string) ([]engine.Container, error) {
	return h.filter(ctx, false, func(c engine.Container) bool {
		return c.PublishesPort(port, protocol)
	})
}

func (h *Host) FindContainersByName(ctx context.Context, name string) ([]engine.Container, error) {
	return h.filter(ctx, false, func(c engine.Container) bool {
		for _, n := range c.Names {
			if strings.Contains(n, name) {
				return true
			}
		}

		return false
	})
}

func (h *Host) FindContainersByLabel(ctx context.Context, key string, value string, all bool) ([]engine.Container, error) {
	return h.filter(ctx, all, func(c engine.Container) bool {
		v, ok := c.Labels[key]
		return ok && v == value
	})
}

// CurrentTagsFor lists the tag of every running container whose image
// contains image, one entry per container.
func (h *Host) CurrentTagsFor(ctx context.Context, image string) ([]string, error) {
	running, err := h.filter(ctx, false, func(c engine.Container) bool {
		return strings.Contains(c.Image, image)
	})
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(running))

	for _, c := range running {
		tags = append(tags, c.Tag())
	}

	return tags, nil
}

// OldContainersForPort lists exited containers whose host config binds
// hostPort. Exited containers carry no ports in the process list so each
// candidate is inspected.
func (h *Host) OldContainersForPort(ctx context.Context, hostPort uint16) ([]engine.Container, error) {
	exited, err := h.filter(ctx, true, engine.Container.Exited)
	if err != nil {
		return nil, err
	}

	client, err := h.Client()
	if err != nil {
		return nil, err
	}

	port := strconv.Itoa(int(hostPort))
	old := []engine.Container{}

	for _, c := range exited {
		details, err := client.InspectContainer(ctx, c.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "inspecting %s on %s", c.ShortID(), h.Hostname)
		}

		if details.ListensOn(port) {
			old = append(old, c)
		}
	}

	return old, nil
}

func (h *Host) CreateContainer(ctx context.Context, name string, config *TDContainer.Config, hostConfig *TDContainer.HostConfig) (string, error) {
	client, err := h.Client()
	if err != nil {
		return "", err
	}

	return client.CreateContainer(ctx, name, config, hostConfig)
}

func (h *Host) StartContainer(ctx context.Context, id string) error {
	client, err := h.Client()
	if err != nil {
		return err
	}

	return client.StartContainer(ctx, id)
}

func (h *Host) StopContainer(ctx context.Context, id string, timeout time.Duration) error {
	client, err := h.Client()
	if err != nil {
		return err
	}

	return client.StopContainer(ctx, id, timeout)
}

func (h *Host) RestartContainer(ctx context.Context, id string, timeout time.Duration) error {
	client, err := h.Client()
	if err != nil {
		return err
	}

	return client.RestartContainer(ctx, id, timeout)
}

func (h *Host) RemoveContainer(ctx context.Context, id string) error {
	client, err := h.Client()
	if err != nil {
		return err
	}

	return client.RemoveContainer(ctx, id)
}

func (h *Host) InspectContainer(ctx context.Context, id string) (engine.ContainerDetails, error) {
	client, err := h.Client()
	if err != nil {
		return engine.ContainerDetails{}, err
	}

	return client.InspectContainer(ctx, id)
}

func (h *Host) InspectImage(ctx context.Context, ref string) (engine.ImageDetails, error) {
	client, err := h.Client()
	if err != nil {
		return engine.ImageDetails{}, err
	}

	return client.InspectImage(ctx, ref)
}

func (h *Host) PullImage(ctx context.Context, ref string) error {
	client, err := h.Client()
	if err != nil {
		return err
	}

	return client.PullImage(ctx, ref)
}

func (h *Host) filter(ctx context.Context, all bool, keep func(engine.Container) bool) ([]engine.Container, error) {
	containers, err := h.Ps(ctx, all)
	if err != nil {
		return nil, err
	}

	matched := []engine.Container{}

	for _, c := range containers {
		if keep(c) {
			matched = append(matched, c)
		}
	}

	return matched, nil
}

package deploy

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	TDContainer "github.com/docker/docker/api/types/container"
	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/engine"
)

// fakeEngine keeps container state in memory the way the engine reports it:
// only running containers list their published ports.
type fakeEngine struct {
	lock       sync.Mutex
	containers []*fakeContainer
	clock      int64
	sequence   int
	removed    []string
	pulled     []string
}

type fakeContainer struct {
	engine.Container
	bindings map[string][]string
}

func (f *fakeEngine) seed(image string, hostPort uint16) string {
	id, _ := f.CreateContainer(context.Background(), "seed", &TDContainer.Config{Image: image}, &TDContainer.HostConfig{})

	f.lock.Lock()
	defer f.lock.Unlock()

	c := f.find(id)
	c.bindings = map[string][]string{"80/tcp": {strconv.Itoa(int(hostPort))}}
	c.State = "running"
	c.Status = "Up 3 days"

	return id
}

func (f *fakeEngine) find(id string) *fakeContainer {
	for _, c := range f.containers {
		if c.ID == id {
			return c
		}
	}

	return nil
}

func (f *fakeEngine) images(state string) []string {
	f.lock.Lock()
	defer f.lock.Unlock()

	var images []string
	for _, c := range f.containers {
		if c.State == state {
			images = append(images, c.Image)
		}
	}

	return images
}

func (f *fakeEngine) ListContainers(ctx context.Context, all bool) ([]engine.Container, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	var list []engine.Container

	for _, c := range f.containers {
		if !all && c.State != "running" {
			continue
		}

		record := c.Container
		record.Ports = nil

		if c.State == "running" {
			for port, hostPorts := range c.bindings {
				private, protocol, _ := strings.Cut(port, "/")
				privatePort, _ := strconv.Atoi(private)

				for _, hostPort := range hostPorts {
					public, _ := strconv.Atoi(hostPort)
					record.Ports = append(record.Ports, engine.Port{
						PrivatePort: uint16(privatePort),
						PublicPort:  uint16(public),
						Type:        protocol,
					})
				}
			}
		}

		list = append(list, record)
	}

	return list, nil
}

func (f *fakeEngine) CreateContainer(ctx context.Context, name string, config *TDContainer.Config, hostConfig *TDContainer.HostConfig) (string, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.sequence++
	f.clock++

	id := fmt.Sprintf("%012d%s", f.sequence, strings.Repeat("f", 52))
	bindings := map[string][]string{}

	for port, hostBindings := range hostConfig.PortBindings {
		for _, binding := range hostBindings {
			bindings[string(port)] = append(bindings[string(port)], binding.HostPort)
		}
	}

	f.containers = append(f.containers, &fakeContainer{
		Container: engine.Container{
			ID:      id,
			Names:   []string{"/" + name},
			Image:   config.Image,
			Labels:  config.Labels,
			State:   "created",
			Status:  "Created",
			Created: f.clock,
		},
		bindings: bindings,
	})

	return id, nil
}

func (f *fakeEngine) setState(id string, state string, status string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	c := f.find(id)
	if c == nil {
		return errors.Errorf("no such container: %s", id)
	}

	c.State = state
	c.Status = status

	return nil
}

func (f *fakeEngine) StartContainer(ctx context.Context, id string) error {
	return f.setState(id, "running", "Up 1 second")
}

func (f *fakeEngine) StopContainer(ctx context.Context, id string, timeout time.Duration) error {
	return f.setState(id, "exited", "Exited (0) 1 second ago")
}

func (f *fakeEngine) RestartContainer(ctx context.Context, id string, timeout time.Duration) error {
	return f.setState(id, "running", "Up 1 second")
}

func (f *fakeEngine) RemoveContainer(ctx context.Context, id string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	for i, c := range f.containers {
		if c.ID == id {
			f.containers = append(f.containers[:i], f.containers[i+1:]...)
			f.removed = append(f.removed, id)
			return nil
		}
	}

	return errors.Errorf("no such container: %s", id)
}

func (f *fakeEngine) InspectContainer(ctx context.Context, id string) (engine.ContainerDetails, error) {
	f.lock.Lock()
	defer f.lock.Unlock()

	c := f.find(id)
	if c == nil {
		return engine.ContainerDetails{}, errors.Errorf("no such container: %s", id)
	}

	return engine.ContainerDetails{
		ID:           c.ID,
		Name:         c.Names[0],
		Image:        c.Image,
		Running:      c.State == "running",
		Status:       c.State,
		Labels:       c.Labels,
		PortBindings: c.bindings,
	}, nil
}

func (f *fakeEngine) InspectImage(ctx context.Context, ref string) (engine.ImageDetails, error) {
	return engine.ImageDetails{ID: "sha256:" + ref, RepoTags: []string{ref}}, nil
}

func (f *fakeEngine) PullImage(ctx context.Context, ref string) error {
	f.lock.Lock()
	defer f.lock.Unlock()

	f.pulled = append(f.pulled, ref)
	return nil
}

func (f *fakeEngine) Close() error {
	return nil
}

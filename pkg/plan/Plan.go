package plan

import (
	"context"
	"fmt"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/r3labs/diff/v3"
	"github.com/simplecontainer/deployer/pkg/engine"
	"github.com/simplecontainer/deployer/pkg/group"
	"github.com/simplecontainer/deployer/pkg/host"
	"github.com/simplecontainer/deployer/pkg/service"
	"github.com/simplecontainer/deployer/pkg/static"
)

// Build compares the running container of svc on every host with what a
// deployment would create.
func Build(ctx context.Context, g *group.Group, svc *service.Service) (*Plan, error) {
	p := &Plan{Service: svc.Name, Changes: []Change{}}

	err := g.Each(ctx, func(ctx context.Context, h *host.Host) error {
		changes, err := ForHost(ctx, h, svc)
		if err != nil {
			return err
		}

		p.Changes = append(p.Changes, changes...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

func ForHost(ctx context.Context, h *host.Host, svc *service.Service) ([]Change, error) {
	desired, err := Desired(ctx, h, svc)
	if err != nil {
		return nil, err
	}

	current, err := Current(ctx, h, svc)
	if err != nil {
		return nil, err
	}

	if current == nil {
		current = &Snapshot{}
	} else {
		current.Env = only(current.Env, desired.Env)
		current.Labels = only(current.Labels, desired.Labels)
	}

	changelog, err := diff.Diff(*current, desired)
	if err != nil {
		return nil, errors.Wrapf(err, "comparing configuration on %s", h.Hostname)
	}

	changes := make([]Change, 0, len(changelog))

	for _, change := range changelog {
		changes = append(changes, Change{
			Host: h.Hostname,
			Type: change.Type,
			Path: strings.Join(change.Path, "."),
			From: change.From,
			To:   change.To,
		})
	}

	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Path < changes[j].Path
	})

	return changes, nil
}

// Desired renders the snapshot a new container of svc would have on h.
func Desired(ctx context.Context, h *host.Host, svc *service.Service) (Snapshot, error) {
	config, err := svc.BuildConfig(ctx, h.Hostname)
	if err != nil {
		return Snapshot{}, err
	}

	ports := make([]string, 0, len(svc.Ports))
	for _, binding := range svc.Ports {
		ports = append(ports, fmt.Sprintf("%d->%d/%s", binding.HostPort, binding.ContainerPort, binding.Protocol))
	}

	sort.Strings(ports)

	return Snapshot{
		Image:       config.Image,
		Env:         envMap(config.Env),
		Labels:      config.Labels,
		Binds:       svc.Binds(),
		Ports:       ports,
		NetworkMode: svc.NetworkMode,
	}, nil
}

// Current inspects the running container of svc on h. It returns nil when
// nothing runs.
func Current(ctx context.Context, h *host.Host, svc *service.Service) (*Snapshot, error) {
	var running []engine.Container
	var err error

	if primary, portErr := svc.PublicPort(); portErr == nil {
		running, err = h.FindContainersByPublicPort(ctx, primary.HostPort, "tcp")
	} else {
		running, err = h.FindContainersByLabel(ctx, static.LABEL_SERVICE, svc.Name, false)
	}

	if err != nil {
		return nil, err
	}

	if len(running) == 0 {
		return nil, nil
	}

	details, err := h.InspectContainer(ctx, running[0].ID)
	if err != nil {
		return nil, errors.Wrapf(err, "inspecting %s on %s", running[0].ShortID(), h.Hostname)
	}

	ports := []string{}
	for containerPort, hostPorts := range details.PortBindings {
		for _, hostPort := range hostPorts {
			ports = append(ports, fmt.Sprintf("%s->%s", hostPort, containerPort))
		}
	}

	sort.Strings(ports)

	binds := append([]string{}, details.Binds...)

	networkMode := details.NetworkMode
	if networkMode == "default" {
		networkMode = ""
	}

	return &Snapshot{
		Image:       details.Image,
		Env:         envMap(details.Env),
		Labels:      details.Labels,
		Binds:       binds,
		Ports:       ports,
		NetworkMode: networkMode,
	}, nil
}

func (p *Plan) Empty() bool {
	return len(p.Changes) == 0
}

func (p *Plan) ToJSON() ([]byte, error) {
	var json = jsoniter.ConfigCompatibleWithStandardLibrary
	return json.MarshalIndent(p, "", "  ")
}

// only drops entries the image itself contributes, keeping keys declared by
// the service.
func only(current map[string]string, declared map[string]string) map[string]string {
	kept := map[string]string{}

	for key, value := range current {
		if _, ok := declared[key]; ok {
			kept[key] = value
		}
	}

	return kept
}

func envMap(env []string) map[string]string {
	vars := make(map[string]string, len(env))

	for _, entry := range env {
		key, value, _ := strings.Cut(entry, "=")
		vars[key] = value
	}

	return vars
}

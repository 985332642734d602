package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	TDContainer "github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"
	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/static"
)

// NewRestartPolicy normalises unknown policy names to on-failure. The retry
// count only applies to on-failure; an unset or negative count becomes
// DEFAULT_MAX_RETRY_COUNT, an explicit 0 is kept.
func NewRestartPolicy(name string, maxRetryCount *int) RestartPolicy {
	switch name {
	case "always", "on-failure", "no":
	default:
		name = "on-failure"
	}

	if name != "on-failure" {
		return RestartPolicy{Name: name}
	}

	count := static.DEFAULT_MAX_RETRY_COUNT
	if maxRetryCount != nil && *maxRetryCount >= 0 {
		count = *maxRetryCount
	}

	return RestartPolicy{Name: name, MaxRetryCount: &count}
}

func (r RestartPolicy) ToDocker() TDContainer.RestartPolicy {
	policy := TDContainer.RestartPolicy{Name: TDContainer.RestartPolicyMode(r.Name)}

	if r.MaxRetryCount != nil {
		policy.MaximumRetryCount = *r.MaxRetryCount
	}

	return policy
}

// BuildConfig renders the container configuration for one target host.
func (s *Service) BuildConfig(ctx context.Context, hostname string) (*TDContainer.Config, error) {
	config := &TDContainer.Config{
		Image:    s.ImageRef(),
		Hostname: hostname,
		Labels:   copyMap(s.Labels),
	}

	if s.Hostname != "" {
		config.Hostname = s.Hostname
	}

	config.Labels[static.LABEL_SERVICE] = s.Name

	if len(s.Command) > 0 {
		config.Cmd = append([]string(nil), s.Command...)
	}

	if len(s.Ports) > 0 {
		config.ExposedPorts = nat.PortSet{}

		for _, binding := range s.Ports {
			port, err := binding.Port()
			if err != nil {
				return nil, err
			}

			config.ExposedPorts[port] = struct{}{}
		}
	}

	if len(s.Env) > 0 {
		keys := make([]string, 0, len(s.Env))
		for key := range s.Env {
			keys = append(keys, key)
		}

		sort.Strings(keys)

		for _, key := range keys {
			value, err := s.interpolate(ctx, s.Env[key], hostname)
			if err != nil {
				return nil, err
			}

			config.Env = append(config.Env, fmt.Sprintf("%s=%s", key, value))
		}
	}

	if len(s.Volumes) > 0 {
		config.Volumes = map[string]struct{}{}

		for _, volume := range s.Volumes {
			config.Volumes[volume.ContainerVolume] = struct{}{}
		}
	}

	return config, nil
}

// BuildHostConfig renders binds, port bindings, resources and the restart
// policy. A nil policy leaves the engine default in place.
func (s *Service) BuildHostConfig(restartPolicy *RestartPolicy) (*TDContainer.HostConfig, error) {
	hostConfig := &TDContainer.HostConfig{
		Binds:        s.Binds(),
		PortBindings: nat.PortMap{},
		NetworkMode:  TDContainer.NetworkMode(s.NetworkMode),
		DNS:          append([]string(nil), s.Dns...),
		ExtraHosts:   append([]string(nil), s.ExtraHosts...),
		CapAdd:       append([]string(nil), s.CapAdd...),
		CapDrop:      append([]string(nil), s.CapDrop...),
	}

	for _, binding := range s.Ports {
		port, err := binding.Port()
		if err != nil {
			return nil, err
		}

		hostConfig.PortBindings[port] = []nat.PortBinding{{
			HostIP:   binding.HostIP,
			HostPort: strconv.Itoa(int(binding.HostPort)),
		}}
	}

	memory, err := toInt64(s.Memory)
	if err != nil {
		return nil, errors.Wrap(err, "memory")
	}

	shares, err := toInt64(s.CpuShares)
	if err != nil {
		return nil, errors.Wrap(err, "cpu shares")
	}

	hostConfig.Resources.Memory = memory
	hostConfig.Resources.CPUShares = shares

	if restartPolicy != nil {
		hostConfig.RestartPolicy = NewRestartPolicy(restartPolicy.Name, restartPolicy.MaxRetryCount).ToDocker()
	}

	return hostConfig, nil
}

// Binds renders volumes as host:container pairs.
func (s *Service) Binds() []string {
	binds := make([]string, 0, len(s.Volumes))

	for _, volume := range s.Volumes {
		binds = append(binds, fmt.Sprintf("%s:%s", volume.HostVolume, volume.ContainerVolume))
	}

	return binds
}

func (p PortBinding) Port() (nat.Port, error) {
	port, err := nat.NewPort(p.Protocol, strconv.Itoa(int(p.ContainerPort)))
	if err != nil {
		return "", errors.Wrapf(err, "port binding %d:%d/%s", p.HostPort, p.ContainerPort, p.Protocol)
	}

	return port, nil
}

func (s *Service) interpolate(ctx context.Context, value string, hostname string) (string, error) {
	value = strings.ReplaceAll(value, static.PLACEHOLDER_HOSTNAME, hostname)

	if !strings.Contains(value, static.PLACEHOLDER_HOST_IP) {
		return value, nil
	}

	ip, err := s.hostIP(ctx, hostname)
	if err != nil {
		return "", err
	}

	return strings.ReplaceAll(value, static.PLACEHOLDER_HOST_IP, ip), nil
}

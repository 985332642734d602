package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	v1 "github.com/simplecontainer/deployer/pkg/definitions/v1"
	"github.com/simplecontainer/deployer/pkg/dns"
	"github.com/simplecontainer/deployer/pkg/static"
	"gopkg.in/yaml.v3"
)

func New(name string) *Service {
	return &Service{
		Name:     name,
		Env:      map[string]string{},
		Labels:   map[string]string{},
		Resolver: dns.NewSystem(),
		hostIPs:  map[string]string{},
	}
}

// FromDefinition validates the declarative form and builds a Service out of
// it. Variables from envFile are applied first so env entries override them.
func FromDefinition(definition *v1.ServiceDefinition) (*Service, error) {
	if _, err := definition.Validate(); err != nil {
		return nil, err
	}

	s := New(definition.Name)
	s.Image = definition.Image
	s.Tag = definition.Tag
	s.Hostname = definition.Hostname
	s.Command = append([]string(nil), definition.Command...)
	s.Dns = append([]string(nil), definition.Dns...)
	s.ExtraHosts = append([]string(nil), definition.ExtraHosts...)

	if definition.EnvFile != "" {
		vars, err := godotenv.Read(definition.EnvFile)
		if err != nil {
			return nil, errors.Wrapf(err, "reading env file %s", definition.EnvFile)
		}

		s.AddEnvVars(vars)
	}

	s.AddEnvVars(definition.Env)
	s.AddLabels(definition.Labels)

	for _, volume := range definition.Volumes {
		s.AddVolume(volume.HostVolume, volume.ContainerVolume)
	}

	for _, port := range definition.Ports {
		s.AddPortBinding(port.HostPort, port.ContainerPort, port.Type, port.HostIP)
	}

	if definition.Memory != nil {
		if err := s.SetMemory(definition.Memory); err != nil {
			return nil, err
		}
	}

	if definition.CpuShares != nil {
		if err := s.SetCpuShares(definition.CpuShares); err != nil {
			return nil, err
		}
	}

	if err := s.SetNetworkMode(definition.NetworkMode); err != nil {
		return nil, err
	}

	if err := s.SetCapabilities(definition.CapAdd, definition.CapDrop); err != nil {
		return nil, err
	}

	return s, nil
}

// FromHash builds a Service out of a generic key/value tree, as produced by
// decoding YAML or JSON into map[string]interface{}.
func FromHash(name string, hash map[string]interface{}) (*Service, error) {
	bytes, err := yaml.Marshal(hash)
	if err != nil {
		return nil, err
	}

	definition := v1.NewService()
	if err = definition.FromYAML(bytes); err != nil {
		return nil, err
	}

	if definition.Name == "" {
		definition.Name = name
	}

	return FromDefinition(definition)
}

// Definition reads the service back into its declarative form.
func (s *Service) Definition() *v1.ServiceDefinition {
	definition := &v1.ServiceDefinition{
		Name:        s.Name,
		Image:       s.Image,
		Tag:         s.Tag,
		Hostname:    s.Hostname,
		Command:     append(v1.Command(nil), s.Command...),
		Env:         copyMap(s.Env),
		Labels:      copyMap(s.Labels),
		NetworkMode: s.NetworkMode,
		CapAdd:      append([]string(nil), s.CapAdd...),
		CapDrop:     append([]string(nil), s.CapDrop...),
		Dns:         append([]string(nil), s.Dns...),
		ExtraHosts:  append([]string(nil), s.ExtraHosts...),
	}

	if s.Memory != nil {
		definition.Memory = *s.Memory
	}

	if s.CpuShares != nil {
		definition.CpuShares = *s.CpuShares
	}

	for _, volume := range s.Volumes {
		definition.Volumes = append(definition.Volumes, v1.ServiceVolume{
			HostVolume:      volume.HostVolume,
			ContainerVolume: volume.ContainerVolume,
		})
	}

	for _, port := range s.Ports {
		definition.Ports = append(definition.Ports, v1.ServicePort{
			HostPort:      port.HostPort,
			ContainerPort: port.ContainerPort,
			Type:          port.Protocol,
			HostIP:        port.HostIP,
		})
	}

	return definition
}

// WithTag returns a copy of the service pointing at another tag of the
// same image.
func (s *Service) WithTag(tag string) *Service {
	clone := New(s.Name)
	clone.Image = s.Image
	clone.Tag = tag
	clone.Hostname = s.Hostname
	clone.Command = append([]string(nil), s.Command...)
	clone.Memory = s.Memory
	clone.CpuShares = s.CpuShares
	clone.Env = copyMap(s.Env)
	clone.Labels = copyMap(s.Labels)
	clone.Volumes = append([]Volume(nil), s.Volumes...)
	clone.Ports = append([]PortBinding(nil), s.Ports...)
	clone.NetworkMode = s.NetworkMode
	clone.CapAdd = append([]string(nil), s.CapAdd...)
	clone.CapDrop = append([]string(nil), s.CapDrop...)
	clone.Dns = append([]string(nil), s.Dns...)
	clone.ExtraHosts = append([]string(nil), s.ExtraHosts...)
	clone.Resolver = s.Resolver

	return clone
}

func (s *Service) AddEnvVars(vars map[string]string) {
	for key, value := range vars {
		s.Env[key] = value
	}
}

func (s *Service) AddLabels(labels map[string]string) {
	for key, value := range labels {
		s.Labels[key] = value
	}
}

func (s *Service) AddPortBinding(hostPort uint16, containerPort uint16, protocol string, hostIP string) {
	if protocol == "" {
		protocol = "tcp"
	}

	s.Ports = append(s.Ports, PortBinding{
		HostPort:      hostPort,
		ContainerPort: containerPort,
		Protocol:      protocol,
		HostIP:        hostIP,
	})
}

func (s *Service) AddVolume(hostVolume string, containerVolume string) {
	s.Volumes = append(s.Volumes, Volume{
		HostVolume:      hostVolume,
		ContainerVolume: containerVolume,
	})
}

func (s *Service) SetMemory(value interface{}) error {
	bytes, ok := toUint64(value)
	if !ok {
		return &ConfigError{Field: "memory", Value: value, Code: static.EXIT_INVALID_MEMORY}
	}

	s.Memory = &bytes
	return nil
}

func (s *Service) SetCpuShares(value interface{}) error {
	shares, ok := toUint64(value)
	if !ok {
		return &ConfigError{Field: "CPU", Value: value, Code: static.EXIT_INVALID_CPU_SHARES}
	}

	s.CpuShares = &shares
	return nil
}

func (s *Service) SetNetworkMode(mode string) error {
	if mode == "" {
		s.NetworkMode = ""
		return nil
	}

	if !static.NETWORK_MODE.MatchString(mode) {
		return errors.Errorf("invalid value for network mode: %s, must be bridge, host or container:<id>", mode)
	}

	s.NetworkMode = mode
	return nil
}

func (s *Service) SetCapabilities(add []string, drop []string) error {
	for _, capability := range append(append([]string(nil), add...), drop...) {
		if !static.IsCapability(capability) {
			return errors.Errorf("invalid capability: %s", capability)
		}
	}

	s.CapAdd = append([]string(nil), add...)
	s.CapDrop = append([]string(nil), drop...)
	return nil
}

// ImageRef is the image reference including the tag.
func (s *Service) ImageRef() string {
	if s.Tag == "" || strings.Contains(s.Image, "@") || engineHasTag(s.Image) {
		return s.Image
	}

	return fmt.Sprintf("%s:%s", s.Image, s.Tag)
}

// PublicPorts lists host ports in declaration order.
func (s *Service) PublicPorts() []uint16 {
	ports := make([]uint16, 0, len(s.Ports))

	for _, binding := range s.Ports {
		ports = append(ports, binding.HostPort)
	}

	return ports
}

// PublicPort is the primary public port used to find running instances.
func (s *Service) PublicPort() (PortBinding, error) {
	if len(s.Ports) == 0 {
		return PortBinding{}, ERROR_NO_PORTS
	}

	return s.Ports[0], nil
}

// ContainerName generates a unique name of the form <service>-<14 hex>.
func (s *Service) ContainerName() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:14]
	return fmt.Sprintf("%s-%s", s.Name, suffix)
}

// hostIP resolves hostname once per Service. Lookups of different hosts run
// concurrently, concurrent lookups of the same host share one query.
func (s *Service) hostIP(ctx context.Context, hostname string) (string, error) {
	if ip, ok := s.cachedIP(hostname); ok {
		return ip, nil
	}

	ip, err, _ := s.lookups.Do(hostname, func() (interface{}, error) {
		if ip, ok := s.cachedIP(hostname); ok {
			return ip, nil
		}

		resolver := s.Resolver
		if resolver == nil {
			resolver = dns.NewSystem()
		}

		ip, err := resolver.LookupIP(ctx, hostname)
		if err != nil {
			return "", errors.Wrapf(err, "resolving %s", hostname)
		}

		s.lock.Lock()
		s.hostIPs[hostname] = ip
		s.lock.Unlock()

		return ip, nil
	})
	if err != nil {
		return "", err
	}

	return ip.(string), nil
}

func (s *Service) cachedIP(hostname string) (string, bool) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.hostIPs == nil {
		s.hostIPs = map[string]string{}
	}

	ip, ok := s.hostIPs[hostname]
	return ip, ok
}

func toUint64(value interface{}) (uint64, bool) {
	switch v := value.(type) {
	case int:
		return uint64(v), v >= 0
	case int8:
		return uint64(v), v >= 0
	case int16:
		return uint64(v), v >= 0
	case int32:
		return uint64(v), v >= 0
	case int64:
		return uint64(v), v >= 0
	case uint:
		return uint64(v), true
	case uint8:
		return uint64(v), true
	case uint16:
		return uint64(v), true
	case uint32:
		return uint64(v), true
	case uint64:
		return v, true
	default:
		return 0, false
	}
}

func toInt64(value *uint64) (int64, error) {
	if value == nil {
		return 0, nil
	}

	if *value > math.MaxInt64 {
		return 0, ERROR_ENGINE_LIMIT
	}

	return int64(*value), nil
}

func engineHasTag(image string) bool {
	colon := strings.LastIndex(image, ":")
	return colon != -1 && colon > strings.LastIndex(image, "/")
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))

	for key, value := range in {
		out[key] = value
	}

	return out
}

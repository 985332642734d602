package service

import (
	"sync"

	"github.com/simplecontainer/deployer/pkg/dns"
	"golang.org/x/sync/singleflight"
)

// Service is the declared target state of one deployable container. It is
// assembled through the Add and Set methods and read-only afterwards.
type Service struct {
	Name        string
	Image       string
	Tag         string
	Hostname    string
	Command     []string
	Memory      *uint64
	CpuShares   *uint64
	Env         map[string]string
	Labels      map[string]string
	Volumes     []Volume
	Ports       []PortBinding
	NetworkMode string
	CapAdd      []string
	CapDrop     []string
	Dns         []string
	ExtraHosts  []string

	Resolver dns.Resolver

	hostIPs map[string]string
	lookups singleflight.Group
	lock    sync.Mutex
}

type PortBinding struct {
	HostPort      uint16
	ContainerPort uint16
	Protocol      string
	HostIP        string
}

type Volume struct {
	HostVolume      string
	ContainerVolume string
}

// RestartPolicy carries a nil MaxRetryCount when none was configured.
type RestartPolicy struct {
	Name          string
	MaxRetryCount *int
}

// ConfigError rejects a malformed service field. Code is the process exit
// code reported for it.
type ConfigError struct {
	Field string
	Value interface{}
	Code  int
}

package engine

import (
	"context"
	"time"

	TDContainer "github.com/docker/docker/api/types/container"
)

// Client is the per-host RPC binding to the container engine.
type Client interface {
	ListContainers(ctx context.Context, all bool) ([]Container, error)
	CreateContainer(ctx context.Context, name string, config *TDContainer.Config, hostConfig *TDContainer.HostConfig) (string, error)
	StartContainer(ctx context.Context, id string) error
	StopContainer(ctx context.Context, id string, timeout time.Duration) error
	RestartContainer(ctx context.Context, id string, timeout time.Duration) error
	RemoveContainer(ctx context.Context, id string) error
	InspectContainer(ctx context.Context, id string) (ContainerDetails, error)
	InspectImage(ctx context.Context, ref string) (ImageDetails, error)
	PullImage(ctx context.Context, ref string) error
	Close() error
}

// Endpoint tells a Factory where the engine listens.
type Endpoint struct {
	Address string
	TLS     *TLS
}

type TLS struct {
	CACert string
	Cert   string
	Key    string
}

type Factory func(endpoint Endpoint) (Client, error)

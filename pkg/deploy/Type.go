package deploy

import (
	"context"
	"sync"
	"time"

	"github.com/simplecontainer/deployer/pkg/callbacks"
	"github.com/simplecontainer/deployer/pkg/health"
	"github.com/simplecontainer/deployer/pkg/service"
	"go.uber.org/zap"
)

type State string

const (
	IDLE            State = "idle"
	STOPPING        State = "stopping"
	STARTING        State = "starting"
	HEALTH_CHECKING State = "health_checking"
	SUCCEEDED       State = "succeeded"
	FAILED          State = "failed"
	CLEANING_UP     State = "cleaning_up"
)

type Options struct {
	StopTimeout    time.Duration
	HealthCheck    health.Check
	Endpoint       string
	Port           int
	WaitTime       time.Duration
	Retries        int
	CheckInterval  time.Duration
	RestartPolicy  *service.RestartPolicy
	Parallel       bool
	Pull           bool
	KeepContainers int
}

// Orchestrator runs rolling deployments of one service across a group.
type Orchestrator struct {
	Options   Options
	Callbacks *callbacks.Registry

	// Sleep waits between health polls and between hosts.
	Sleep func(ctx context.Context, d time.Duration) error

	states map[string]State
	lock   sync.Mutex
	logger *zap.Logger
}

// HealthCheckError reports a container that never became healthy.
type HealthCheckError struct {
	Host     string
	Port     int
	Attempts int
}

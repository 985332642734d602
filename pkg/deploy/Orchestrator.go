package deploy

import (
	"context"
	"time"

	"github.com/simplecontainer/deployer/pkg/callbacks"
	"github.com/simplecontainer/deployer/pkg/health"
	"github.com/simplecontainer/deployer/pkg/logger"
	"github.com/simplecontainer/deployer/pkg/static"
	"go.uber.org/zap"
)

func New(options Options, registry *callbacks.Registry, log *zap.Logger) *Orchestrator {
	log = logger.OrNop(log)

	if options.StopTimeout == 0 {
		options.StopTimeout = static.DEFAULT_STOP_TIMEOUT * time.Second
	}

	if options.HealthCheck == nil {
		options.HealthCheck = health.HTTP(nil, log)
	}

	if options.Endpoint == "" {
		options.Endpoint = static.DEFAULT_HEALTH_ENDPOINT
	}

	if options.Retries <= 0 {
		options.Retries = static.DEFAULT_HEALTH_RETRIES
	}

	if options.KeepContainers <= 0 {
		options.KeepContainers = static.DEFAULT_KEEP_CONTAINERS
	}

	if registry == nil {
		registry = callbacks.New()
	}

	return &Orchestrator{
		Options:   options,
		Callbacks: registry,
		Sleep:     sleep,
		states:    map[string]State{},
		logger:    log,
	}
}

// States returns the last state of every host touched so far.
func (o *Orchestrator) States() map[string]State {
	o.lock.Lock()
	defer o.lock.Unlock()

	states := make(map[string]State, len(o.states))
	for hostname, state := range o.states {
		states[hostname] = state
	}

	return states
}

func (o *Orchestrator) transition(hostname string, service string, state State) {
	o.lock.Lock()
	previous, ok := o.states[hostname]
	if !ok {
		previous = IDLE
	}

	o.states[hostname] = state
	o.lock.Unlock()

	o.logger.Info("deployment state changed",
		zap.String("host", hostname),
		zap.String("service", service),
		zap.String("from", string(previous)),
		zap.String("to", string(state)),
	)
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

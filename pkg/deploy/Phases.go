package deploy

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/callbacks"
	"github.com/simplecontainer/deployer/pkg/engine"
	"github.com/simplecontainer/deployer/pkg/health"
	"github.com/simplecontainer/deployer/pkg/host"
	"github.com/simplecontainer/deployer/pkg/metrics"
	"github.com/simplecontainer/deployer/pkg/service"
	"github.com/simplecontainer/deployer/pkg/static"
	"go.uber.org/zap"
)

// Stop stops every running container of the service on h. Containers are
// found by the primary public port, or by the service label when the
// service publishes nothing.
func (o *Orchestrator) Stop(ctx context.Context, h *host.Host, svc *service.Service, timeout time.Duration) error {
	if err := o.Callbacks.Emit(ctx, callbacks.BEFORE_STOPPING_CONTAINER, h); err != nil {
		return err
	}

	running, err := o.running(ctx, h, svc)
	if err != nil {
		return err
	}

	for _, c := range running {
		o.logger.Info("stopping old container",
			zap.String("host", h.Hostname),
			zap.String("container", c.ShortID()),
			zap.String("name", c.Name()),
		)

		if err = h.StopContainer(ctx, c.ID, timeout); err != nil {
			return errors.Wrapf(err, "stopping %s", c.ShortID())
		}

		metrics.ContainersStopped.Increment(svc.Name, h.Hostname)
	}

	return nil
}

// Start creates and starts a new container of the service and returns its
// id.
func (o *Orchestrator) Start(ctx context.Context, h *host.Host, svc *service.Service, restartPolicy *service.RestartPolicy) (string, error) {
	if err := o.Callbacks.Emit(ctx, callbacks.BEFORE_STARTING_CONTAINER, h); err != nil {
		return "", err
	}

	if o.Options.Pull {
		o.logger.Info("pulling image", zap.String("host", h.Hostname), zap.String("image", svc.ImageRef()))

		if err := h.PullImage(ctx, svc.ImageRef()); err != nil {
			return "", errors.Wrapf(err, "pulling %s", svc.ImageRef())
		}
	}

	config, err := svc.BuildConfig(ctx, h.Hostname)
	if err != nil {
		return "", err
	}

	hostConfig, err := svc.BuildHostConfig(restartPolicy)
	if err != nil {
		return "", err
	}

	name := svc.ContainerName()

	o.logger.Info("creating new container", zap.String("host", h.Hostname), zap.String("image", config.Image), zap.String("name", name))

	id, err := h.CreateContainer(ctx, name, config, hostConfig)
	if err != nil {
		return "", errors.Wrapf(err, "creating %s", name)
	}

	o.logger.Info("starting new container", zap.String("host", h.Hostname), zap.String("container", shortID(id)))

	if err = h.StartContainer(ctx, id); err != nil {
		return "", errors.Wrapf(err, "starting %s", shortID(id))
	}

	details, err := h.InspectContainer(ctx, id)
	if err != nil {
		return "", errors.Wrapf(err, "inspecting %s", shortID(id))
	}

	o.logger.Info("inspected new container",
		zap.String("host", h.Hostname),
		zap.String("container", shortID(details.ID)),
		zap.String("name", details.Name),
		zap.Bool("running", details.Running),
		zap.String("status", details.Status),
	)

	metrics.ContainersStarted.Increment(svc.Name, h.Hostname)

	if err = o.Callbacks.Emit(ctx, callbacks.AFTER_STARTING_CONTAINER, h); err != nil {
		return "", err
	}

	return id, nil
}

// WaitForHealthCheck polls up to retries times, waiting wait between
// attempts. An attempt passes when exactly one container, id when given,
// publishes port on h and check reports healthy.
func (o *Orchestrator) WaitForHealthCheck(ctx context.Context, check health.Check, h *host.Host, id string, port int, endpoint string, wait time.Duration, retries int) error {
	if retries < 1 {
		retries = 1
	}

	schedule := backoff.WithMaxRetries(backoff.NewConstantBackOff(wait), uint64(retries-1))
	schedule.Reset()

	o.logger.Info("waiting for the port to come up", zap.String("host", h.Hostname), zap.Int("port", port))

	for attempt := 1; ; attempt++ {
		metrics.HealthChecks.Increment(h.Hostname, fmt.Sprint(port))

		up, err := o.containerUp(ctx, h, id, port)
		if err != nil {
			return err
		}

		if up && check(ctx, h.Hostname, port, endpoint) {
			o.logger.Info("container is up", zap.String("host", h.Hostname), zap.Int("port", port), zap.Int("attempt", attempt))
			return o.Callbacks.Emit(ctx, callbacks.AFTER_HEALTH_CHECK_OK, h)
		}

		next := schedule.NextBackOff()
		if next == backoff.Stop {
			break
		}

		o.logger.Info("waiting to test the endpoint",
			zap.String("host", h.Hostname),
			zap.String("endpoint", endpoint),
			zap.Duration("wait", next),
			zap.Int("attempt", attempt),
		)

		if err = o.Sleep(ctx, next); err != nil {
			return err
		}
	}

	o.logger.Error("failed to validate started container", zap.String("host", h.Hostname), zap.Int("port", port))

	return &HealthCheckError{Host: h.Hostname, Port: port, Attempts: retries}
}

// Cleanup removes exited containers of the service beyond the most recent
// KeepContainers, oldest first.
func (o *Orchestrator) Cleanup(ctx context.Context, h *host.Host, svc *service.Service) error {
	old, err := o.exited(ctx, h, svc)
	if err != nil {
		return err
	}

	sort.SliceStable(old, func(i, j int) bool {
		return old[i].Created > old[j].Created
	})

	if len(old) <= o.Options.KeepContainers {
		return nil
	}

	stale := old[o.Options.KeepContainers:]

	for i := len(stale) - 1; i >= 0; i-- {
		o.logger.Info("removing old container",
			zap.String("host", h.Hostname),
			zap.String("container", stale[i].ShortID()),
			zap.String("name", stale[i].Name()),
		)

		if err = h.RemoveContainer(ctx, stale[i].ID); err != nil {
			return errors.Wrapf(err, "removing %s", stale[i].ShortID())
		}

		metrics.ContainersRemoved.Increment(svc.Name, h.Hostname)
	}

	return nil
}

func (o *Orchestrator) running(ctx context.Context, h *host.Host, svc *service.Service) ([]engine.Container, error) {
	primary, err := svc.PublicPort()
	if errors.Is(err, service.ERROR_NO_PORTS) {
		return h.FindContainersByLabel(ctx, static.LABEL_SERVICE, svc.Name, false)
	}

	return h.FindContainersByPublicPort(ctx, primary.HostPort, "tcp")
}

func (o *Orchestrator) exited(ctx context.Context, h *host.Host, svc *service.Service) ([]engine.Container, error) {
	primary, err := svc.PublicPort()
	if !errors.Is(err, service.ERROR_NO_PORTS) {
		return h.OldContainersForPort(ctx, primary.HostPort)
	}

	labelled, err := h.FindContainersByLabel(ctx, static.LABEL_SERVICE, svc.Name, true)
	if err != nil {
		return nil, err
	}

	exited := []engine.Container{}
	for _, c := range labelled {
		if c.Exited() {
			exited = append(exited, c)
		}
	}

	return exited, nil
}

func (o *Orchestrator) containerUp(ctx context.Context, h *host.Host, id string, port int) (bool, error) {
	running, err := h.FindContainersByPublicPort(ctx, uint16(port), "tcp")
	if err != nil {
		return false, err
	}

	switch {
	case len(running) == 0:
		return false, nil
	case len(running) > 1:
		o.logger.Error("more than one container is bound to the port", zap.String("host", h.Hostname), zap.Int("port", port))
		return false, nil
	}

	if id != "" && !strings.HasPrefix(running[0].ID, id) {
		return false, nil
	}

	o.logger.Info("found container up",
		zap.String("host", h.Hostname),
		zap.String("container", running[0].ShortID()),
		zap.Int64("uptime_seconds", time.Now().Unix()-running[0].Created),
	)

	return true, nil
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}

	return id
}

package deploy

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/group"
	"github.com/simplecontainer/deployer/pkg/host"
	"github.com/simplecontainer/deployer/pkg/metrics"
	"github.com/simplecontainer/deployer/pkg/service"
	"go.uber.org/zap"
)

// Deploy rolls svc across the group: stop, start, health check and cleanup
// per host. Sequential runs wait CheckInterval between hosts.
func (o *Orchestrator) Deploy(ctx context.Context, g *group.Group, svc *service.Service) error {
	if o.Options.Parallel {
		return g.EachInParallel(ctx, func(ctx context.Context, h *host.Host) error {
			return o.DeployHost(ctx, h, svc)
		})
	}

	visited := 0

	return g.Each(ctx, func(ctx context.Context, h *host.Host) error {
		if visited > 0 && o.Options.CheckInterval > 0 {
			o.logger.Info("waiting for the load balancer check interval", zap.Duration("interval", o.Options.CheckInterval))

			if err := o.Sleep(ctx, o.Options.CheckInterval); err != nil {
				return err
			}
		}

		visited++
		return o.DeployHost(ctx, h, svc)
	})
}

// DeployHost runs one rolling step on h.
func (o *Orchestrator) DeployHost(ctx context.Context, h *host.Host, svc *service.Service) error {
	err := o.deployHost(ctx, h, svc)

	if err != nil {
		o.transition(h.Hostname, svc.Name, FAILED)
		metrics.Deployments.Increment(svc.Name, string(FAILED))
		return err
	}

	metrics.Deployments.Increment(svc.Name, string(SUCCEEDED))
	metrics.DeployedTag.Set(1, svc.Name, h.Hostname, svc.Tag)

	return nil
}

func (o *Orchestrator) deployHost(ctx context.Context, h *host.Host, svc *service.Service) error {
	port, err := o.healthPort(svc)
	if err != nil {
		return err
	}

	o.transition(h.Hostname, svc.Name, STOPPING)
	if err = o.timed(STOPPING, func() error { return o.Stop(ctx, h, svc, o.Options.StopTimeout) }); err != nil {
		return err
	}

	o.transition(h.Hostname, svc.Name, STARTING)

	var id string
	if err = o.timed(STARTING, func() error {
		id, err = o.Start(ctx, h, svc, o.Options.RestartPolicy)
		return err
	}); err != nil {
		return err
	}

	o.transition(h.Hostname, svc.Name, HEALTH_CHECKING)
	if err = o.timed(HEALTH_CHECKING, func() error {
		return o.WaitForHealthCheck(ctx, o.Options.HealthCheck, h, id, port, o.Options.Endpoint, o.Options.WaitTime, o.Options.Retries)
	}); err != nil {
		return err
	}

	o.transition(h.Hostname, svc.Name, SUCCEEDED)

	o.transition(h.Hostname, svc.Name, CLEANING_UP)
	return o.timed(CLEANING_UP, func() error { return o.Cleanup(ctx, h, svc) })
}

// Canary deploys svc to the host already running a canary, or to the first
// host of the group when every host runs the same tag.
func (o *Orchestrator) Canary(ctx context.Context, g *group.Group, svc *service.Service) error {
	canary, err := g.FindExistingCanary(ctx, svc.Image)
	if err != nil {
		return err
	}

	target := g.Hosts[0]
	if canary != nil {
		target = canary.Host
	}

	o.logger.Info("deploying canary", zap.String("host", target.Hostname), zap.String("tag", svc.Tag))

	return o.only(ctx, g, []*host.Host{target}, svc)
}

// Promote rolls the canary tag out to every other host.
func (o *Orchestrator) Promote(ctx context.Context, g *group.Group, svc *service.Service) error {
	canary, err := g.FindExistingCanary(ctx, svc.Image)
	if err != nil {
		return err
	}

	if canary == nil {
		return ERROR_NO_CANARY
	}

	o.logger.Info("promoting canary", zap.String("host", canary.Host.Hostname), zap.String("tag", canary.Tag))

	return o.only(ctx, g, g.Except(canary.Host), svc.WithTag(canary.Tag))
}

// AbortCanary puts the production tag back on the canary host.
func (o *Orchestrator) AbortCanary(ctx context.Context, g *group.Group, svc *service.Service) error {
	canary, err := g.FindExistingCanary(ctx, svc.Image)
	if err != nil {
		return err
	}

	if canary == nil {
		return ERROR_NO_CANARY
	}

	tag, err := g.CurrentlyDeployedTag(ctx, svc.Image)
	if err != nil {
		return err
	}

	o.logger.Info("aborting canary", zap.String("host", canary.Host.Hostname), zap.String("tag", canary.Tag), zap.String("restoring", tag))

	return o.only(ctx, g, []*host.Host{canary.Host}, svc.WithTag(tag))
}

// StopAll stops the service on every host.
func (o *Orchestrator) StopAll(ctx context.Context, g *group.Group, svc *service.Service) error {
	stop := func(ctx context.Context, h *host.Host) error {
		o.transition(h.Hostname, svc.Name, STOPPING)

		if err := o.Stop(ctx, h, svc, o.Options.StopTimeout); err != nil {
			o.transition(h.Hostname, svc.Name, FAILED)
			return err
		}

		o.transition(h.Hostname, svc.Name, IDLE)
		return nil
	}

	if o.Options.Parallel {
		return g.EachInParallel(ctx, stop)
	}

	return g.Each(ctx, stop)
}

func (o *Orchestrator) only(ctx context.Context, g *group.Group, hosts []*host.Host, svc *service.Service) error {
	subset, err := g.Subset(hosts)
	if err != nil {
		return errors.Wrap(err, "selecting hosts")
	}

	return o.Deploy(ctx, subset, svc)
}

func (o *Orchestrator) healthPort(svc *service.Service) (int, error) {
	if o.Options.Port != 0 {
		return o.Options.Port, nil
	}

	primary, err := svc.PublicPort()
	if err != nil {
		return 0, errors.Wrap(err, "health check needs a port")
	}

	return int(primary.HostPort), nil
}

func (o *Orchestrator) timed(phase State, fn func() error) error {
	started := time.Now()
	err := fn()
	metrics.PhaseDuration.Observe(time.Since(started).Seconds(), string(phase))

	return err
}

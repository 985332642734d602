package group

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/host"
	"github.com/simplecontainer/deployer/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func New(hosts []*host.Host, log *zap.Logger) (*Group, error) {
	if len(hosts) == 0 {
		return nil, ERROR_EMPTY_GROUP
	}

	return &Group{
		Hosts:  hosts,
		logger: logger.OrNop(log),
	}, nil
}

// FromAddresses builds one host per address, applying options to each.
func FromAddresses(addresses []string, log *zap.Logger, options ...host.Option) (*Group, error) {
	if len(addresses) == 0 {
		return nil, ERROR_EMPTY_GROUP
	}

	hosts := make([]*host.Host, 0, len(addresses))

	for _, address := range addresses {
		h, err := host.New(address, append([]host.Option{host.WithLogger(log)}, options...)...)
		if err != nil {
			return nil, err
		}

		hosts = append(hosts, h)
	}

	return New(hosts, log)
}

func (g *Group) Len() int {
	return len(g.Hosts)
}

func (g *Group) Find(hostname string) *host.Host {
	for _, h := range g.Hosts {
		if h.Hostname == hostname {
			return h
		}
	}

	return nil
}

// Except returns the hosts other than the ones given, in group order.
func (g *Group) Except(excluded ...*host.Host) []*host.Host {
	skip := map[*host.Host]bool{}
	for _, h := range excluded {
		skip[h] = true
	}

	var hosts []*host.Host
	for _, h := range g.Hosts {
		if !skip[h] {
			hosts = append(hosts, h)
		}
	}

	return hosts
}

// Subset builds a group over some of the hosts, sharing the logger.
func (g *Group) Subset(hosts []*host.Host) (*Group, error) {
	return New(hosts, g.logger)
}

// Each visits hosts in order and stops at the first failure.
func (g *Group) Each(ctx context.Context, visit Visit) error {
	for _, h := range g.Hosts {
		if err := ctx.Err(); err != nil {
			return err
		}

		g.logger.Info(fmt.Sprintf("connecting to host %s", h.Hostname), zap.String("host", h.Hostname))

		if err := h.Open(ctx, func(ctx context.Context) error { return visit(ctx, h) }); err != nil {
			return errors.Wrapf(err, "host %s", h.Hostname)
		}
	}

	return nil
}

// EachInParallel visits every host concurrently and waits for all of them.
// The first failure cancels the context shared by the others and is
// returned; panics are reported as errors.
func (g *Group) EachInParallel(ctx context.Context, visit Visit) error {
	eg, ctx := errgroup.WithContext(ctx)

	for _, h := range g.Hosts {
		h := h

		eg.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = errors.Errorf("host %s: panic: %v", h.Hostname, r)
				}
			}()

			g.logger.Info(fmt.Sprintf("connecting to host %s", h.Hostname), zap.String("host", h.Hostname))

			if err = h.Open(ctx, func(ctx context.Context) error { return visit(ctx, h) }); err != nil {
				return errors.Wrapf(err, "host %s", h.Hostname)
			}

			return nil
		})
	}

	return eg.Wait()
}

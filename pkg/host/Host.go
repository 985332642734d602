package host

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/engine"
	"github.com/simplecontainer/deployer/pkg/logger"
	"github.com/simplecontainer/deployer/pkg/static"
	"github.com/simplecontainer/deployer/pkg/tunnel"
	"go.uber.org/zap"
)

var ERROR_NO_FACTORY = errors.New("no engine client factory configured")
var ERROR_TUNNEL_CLOSED = errors.New("ssh host used outside of an open tunnel")

// New parses host[:port] or ssh://[user@]host[:port]. Plain addresses talk
// to the engine over tcp, port 2375 unless given.
func New(address string, options ...Option) (*Host, error) {
	h := &Host{
		Transport: static.TRANSPORT_TCP,
		logger:    zap.NewNop(),
	}

	if rest, ok := strings.CutPrefix(address, static.TRANSPORT_SSH+"://"); ok {
		h.Transport = static.TRANSPORT_SSH

		if user, hostport, found := strings.Cut(rest, "@"); found {
			h.Tunnel.User = user
			rest = hostport
		}

		address = rest
	}

	hostname, port, err := splitHostPort(address)
	if err != nil {
		return nil, err
	}

	h.Hostname = hostname

	if h.Transport == static.TRANSPORT_SSH {
		h.Port = static.DEFAULT_ENGINE_PORT
		h.Tunnel.Hostname = hostname
		h.Tunnel.Port = port
	} else {
		h.Port = port
		if h.Port == "" {
			h.Port = static.DEFAULT_ENGINE_PORT
		}
	}

	for _, option := range options {
		option(h)
	}

	return h, nil
}

func WithClient(client engine.Client) Option {
	return func(h *Host) {
		h.client = client
		h.fixed = true
	}
}

func WithFactory(factory engine.Factory) Option {
	return func(h *Host) {
		h.factory = factory
	}
}

func WithTLS(tls *engine.TLS) Option {
	return func(h *Host) {
		h.TLS = tls
	}
}

// WithTunnel merges defaults into the ssh settings parsed from the address.
func WithTunnel(config tunnel.Config) Option {
	return func(h *Host) {
		user, port := h.Tunnel.User, h.Tunnel.Port

		h.Tunnel = config
		h.Tunnel.Hostname = h.Hostname

		if user != "" {
			h.Tunnel.User = user
		}

		if port != "" {
			h.Tunnel.Port = port
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(h *Host) {
		h.logger = logger.OrNop(log)
	}
}

func (h *Host) String() string {
	return h.Hostname
}

// Open runs fn with the engine reachable. For ssh hosts a tunnel spans the
// call; nested calls reuse the open tunnel.
func (h *Host) Open(ctx context.Context, fn func(ctx context.Context) error) error {
	if h.Transport != static.TRANSPORT_SSH || h.fixed {
		return fn(ctx)
	}

	h.lock.Lock()
	open := h.socket != ""
	h.lock.Unlock()

	if open {
		return fn(ctx)
	}

	return tunnel.New(h.Tunnel, h.logger).With(ctx, func(ctx context.Context, socket string) error {
		h.lock.Lock()
		h.socket = socket
		h.lock.Unlock()

		defer h.release()

		return fn(ctx)
	})
}

// Client returns the engine client, creating it on first call.
func (h *Host) Client() (engine.Client, error) {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.client != nil {
		return h.client, nil
	}

	if h.factory == nil {
		return nil, ERROR_NO_FACTORY
	}

	endpoint := engine.Endpoint{TLS: h.TLS}

	if h.Transport == static.TRANSPORT_SSH {
		if h.socket == "" {
			return nil, ERROR_TUNNEL_CLOSED
		}

		endpoint.Address = fmt.Sprintf("unix://%s", h.socket)
		endpoint.TLS = nil
	} else {
		endpoint.Address = fmt.Sprintf("tcp://%s", net.JoinHostPort(h.Hostname, h.Port))
	}

	client, err := h.factory(endpoint)
	if err != nil {
		return nil, errors.Wrapf(err, "creating engine client for %s", h.Hostname)
	}

	h.client = client
	return client, nil
}

// Close drops the cached client.
func (h *Host) Close() error {
	h.lock.Lock()
	defer h.lock.Unlock()

	if h.client == nil || h.fixed {
		return nil
	}

	err := h.client.Close()
	h.client = nil

	return err
}

func (h *Host) release() {
	h.Close()

	h.lock.Lock()
	h.socket = ""
	h.lock.Unlock()
}

func splitHostPort(address string) (string, string, error) {
	if address == "" {
		return "", "", errors.New("empty host address")
	}

	if !strings.Contains(address, ":") {
		return address, "", nil
	}

	hostname, port, err := net.SplitHostPort(address)
	if err != nil {
		return "", "", errors.Wrapf(err, "parsing host %s", address)
	}

	if hostname == "" {
		return "", "", errors.Errorf("parsing host %s: missing hostname", address)
	}

	return hostname, port, nil
}

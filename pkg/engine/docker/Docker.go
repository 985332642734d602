package docker

import (
	IDClient "github.com/docker/docker/client"
	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/engine"
	"github.com/simplecontainer/deployer/pkg/logger"
	"go.uber.org/zap"
)

func New(endpoint engine.Endpoint, log *zap.Logger) (*Docker, error) {
	opts := []IDClient.Opt{
		IDClient.WithHost(endpoint.Address),
		IDClient.WithAPIVersionNegotiation(),
	}

	if endpoint.TLS != nil {
		opts = append(opts, IDClient.WithTLSClientConfig(endpoint.TLS.CACert, endpoint.TLS.Cert, endpoint.TLS.Key))
	}

	cli, err := IDClient.NewClientWithOpts(opts...)
	if err != nil {
		return nil, errors.Wrapf(err, "creating engine client for %s", endpoint.Address)
	}

	return &Docker{
		Address: endpoint.Address,
		cli:     cli,
		logger:  logger.OrNop(log).With(zap.String("engine", endpoint.Address)),
	}, nil
}

// Factory adapts New to engine.Factory.
func Factory(log *zap.Logger) engine.Factory {
	return func(endpoint engine.Endpoint) (engine.Client, error) {
		return New(endpoint, log)
	}
}

func (docker *Docker) Close() error {
	return docker.cli.Close()
}

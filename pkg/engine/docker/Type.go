package docker

import (
	IDClient "github.com/docker/docker/client"
	"go.uber.org/zap"
)

// Docker binds engine.Client to one remote docker daemon.
type Docker struct {
	Address string
	cli     *IDClient.Client
	logger  *zap.Logger
}

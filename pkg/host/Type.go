package host

import (
	"sync"

	"github.com/simplecontainer/deployer/pkg/engine"
	"github.com/simplecontainer/deployer/pkg/tunnel"
	"go.uber.org/zap"
)

// Host is one deployment target. The engine client is created on first use
// and, for ssh hosts, only while a tunnel is open.
type Host struct {
	Hostname  string
	Port      string
	Transport string

	TLS    *engine.TLS
	Tunnel tunnel.Config

	factory engine.Factory
	client  engine.Client
	fixed   bool
	socket  string
	lock    sync.Mutex
	logger  *zap.Logger
}

type Option func(*Host)

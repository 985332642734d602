package tunnel

import (
	"context"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Config describes how to reach the remote engine socket over SSH.
type Config struct {
	Hostname              string
	Port                  string
	User                  string
	IdentityFiles         []string
	KnownHosts            string
	InsecureIgnoreHostKey bool
	RemoteSocket          string
	KeepAlive             time.Duration
	Timeout               time.Duration
	TempDir               string
}

// Tunnel exposes the remote engine socket as a local unix socket for the
// duration of one With call.
type Tunnel struct {
	config Config
	logger *zap.Logger
	active atomic.Int32
}

// Operation receives the local socket path while the tunnel is up.
type Operation func(ctx context.Context, socket string) error

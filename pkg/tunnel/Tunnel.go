package tunnel

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/logger"
	"github.com/simplecontainer/deployer/pkg/static"
	"go.uber.org/zap"
	"golang.org/x/crypto/ssh"
)

var ERROR_NO_AUTH = errors.New("no ssh authentication method available: set SSH_AUTH_SOCK or configure an identity file")

func New(config Config, log *zap.Logger) *Tunnel {
	if config.Port == "" {
		config.Port = static.DEFAULT_SSH_PORT
	}

	if config.User == "" {
		config.User = currentUser()
	}

	if config.RemoteSocket == "" {
		config.RemoteSocket = static.DEFAULT_ENGINE_SOCKET
	}

	if config.KeepAlive == 0 {
		config.KeepAlive = static.DEFAULT_SSH_KEEPALIVE * time.Second
	}

	return &Tunnel{
		config: config,
		logger: logger.OrNop(log).With(zap.String("host", config.Hostname)),
	}
}

// Active returns the number of forwarding goroutines still running.
func (t *Tunnel) Active() int {
	return int(t.active.Load())
}

func (t *Tunnel) Config() Config {
	return t.config
}

// With opens the SSH session, exposes the remote socket locally and runs op.
// The local socket and its directory are gone when With returns.
func (t *Tunnel) With(ctx context.Context, op Operation) error {
	client, err := t.dial(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if err = t.checkSocket(client); err != nil {
		return err
	}

	dir, err := os.MkdirTemp(t.config.TempDir, "deployer-ssh-")
	if err != nil {
		return errors.Wrap(err, "creating tunnel directory")
	}
	defer os.RemoveAll(dir)

	if err = os.Chmod(dir, 0700); err != nil {
		return errors.Wrap(err, "securing tunnel directory")
	}

	socket := filepath.Join(dir, "engine.sock")

	listener, err := net.Listen("unix", socket)
	if err != nil {
		return errors.Wrap(err, "listening on tunnel socket")
	}

	if err = os.Chmod(socket, 0600); err != nil {
		listener.Close()
		return errors.Wrap(err, "securing tunnel socket")
	}

	f := &forwarder{
		tunnel: t,
		client: client,
		conns:  map[net.Conn]struct{}{},
		done:   make(chan struct{}),
	}

	f.wg.Add(1)
	go f.accept(listener)

	if t.config.KeepAlive > 0 {
		f.wg.Add(1)
		go f.keepAlive(t.config.KeepAlive)
	}

	t.logger.Debug("tunnel open", zap.String("socket", socket), zap.String("remote", t.config.RemoteSocket))

	result := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				result <- errors.Errorf("panic in tunnel operation: %v", r)
			}
		}()

		result <- op(ctx, socket)
	}()

	err = <-result

	close(f.done)
	listener.Close()
	f.closeAll()
	client.Close()
	f.wg.Wait()

	t.logger.Debug("tunnel closed", zap.String("socket", socket))

	return err
}

func (t *Tunnel) dial(ctx context.Context) (*ssh.Client, error) {
	config, closeAgent, err := t.clientConfig()
	if err != nil {
		return nil, err
	}
	defer closeAgent()

	address := net.JoinHostPort(t.config.Hostname, t.config.Port)

	dialer := net.Dialer{Timeout: t.config.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, errors.Wrapf(err, "connecting to %s", address)
	}

	c, chans, reqs, err := ssh.NewClientConn(conn, address, config)
	if err != nil {
		conn.Close()
		return nil, errors.Wrapf(err, "ssh handshake with %s as %s", address, t.config.User)
	}

	return ssh.NewClient(c, chans, reqs), nil
}

func (t *Tunnel) checkSocket(client *ssh.Client) error {
	session, err := client.NewSession()
	if err != nil {
		return errors.Wrap(err, "opening ssh session")
	}
	defer session.Close()

	if err = session.Run(fmt.Sprintf("test -w '%s'", t.config.RemoteSocket)); err != nil {
		return errors.Errorf("engine socket %s is not writable by %s on %s", t.config.RemoteSocket, t.config.User, t.config.Hostname)
	}

	return nil
}

type forwarder struct {
	tunnel *Tunnel
	client *ssh.Client
	conns  map[net.Conn]struct{}
	lock   sync.Mutex
	done   chan struct{}
	wg     sync.WaitGroup
}

func (f *forwarder) accept(listener net.Listener) {
	defer f.wg.Done()

	for {
		local, err := listener.Accept()
		if err != nil {
			return
		}

		if !f.track(local) {
			local.Close()
			return
		}

		f.wg.Add(1)
		go f.forward(local)
	}
}

func (f *forwarder) forward(local net.Conn) {
	f.tunnel.active.Add(1)

	defer func() {
		f.tunnel.active.Add(-1)
		f.wg.Done()
	}()

	defer f.release(local)

	remote, err := f.client.Dial("unix", f.tunnel.config.RemoteSocket)
	if err != nil {
		f.tunnel.logger.Warn("forwarding to remote socket failed", zap.Error(err))
		return
	}

	if !f.track(remote) {
		remote.Close()
		return
	}

	defer f.release(remote)

	copied := make(chan struct{}, 2)

	go func() {
		io.Copy(remote, local)
		copied <- struct{}{}
	}()

	go func() {
		io.Copy(local, remote)
		copied <- struct{}{}
	}()

	<-copied
	local.Close()
	remote.Close()
	<-copied
}

func (f *forwarder) keepAlive(interval time.Duration) {
	defer f.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-f.done:
			return
		case <-ticker.C:
			if _, _, err := f.client.SendRequest("keepalive@openssh.com", true, nil); err != nil {
				f.tunnel.logger.Warn("ssh keepalive failed", zap.Error(err))
			}
		}
	}
}

func (f *forwarder) track(conn net.Conn) bool {
	f.lock.Lock()
	defer f.lock.Unlock()

	select {
	case <-f.done:
		return false
	default:
	}

	f.conns[conn] = struct{}{}
	return true
}

func (f *forwarder) release(conn net.Conn) {
	f.lock.Lock()
	defer f.lock.Unlock()

	conn.Close()
	delete(f.conns, conn)
}

func (f *forwarder) closeAll() {
	f.lock.Lock()
	defer f.lock.Unlock()

	for conn := range f.conns {
		conn.Close()
	}
}

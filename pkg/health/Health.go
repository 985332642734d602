package health

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/simplecontainer/deployer/pkg/logger"
	"go.uber.org/zap"
)

// Check reports whether the service on hostname:port answers on endpoint.
type Check func(ctx context.Context, hostname string, port int, endpoint string) bool

// HTTP is healthy on any 2xx answer to GET http://hostname:port/endpoint.
// Connection failures are logged and reported as not healthy yet.
func HTTP(client *http.Client, log *zap.Logger) Check {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}

	log = logger.OrNop(log)

	return func(ctx context.Context, hostname string, port int, endpoint string) bool {
		url := fmt.Sprintf("http://%s%s", net.JoinHostPort(hostname, strconv.Itoa(port)), path(endpoint))

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			log.Warn("invalid health check url", zap.String("url", url), zap.Error(err))
			return false
		}

		resp, err := client.Do(req)
		if err != nil {
			log.Warn("health check connection failed", zap.String("url", url), zap.Error(err))
			return false
		}
		defer resp.Body.Close()

		io.Copy(io.Discard, resp.Body)

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			log.Info("health check not ok", zap.String("url", url), zap.Int("status", resp.StatusCode))
			return false
		}

		return true
	}
}

// TCP is healthy once hostname:port accepts a connection. The endpoint is
// ignored.
func TCP(timeout time.Duration, log *zap.Logger) Check {
	log = logger.OrNop(log)

	return func(ctx context.Context, hostname string, port int, endpoint string) bool {
		address := net.JoinHostPort(hostname, strconv.Itoa(port))

		dialer := net.Dialer{Timeout: timeout}
		conn, err := dialer.DialContext(ctx, "tcp", address)
		if err != nil {
			log.Warn("health check connection failed", zap.String("address", address), zap.Error(err))
			return false
		}

		conn.Close()
		return true
	}
}

// ByName resolves the configured check kind.
func ByName(name string, log *zap.Logger) (Check, bool) {
	switch strings.ToLower(name) {
	case "", "http":
		return HTTP(nil, log), true
	case "tcp":
		return TCP(5*time.Second, log), true
	default:
		return nil, false
	}
}

func path(endpoint string) string {
	if endpoint == "" {
		return "/"
	}

	if !strings.HasPrefix(endpoint, "/") {
		return "/" + endpoint
	}

	return endpoint
}

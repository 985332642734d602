package callbacks

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/host"
	"github.com/simplecontainer/deployer/pkg/logger"
	"go.uber.org/zap"
)

// Webhook posts a JSON Payload to url. Non 2xx responses fail the run.
func Webhook(client *http.Client, url string, event Event, service string) Handler {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	return func(ctx context.Context, h *host.Host) error {
		var json = jsoniter.ConfigCompatibleWithStandardLibrary

		body, err := json.Marshal(Payload{
			Event:     event,
			Service:   service,
			Host:      h.Hostname,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
		if err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return err
		}

		req.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			return errors.Wrapf(err, "calling webhook %s", url)
		}
		defer resp.Body.Close()

		io.Copy(io.Discard, resp.Body)

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return errors.Errorf("webhook %s returned %s", url, resp.Status)
		}

		return nil
	}
}

// Log writes one info line per event.
func Log(log *zap.Logger, event Event, service string) Handler {
	log = logger.OrNop(log)

	return func(ctx context.Context, h *host.Host) error {
		log.Info(string(event), zap.String("service", service), zap.String("host", h.Hostname))
		return nil
	}
}

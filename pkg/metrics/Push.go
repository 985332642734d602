package metrics

import (
	"context"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Push sends the registry to a pushgateway under job.
func Push(ctx context.Context, url string, job string) error {
	if err := push.New(url, job).Gatherer(Registry).PushContext(ctx); err != nil {
		return errors.Wrapf(err, "pushing metrics to %s", url)
	}

	return nil
}

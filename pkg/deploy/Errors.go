package deploy

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/static"
)

var ERROR_NO_CANARY = errors.New("no canary is deployed")

func (e *HealthCheckError) Error() string {
	return fmt.Sprintf("failed to validate started container on %s:%d after %d attempts", e.Host, e.Port, e.Attempts)
}

func (e *HealthCheckError) ExitCode() int {
	return static.EXIT_FAILED_CONTAINER_VALIDATION
}

package service

import (
	"fmt"

	"github.com/pkg/errors"
)

var ERROR_NO_PORTS = errors.New("service declares no port bindings")
var ERROR_ENGINE_LIMIT = errors.New("value exceeds the engine limit of 9223372036854775807")

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid value for cgroup %s constraint: %v, value must be a between 0 and 18446744073709551615", e.Field, e.Value)
}

func (e *ConfigError) ExitCode() int {
	return e.Code
}

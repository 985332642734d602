package static

import "errors"

// Directory Constants
const (
	ROOTDIR      = ".deployer"
	CONFIGDIR    = "config"
	PROJECT_FILE = "deploy.yaml"
)

// Default Log Level
const DEFAULT_LOG_LEVEL = "info"

// Engine Constants
const (
	DEFAULT_ENGINE_PORT   = "2375"
	DEFAULT_SSH_PORT      = "22"
	DEFAULT_ENGINE_SOCKET = "/var/run/docker.sock"
	TRANSPORT_TCP         = "tcp"
	TRANSPORT_SSH         = "ssh"
)

// Label Constants
const (
	LABEL_SERVICE = "deployer.service"
)

// Env Interpolation Constants
const (
	PLACEHOLDER_HOSTNAME = "%DOCKER_HOSTNAME%"
	PLACEHOLDER_HOST_IP  = "%DOCKER_HOST_IP%"
)

// Deployment Defaults
const (
	DEFAULT_STOP_TIMEOUT      = 30
	DEFAULT_HEALTH_ENDPOINT   = "/"
	DEFAULT_HEALTH_WAIT       = 5
	DEFAULT_HEALTH_RETRIES    = 12
	DEFAULT_CHECK_INTERVAL    = 5
	DEFAULT_MAX_RETRY_COUNT   = 10
	DEFAULT_KEEP_CONTAINERS   = 2
	DEFAULT_SSH_KEEPALIVE     = 30
	MINIMUM_CANARY_HOST_COUNT = 3
)

// Exit Code Constants
const (
	EXIT_FAILURE                     = 1
	EXIT_FAILED_CONTAINER_VALIDATION = 100
	EXIT_INVALID_MEMORY              = 101
	EXIT_INVALID_CPU_SHARES          = 102
)

// ExitCoder is implemented by errors that terminate the process with a
// specific status.
type ExitCoder interface {
	ExitCode() int
}

// ExitCode returns the process exit status for err. Nil maps to 0, errors
// without an ExitCoder anywhere in their chain map to EXIT_FAILURE.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var coder ExitCoder
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}

	return EXIT_FAILURE
}

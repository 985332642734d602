package callbacks

import (
	"context"

	"github.com/simplecontainer/deployer/pkg/host"
)

type Event string

const (
	BEFORE_STOPPING_CONTAINER Event = "before_stopping_container"
	BEFORE_STARTING_CONTAINER Event = "before_starting_container"
	AFTER_STARTING_CONTAINER  Event = "after_starting_container"
	AFTER_HEALTH_CHECK_OK     Event = "after_health_check_ok"
)

var EVENTS = []Event{
	BEFORE_STOPPING_CONTAINER,
	BEFORE_STARTING_CONTAINER,
	AFTER_STARTING_CONTAINER,
	AFTER_HEALTH_CHECK_OK,
}

type Handler func(ctx context.Context, h *host.Host) error

// Registry holds the handlers of one deployment run in registration order.
type Registry struct {
	handlers map[Event][]Handler
}

// Payload is the body posted by webhook handlers.
type Payload struct {
	Event     Event  `json:"event"`
	Service   string `json:"service"`
	Host      string `json:"host"`
	Timestamp string `json:"timestamp"`
}

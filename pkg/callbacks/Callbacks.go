package callbacks

import (
	"context"

	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/host"
)

var ERROR_NIL_HANDLER = errors.New("callback handler is nil")

var aliases = map[string]Event{
	"before_stopping_image": BEFORE_STOPPING_CONTAINER,
	"after_image_started":   AFTER_STARTING_CONTAINER,
}

func New() *Registry {
	return &Registry{
		handlers: map[Event][]Handler{},
	}
}

// ParseEvent accepts the event names and their legacy aliases.
func ParseEvent(name string) (Event, error) {
	for _, event := range EVENTS {
		if string(event) == name {
			return event, nil
		}
	}

	if event, ok := aliases[name]; ok {
		return event, nil
	}

	return "", errors.Errorf("unknown callback event: %s", name)
}

func (r *Registry) On(event Event, handler Handler) error {
	if _, err := ParseEvent(string(event)); err != nil {
		return err
	}

	if handler == nil {
		return errors.Wrapf(ERROR_NIL_HANDLER, "registering %s", event)
	}

	r.handlers[event] = append(r.handlers[event], handler)
	return nil
}

// Emit runs the handlers of event in order and stops at the first failure.
func (r *Registry) Emit(ctx context.Context, event Event, h *host.Host) error {
	if r == nil {
		return nil
	}

	for i, handler := range r.handlers[event] {
		if err := handler(ctx, h); err != nil {
			return errors.Wrapf(err, "%s callback #%d on %s", event, i+1, h.Hostname)
		}
	}

	return nil
}

func (r *Registry) Count(event Event) int {
	if r == nil {
		return 0
	}

	return len(r.handlers[event])
}

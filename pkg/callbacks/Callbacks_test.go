package callbacks

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/host"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newHost(t *testing.T) *host.Host {
	h, err := host.New("node1.example.com")
	require.NoError(t, err)

	return h
}

func TestOnRejects(t *testing.T) {
	registry := New()

	assert.Error(t, registry.On("after_lunch", func(ctx context.Context, h *host.Host) error { return nil }))
	assert.ErrorIs(t, registry.On(AFTER_HEALTH_CHECK_OK, nil), ERROR_NIL_HANDLER)
	assert.Equal(t, 0, registry.Count(AFTER_HEALTH_CHECK_OK))
}

func TestParseEvent(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		wanted Event
		err    bool
	}{
		{"Canonical", "before_starting_container", BEFORE_STARTING_CONTAINER, false},
		{"Alias stopping", "before_stopping_image", BEFORE_STOPPING_CONTAINER, false},
		{"Alias started", "after_image_started", AFTER_STARTING_CONTAINER, false},
		{"Unknown", "during_deploy", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			event, err := ParseEvent(tc.input)

			if tc.err {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wanted, event)
		})
	}
}

func TestEmitOrderAndAbort(t *testing.T) {
	registry := New()
	var calls []int

	for i := 1; i <= 3; i++ {
		i := i
		require.NoError(t, registry.On(BEFORE_STOPPING_CONTAINER, func(ctx context.Context, h *host.Host) error {
			calls = append(calls, i)
			if i == 2 {
				return errors.New("load balancer refused")
			}

			return nil
		}))
	}

	err := registry.Emit(context.Background(), BEFORE_STOPPING_CONTAINER, newHost(t))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "load balancer refused")
	assert.Contains(t, err.Error(), "node1.example.com")
	assert.Equal(t, []int{1, 2}, calls)

	assert.NoError(t, registry.Emit(context.Background(), AFTER_HEALTH_CHECK_OK, newHost(t)))

	var empty *Registry
	assert.NoError(t, empty.Emit(context.Background(), AFTER_HEALTH_CHECK_OK, newHost(t)))
}

func TestWebhook(t *testing.T) {
	var received Payload

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		jsoniter.Unmarshal(body, &received)

		if r.URL.Path == "/fail" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := Webhook(server.Client(), server.URL+"/ok", AFTER_HEALTH_CHECK_OK, "web")(context.Background(), newHost(t))
	require.NoError(t, err)

	assert.Equal(t, AFTER_HEALTH_CHECK_OK, received.Event)
	assert.Equal(t, "web", received.Service)
	assert.Equal(t, "node1.example.com", received.Host)
	assert.NotEmpty(t, received.Timestamp)

	err = Webhook(server.Client(), server.URL+"/fail", AFTER_HEALTH_CHECK_OK, "web")(context.Background(), newHost(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestLog(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	require.NoError(t, Log(zap.New(core), AFTER_STARTING_CONTAINER, "web")(context.Background(), newHost(t)))

	entries := logs.FilterMessage("after_starting_container").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "node1.example.com", entries[0].ContextMap()["host"])
}

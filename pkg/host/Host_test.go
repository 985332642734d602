package host

import (
	"context"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/engine"
	mock_engine "github.com/simplecontainer/deployer/pkg/engine/mock"
	testify "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestNew(t *testing.T) {
	type Wanted struct {
		hostname  string
		port      string
		transport string
		user      string
		sshPort   string
		err       bool
	}

	testCases := []struct {
		name    string
		address string
		wanted  Wanted
	}{
		{"Hostname only", "node1.example.com", Wanted{hostname: "node1.example.com", port: "2375", transport: "tcp"}},
		{"Hostname and port", "node1.example.com:4243", Wanted{hostname: "node1.example.com", port: "4243", transport: "tcp"}},
		{"Ssh", "ssh://deploy@node2:2222", Wanted{hostname: "node2", port: "2375", transport: "ssh", user: "deploy", sshPort: "2222"}},
		{"Ssh without user", "ssh://node3", Wanted{hostname: "node3", port: "2375", transport: "ssh"}},
		{"Empty", "", Wanted{err: true}},
		{"Missing hostname", ":2375", Wanted{err: true}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, err := New(tc.address)

			if tc.wanted.err {
				testify.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, h.Hostname, tc.wanted.hostname)
			assert.Equal(t, h.Port, tc.wanted.port)
			assert.Equal(t, h.Transport, tc.wanted.transport)
			assert.Equal(t, h.Tunnel.User, tc.wanted.user)
			assert.Equal(t, h.Tunnel.Port, tc.wanted.sshPort)
		})
	}
}

func TestClientFactory(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_engine.NewMockClient(ctrl)

	var endpoints []engine.Endpoint

	h, err := New("node1:4243", WithFactory(func(endpoint engine.Endpoint) (engine.Client, error) {
		endpoints = append(endpoints, endpoint)
		return client, nil
	}))
	require.NoError(t, err)

	first, err := h.Client()
	require.NoError(t, err)

	second, err := h.Client()
	require.NoError(t, err)

	testify.Same(t, first, second)
	testify.Equal(t, []engine.Endpoint{{Address: "tcp://node1:4243"}}, endpoints)

	client.EXPECT().Close().Return(nil)
	testify.NoError(t, h.Close())
}

func TestSshClientRequiresTunnel(t *testing.T) {
	h, err := New("ssh://node1", WithFactory(func(endpoint engine.Endpoint) (engine.Client, error) {
		return nil, errors.New("unreachable")
	}))
	require.NoError(t, err)

	_, err = h.Client()
	testify.ErrorIs(t, err, ERROR_TUNNEL_CLOSED)
}

func TestCurrentTagsFor(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_engine.NewMockClient(ctrl)

	client.EXPECT().ListContainers(gomock.Any(), false).Return([]engine.Container{
		{ID: "a", Image: "registry.example.com:5000/web:1.0"},
		{ID: "b", Image: "registry.example.com:5000/web:1.0"},
		{ID: "c", Image: "registry.example.com:5000/worker:7"},
		{ID: "d", Image: "registry.example.com:5000/web"},
	}, nil)

	h, err := New("node1", WithClient(client))
	require.NoError(t, err)

	tags, err := h.CurrentTagsFor(context.Background(), "registry.example.com:5000/web")
	require.NoError(t, err)
	testify.Equal(t, []string{"1.0", "1.0", "latest"}, tags)

	client.EXPECT().ListContainers(gomock.Any(), false).Return(nil, nil)

	tags, err = h.CurrentTagsFor(context.Background(), "web")
	require.NoError(t, err)
	testify.Empty(t, tags)
}

func TestFindContainers(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_engine.NewMockClient(ctrl)

	containers := []engine.Container{
		{ID: "a", Names: []string{"/web-1"}, Ports: []engine.Port{{PrivatePort: 80, PublicPort: 8080, Type: "tcp"}}, Labels: map[string]string{"deployer.service": "web"}},
		{ID: "b", Names: []string{"/web-2"}, Ports: []engine.Port{{PrivatePort: 80, PublicPort: 8080, Type: "udp"}}},
		{ID: "c", Names: []string{"/db"}, Ports: []engine.Port{{PrivatePort: 5432, PublicPort: 5432, Type: "tcp"}}},
	}

	client.EXPECT().ListContainers(gomock.Any(), false).Return(containers, nil).Times(2)
	client.EXPECT().ListContainers(gomock.Any(), true).Return(containers, nil)

	h, err := New("node1", WithClient(client))
	require.NoError(t, err)

	byPort, err := h.FindContainersByPublicPort(context.Background(), 8080, "tcp")
	require.NoError(t, err)
	testify.Len(t, byPort, 1)
	testify.Equal(t, "a", byPort[0].ID)

	byName, err := h.FindContainersByName(context.Background(), "web")
	require.NoError(t, err)
	testify.Len(t, byName, 2)

	byLabel, err := h.FindContainersByLabel(context.Background(), "deployer.service", "web", true)
	require.NoError(t, err)
	testify.Len(t, byLabel, 1)
}

func TestOldContainersForPort(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_engine.NewMockClient(ctrl)

	client.EXPECT().ListContainers(gomock.Any(), true).Return([]engine.Container{
		{ID: "running", Status: "Up 2 hours", State: "running"},
		{ID: "old", Status: "Exited (0) 3 days ago", State: "exited"},
		{ID: "other", Status: "Exited (137) 1 day ago", State: "exited"},
	}, nil)

	client.EXPECT().InspectContainer(gomock.Any(), "old").Return(engine.ContainerDetails{
		PortBindings: map[string][]string{"80/tcp": {"8080"}},
	}, nil)
	client.EXPECT().InspectContainer(gomock.Any(), "other").Return(engine.ContainerDetails{
		PortBindings: map[string][]string{"80/tcp": {"9090"}},
	}, nil)

	h, err := New("node1", WithClient(client))
	require.NoError(t, err)

	old, err := h.OldContainersForPort(context.Background(), 8080)
	require.NoError(t, err)
	testify.Len(t, old, 1)
	testify.Equal(t, "old", old[0].ID)
}

func TestOpenTcpRunsDirectly(t *testing.T) {
	h, err := New("node1")
	require.NoError(t, err)

	called := false
	err = h.Open(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})

	require.NoError(t, err)
	testify.True(t, called)
}

func TestPsPropagatesEngineErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_engine.NewMockClient(ctrl)

	client.EXPECT().ListContainers(gomock.Any(), false).Return(nil, errors.New("daemon unavailable"))

	h, err := New("node1", WithClient(client))
	require.NoError(t, err)

	_, err = h.Ps(context.Background(), false)
	require.Error(t, err)
	testify.Contains(t, err.Error(), "node1")
	testify.Contains(t, err.Error(), "daemon unavailable")
}

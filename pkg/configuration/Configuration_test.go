package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
	"github.com/simplecontainer/deployer/pkg/callbacks"
	"github.com/simplecontainer/deployer/pkg/static"
	"github.com/stretchr/testify/require"
)

const project = `
service:
  name: web
  image: registry.example.com/web
  tag: "1.0"
  env:
    MODE: blue
  ports:
    - hostPort: 8080
      containerPort: 80
defaults:
  hosts:
    - node1
    - node2
  env:
    REGION: eu
    LEVEL: info
  health:
    endpoint: /health
    retries: 3
  ssh:
    user: deploy
environments:
  production:
    hosts:
      - ssh://prod1
      - prod2:2376
    parallel: true
    env:
      LEVEL: warn
    callbacks:
      - event: after_health_check_ok
        type: webhook
        url: http://hooks.example.com/deployed
      - event: before_stopping_image
        type: log
  staging:
    tag: "2.0-rc1"
    restartPolicy:
      name: always
  broken:
    health:
      type: grpc
`

func load(t *testing.T) *Project {
	p, err := FromYAML([]byte(project))
	require.NoError(t, err)

	return p
}

func TestResolve(t *testing.T) {
	type Wanted struct {
		hosts    []string
		tag      string
		parallel bool
		env      map[string]string
		retries  int
		wait     int
	}

	type Parameters struct {
		environment string
		overrides   Overrides
	}

	testCases := []struct {
		name       string
		wanted     Wanted
		parameters Parameters
	}{
		{
			"Production overrides defaults key-wise",
			Wanted{
				hosts:    []string{"ssh://prod1", "prod2:2376"},
				parallel: true,
				env:      map[string]string{"REGION": "eu", "LEVEL": "warn"},
				retries:  3,
				wait:     static.DEFAULT_HEALTH_WAIT,
			},
			Parameters{environment: "production"},
		},
		{
			"Staging inherits default hosts",
			Wanted{
				hosts:   []string{"node1", "node2"},
				tag:     "2.0-rc1",
				env:     map[string]string{"REGION": "eu", "LEVEL": "info"},
				retries: 3,
				wait:    static.DEFAULT_HEALTH_WAIT,
			},
			Parameters{environment: "staging"},
		},
		{
			"Flags win over the file",
			Wanted{
				hosts:    []string{"node9"},
				tag:      "3.0",
				parallel: true,
				env:      map[string]string{"REGION": "eu", "LEVEL": "info"},
				retries:  3,
				wait:     static.DEFAULT_HEALTH_WAIT,
			},
			Parameters{environment: "staging", overrides: Overrides{Tag: "3.0", Hosts: []string{"node9"}, Parallel: true}},
		},
		{
			"Empty name resolves defaults",
			Wanted{
				hosts:   []string{"node1", "node2"},
				env:     map[string]string{"REGION": "eu", "LEVEL": "info"},
				retries: 3,
				wait:    static.DEFAULT_HEALTH_WAIT,
			},
			Parameters{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			environment, err := load(t).Resolve(tc.parameters.environment, tc.parameters.overrides)
			require.NoError(t, err)

			assert.Equal(t, tc.wanted.hosts, environment.Settings.Hosts)
			assert.Equal(t, tc.wanted.tag, environment.Settings.Tag)
			assert.Equal(t, tc.wanted.parallel, environment.Settings.Parallel)
			assert.Equal(t, tc.wanted.env, environment.Settings.Env)
			assert.Equal(t, tc.wanted.retries, environment.Settings.Health.Retries)
			assert.Equal(t, tc.wanted.wait, environment.Settings.Health.Wait)
			assert.Equal(t, "/health", environment.Settings.Health.Endpoint)
			assert.Equal(t, "deploy", environment.Settings.Ssh.User)
			assert.Equal(t, static.DEFAULT_ENGINE_SOCKET, environment.Settings.Ssh.RemoteSocket)
		})
	}
}

func TestResolveDoesNotMutateProject(t *testing.T) {
	p := load(t)

	_, err := p.Resolve("production", Overrides{})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"LEVEL": "warn"}, p.Environments["production"].Env)
	assert.Equal(t, map[string]string{"REGION": "eu", "LEVEL": "info"}, p.Defaults.Env)
}

func TestResolveErrors(t *testing.T) {
	p := load(t)

	_, err := p.Resolve("qa", Overrides{})
	require.ErrorIs(t, err, ERROR_UNKNOWN_ENVIRONMENT)
	require.Contains(t, err.Error(), "broken, production, staging")

	_, err = p.Resolve("broken", Overrides{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Health.Type failed oneof check")

	empty, err := FromYAML([]byte("service:\n  name: web\n  image: web\n"))
	require.NoError(t, err)

	_, err = empty.Resolve("", Overrides{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "Hosts failed required check")
}

func TestWebhookNeedsUrl(t *testing.T) {
	settings := Builtin()
	settings.Hosts = []string{"node1"}
	settings.Callbacks = []Callback{{Event: "after_health_check_ok", Type: "webhook"}}

	require.ErrorIs(t, Validate(settings), ERROR_WEBHOOK_URL)
}

func TestEnvironmentBuilders(t *testing.T) {
	environment, err := load(t).Resolve("production", Overrides{Tag: "1.1"})
	require.NoError(t, err)

	svc, err := environment.Service()
	require.NoError(t, err)

	assert.Equal(t, "registry.example.com/web:1.1", svc.ImageRef())
	assert.Equal(t, map[string]string{"MODE": "blue", "REGION": "eu", "LEVEL": "warn"}, svc.Env)

	g, err := environment.GroupWith(nil, nil)
	require.NoError(t, err)
	require.Equal(t, 2, g.Len())

	assert.Equal(t, static.TRANSPORT_SSH, g.Hosts[0].Transport)
	assert.Equal(t, "deploy", g.Hosts[0].Tunnel.User)
	assert.Equal(t, static.DEFAULT_SSH_PORT, g.Hosts[0].Tunnel.Port)
	assert.Equal(t, "2376", g.Hosts[1].Port)

	options, err := environment.Options(nil)
	require.NoError(t, err)

	assert.Equal(t, 3, options.Retries)
	assert.Equal(t, time.Duration(static.DEFAULT_HEALTH_WAIT)*time.Second, options.WaitTime)
	assert.Equal(t, time.Duration(static.DEFAULT_CHECK_INTERVAL)*time.Second, options.CheckInterval)
	assert.Equal(t, true, options.Parallel)
	require.Nil(t, options.RestartPolicy)

	registry, err := environment.Callbacks(svc, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, registry.Count(callbacks.AFTER_HEALTH_CHECK_OK))
	assert.Equal(t, 1, registry.Count(callbacks.BEFORE_STOPPING_CONTAINER))
}

func TestRestartPolicyFromSettings(t *testing.T) {
	environment, err := load(t).Resolve("staging", Overrides{})
	require.NoError(t, err)

	options, err := environment.Options(nil)
	require.NoError(t, err)

	require.NotNil(t, options.RestartPolicy)
	assert.Equal(t, "always", options.RestartPolicy.Name)
}

func TestRestartPolicyKeepsExplicitZero(t *testing.T) {
	p, err := FromYAML([]byte(`
service:
  name: web
  image: web
defaults:
  hosts: [node1]
  restartPolicy:
    name: on-failure
    maxRetryCount: 5
environments:
  never:
    restartPolicy:
      name: on-failure
      maxRetryCount: 0
  unset:
    restartPolicy:
      name: on-failure
  inherited: {}
`))
	require.NoError(t, err)

	testCases := []struct {
		name        string
		environment string
		wanted      int
	}{
		{"Explicit zero", "never", 0},
		{"Unset count", "unset", static.DEFAULT_MAX_RETRY_COUNT},
		{"Inherited from defaults", "inherited", 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			environment, err := p.Resolve(tc.environment, Overrides{})
			require.NoError(t, err)

			options, err := environment.Options(nil)
			require.NoError(t, err)

			require.NotNil(t, options.RestartPolicy)
			require.NotNil(t, options.RestartPolicy.MaxRetryCount)
			assert.Equal(t, tc.wanted, *options.RestartPolicy.MaxRetryCount)
		})
	}

	assert.Equal(t, 5, *p.Defaults.RestartPolicy.MaxRetryCount)
}

func TestLoad(t *testing.T) {
	directory := t.TempDir()

	require.NoError(t, os.WriteFile(filepath.Join(directory, "web.env"), []byte("FROM_FILE=yes\nMODE=green\n"), 0600))
	require.NoError(t, os.WriteFile(filepath.Join(directory, static.PROJECT_FILE), []byte(`
service:
  name: web
  image: web
  envFile: web.env
  env:
    MODE: blue
defaults:
  hosts: [node1]
`), 0600))

	p, err := Load(filepath.Join(directory, static.PROJECT_FILE))
	require.NoError(t, err)
	assert.Equal(t, directory, p.Directory)

	environment, err := p.Resolve("", Overrides{})
	require.NoError(t, err)

	svc, err := environment.Service()
	require.NoError(t, err)

	assert.Equal(t, "yes", svc.Env["FROM_FILE"])
	assert.Equal(t, "blue", svc.Env["MODE"])

	_, err = Load(filepath.Join(directory, "missing.yaml"))
	require.Error(t, err)
}

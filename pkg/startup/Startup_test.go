package startup

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/simplecontainer/deployer/pkg/static"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) Flags {
	flags := pflag.NewFlagSet("deployer", pflag.ContinueOnError)
	SetFlags(flags)

	require.NoError(t, flags.Parse(args))

	v, err := Bind(flags)
	require.NoError(t, err)

	return Read(v)
}

func TestRead(t *testing.T) {
	type Wanted struct {
		flags Flags
	}

	type Parameters struct {
		args []string
		env  map[string]string
	}

	testCases := []struct {
		name       string
		wanted     Wanted
		parameters Parameters
	}{
		{
			"Defaults",
			Wanted{
				flags: Flags{Log: static.DEFAULT_LOG_LEVEL, Hosts: []string{}},
			},
			Parameters{},
		},
		{
			"Command line",
			Wanted{
				flags: Flags{Environment: "production", Log: "debug", Tag: "2.0", Hosts: []string{"node1", "node2"}, Parallel: true, Yes: true},
			},
			Parameters{
				args: []string{"-e", "production", "--log", "debug", "-t", "2.0", "--hosts", "node1,node2", "--parallel", "-y"},
			},
		},
		{
			"Environment variables",
			Wanted{
				flags: Flags{Log: static.DEFAULT_LOG_LEVEL, Tag: "3.0", Hosts: []string{"node3", "node4"}, Pushgateway: "http://gateway:9091"},
			},
			Parameters{
				env: map[string]string{
					"DEPLOYER_TAG":         "3.0",
					"DEPLOYER_HOSTS":       "node3,node4",
					"DEPLOYER_PUSHGATEWAY": "http://gateway:9091",
				},
			},
		},
		{
			"Command line wins over environment variables",
			Wanted{
				flags: Flags{Log: static.DEFAULT_LOG_LEVEL, Tag: "4.0", Hosts: []string{}},
			},
			Parameters{
				args: []string{"--tag", "4.0"},
				env:  map[string]string{"DEPLOYER_TAG": "3.0"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for key, value := range tc.parameters.env {
				t.Setenv(key, value)
			}

			assert.Equal(t, tc.wanted.flags, parse(t, tc.parameters.args...))
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")

	require.NoError(t, os.WriteFile(path, []byte(`
service:
  name: web
  image: web
defaults:
  hosts: [node1]
environments:
  production:
    hosts: [prod1, prod2]
`), 0600))

	environment, err := Load(Flags{Config: path, Environment: "production", Tag: "9"})
	require.NoError(t, err)

	assert.Equal(t, []string{"prod1", "prod2"}, environment.Settings.Hosts)
	assert.Equal(t, "9", environment.Settings.Tag)

	_, err = Load(Flags{Config: filepath.Join(t.TempDir(), "missing.yaml")})
	require.Error(t, err)
}

func TestProjectPath(t *testing.T) {
	directory := t.TempDir()
	t.Setenv("HOME", directory)
	t.Chdir(directory)

	_, err := ProjectPath("")
	require.ErrorIs(t, err, ERROR_NO_PROJECT)

	require.NoError(t, os.WriteFile(static.PROJECT_FILE, []byte("service: {}\n"), 0600))

	path, err := ProjectPath("")
	require.NoError(t, err)
	assert.Equal(t, static.PROJECT_FILE, path)

	path, err = ProjectPath("/etc/deploy.yaml")
	require.NoError(t, err)
	assert.Equal(t, "/etc/deploy.yaml", path)
}

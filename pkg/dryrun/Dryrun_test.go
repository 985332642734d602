package dryrun

import (
	"testing"

	"github.com/simplecontainer/deployer/pkg/group"
	"github.com/simplecontainer/deployer/pkg/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	type Parameters struct {
		hosts []string
		build func(*service.Service)
	}

	testCases := []struct {
		name       string
		parameters Parameters
		wanted     string
	}{
		{
			"Nothing present",
			Parameters{hosts: []string{"example.com"}, build: func(*service.Service) {}},
			"docker -H=tcp://example.com:2375 run",
		},
		{
			"Environment variables",
			Parameters{hosts: []string{"example.com"}, build: func(s *service.Service) {
				s.AddEnvVars(map[string]string{"hello": "world", "MOTD": "it's\nfine"})
			}},
			"docker -H=tcp://example.com:2375 run -e MOTD='it'\\''sfine' -e hello='world'",
		},
		{
			"Ports volumes image and command",
			Parameters{hosts: []string{"example.com:4243"}, build: func(s *service.Service) {
				s.Image = "registry.example.com/web"
				s.Tag = "1.0"
				s.Command = []string{"bin/server", "--greeting", "hi there"}
				s.AddPortBinding(23, 32, "foo", "")
				s.AddPortBinding(8443, 443, "tcp", "0.0.0.0")
				s.AddVolume("/srv", "/data")
			}},
			"docker -H=tcp://example.com:4243 run -p 23:32/foo -p 0.0.0.0:8443:443/tcp -v /srv:/data registry.example.com/web:1.0 bin/server --greeting 'hi there'",
		},
		{
			"Several hosts",
			Parameters{hosts: []string{"node1", "ssh://deploy@node2"}, build: func(*service.Service) {}},
			"docker -H=tcp://node1:2375 run" + SEPARATOR + "docker -H=ssh://deploy@node2 run",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := group.FromAddresses(tc.parameters.hosts, nil)
			require.NoError(t, err)

			svc := service.New("web")
			tc.parameters.build(svc)

			assert.Equal(t, tc.wanted, Render(g, svc))
		})
	}
}

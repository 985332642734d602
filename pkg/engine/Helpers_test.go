package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageTag(t *testing.T) {
	tests := []struct {
		image    string
		expected string
	}{
		{"quay.io/example/rubicon:5f23ac3", "5f23ac3"},
		{"redis", "latest"},
		{"redis:7", "7"},
		{"registry.local:5000/team/redis", "latest"},
		{"registry.local:5000/team/redis:1.2", "1.2"},
		{"redis:7@sha256:abcdef", "7"},
	}

	for _, tc := range tests {
		t.Run(tc.image, func(t *testing.T) {
			assert.Equal(t, tc.expected, ImageTag(tc.image))
		})
	}
}

func TestExited(t *testing.T) {
	assert.True(t, Container{Status: "Exited (0) 3 hours ago"}.Exited())
	assert.True(t, Container{Status: "Exit 137"}.Exited())
	assert.True(t, Container{State: "exited"}.Exited())
	assert.False(t, Container{State: "running", Status: "Up 13 seconds"}.Exited())
}

func TestPublishesPort(t *testing.T) {
	container := Container{Ports: []Port{{PrivatePort: 80, PublicPort: 8484, Type: "tcp"}}}

	assert.True(t, container.PublishesPort(8484, "tcp"))
	assert.False(t, container.PublishesPort(8484, "udp"))
	assert.False(t, container.PublishesPort(80, "tcp"))
}

func TestListensOn(t *testing.T) {
	details := ContainerDetails{PortBindings: map[string][]string{"80/tcp": {"8484"}}}

	assert.True(t, details.ListensOn("8484"))
	assert.False(t, details.ListensOn("80"))
}

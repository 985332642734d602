package group

import (
	"context"

	"github.com/simplecontainer/deployer/pkg/host"
	"go.uber.org/zap"
)

// Group is the ordered, non-empty set of hosts a service is deployed to.
type Group struct {
	Hosts  []*host.Host
	logger *zap.Logger
}

type Visit func(ctx context.Context, h *host.Host) error

// TagAssignment pairs a host with the tag of the image it runs.
type TagAssignment struct {
	Host *host.Host
	Tag  string
}

type DuplicateHostsError struct {
	Hostnames []string
}

type MultipleTagsError struct {
	Hosts map[string][]string
}

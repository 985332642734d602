package formaters

import "github.com/simplecontainer/deployer/pkg/engine"

// HostContainer is one row of the running containers table.
type HostContainer struct {
	Host      string
	Container engine.Container
}

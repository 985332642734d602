package engine

import "time"

// Container is a single entry of the engine process list. It is a snapshot
// and goes stale as soon as the remote host changes.
type Container struct {
	ID      string
	Names   []string
	Image   string
	Ports   []Port
	Labels  map[string]string
	Status  string
	State   string
	Created int64
}

type Port struct {
	IP          string
	PrivatePort uint16
	PublicPort  uint16
	Type        string
}

// ContainerDetails is the subset of an inspect response the orchestrator
// reads back.
type ContainerDetails struct {
	ID           string
	Name         string
	Image        string
	Created      time.Time
	Running      bool
	Status       string
	Env          []string
	Labels       map[string]string
	Binds        []string
	PortBindings map[string][]string
	NetworkMode  string
}

type ImageDetails struct {
	ID       string
	RepoTags []string
	Created  string
}

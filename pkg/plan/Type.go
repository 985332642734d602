package plan

// Snapshot is the part of a container configuration a plan compares.
type Snapshot struct {
	Image       string            `diff:"image" json:"image"`
	Env         map[string]string `diff:"env" json:"env"`
	Labels      map[string]string `diff:"labels" json:"labels"`
	Binds       []string          `diff:"binds" json:"binds"`
	Ports       []string          `diff:"ports" json:"ports"`
	NetworkMode string            `diff:"networkMode" json:"networkMode"`
}

type Change struct {
	Host string      `json:"host"`
	Type string      `json:"type"`
	Path string      `json:"path"`
	From interface{} `json:"from"`
	To   interface{} `json:"to"`
}

// Plan lists, per host, what a deployment would change.
type Plan struct {
	Service string   `json:"service"`
	Changes []Change `json:"changes"`
}

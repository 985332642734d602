package configuration

import (
	v1 "github.com/simplecontainer/deployer/pkg/definitions/v1"
)

// Project is the content of deploy.yaml: one service, shared defaults and
// named environments layered on top of them.
type Project struct {
	Service      v1.ServiceDefinition `yaml:"service"`
	Defaults     Settings             `yaml:"defaults"`
	Environments map[string]Settings  `yaml:"environments"`

	// Directory holding the project file, relative envFile paths resolve
	// against it.
	Directory string `yaml:"-"`
}

type Settings struct {
	Hosts          []string          `yaml:"hosts" validate:"required,min=1,dive,required"`
	Tag            string            `yaml:"tag"`
	Parallel       bool              `yaml:"parallel"`
	Pull           bool              `yaml:"pull"`
	StopTimeout    int               `yaml:"stopTimeout" validate:"gte=0"`
	CheckInterval  int               `yaml:"checkInterval" validate:"gte=0"`
	KeepContainers int               `yaml:"keepContainers" validate:"gte=0"`
	Nameserver     string            `yaml:"nameserver" validate:"omitempty,hostname_port"`
	Pushgateway    string            `yaml:"pushgateway" validate:"omitempty,url"`
	Env            map[string]string `yaml:"env"`
	Labels         map[string]string `yaml:"labels"`
	Health         Health            `yaml:"health"`
	RestartPolicy  *RestartPolicy    `yaml:"restartPolicy"`
	Ssh            Ssh               `yaml:"ssh"`
	TLS            *TLS              `yaml:"tls"`
	Registry       Registry          `yaml:"registry"`
	Callbacks      []Callback        `yaml:"callbacks" validate:"dive"`
}

type Health struct {
	Type     string `yaml:"type" validate:"omitempty,oneof=http tcp"`
	Endpoint string `yaml:"endpoint"`
	Port     int    `yaml:"port" validate:"gte=0,lte=65535"`
	Wait     int    `yaml:"wait" validate:"gte=0"`
	Retries  int    `yaml:"retries" validate:"gte=0"`
}

// RestartPolicy is taken whole from the most specific layer that sets it,
// so an explicit maxRetryCount of 0 survives merging.
type RestartPolicy struct {
	Name          string `yaml:"name"`
	MaxRetryCount *int   `yaml:"maxRetryCount" validate:"omitempty,gte=0"`
}

type Ssh struct {
	User                  string   `yaml:"user"`
	Port                  string   `yaml:"port" validate:"omitempty,numeric"`
	IdentityFiles         []string `yaml:"identityFiles"`
	KnownHosts            string   `yaml:"knownHosts"`
	InsecureIgnoreHostKey bool     `yaml:"insecureIgnoreHostKey"`
	RemoteSocket          string   `yaml:"remoteSocket"`
	KeepAlive             int      `yaml:"keepAlive" validate:"gte=0"`
	Timeout               int      `yaml:"timeout" validate:"gte=0"`
}

type TLS struct {
	CACert string `yaml:"caCert" validate:"required"`
	Cert   string `yaml:"cert" validate:"required"`
	Key    string `yaml:"key" validate:"required"`
}

type Registry struct {
	Insecure bool `yaml:"insecure"`
}

type Callback struct {
	Event string `yaml:"event" validate:"required"`
	Type  string `yaml:"type" validate:"required,oneof=webhook log"`
	URL   string `yaml:"url" validate:"omitempty,url"`
}

// Overrides carries command line values that win over the project file.
type Overrides struct {
	Tag         string
	Hosts       []string
	Parallel    bool
	Pushgateway string
}

// Environment is one resolved environment. It is built by Resolve and not
// modified afterwards.
type Environment struct {
	Name       string
	Directory  string
	Definition v1.ServiceDefinition
	Settings   Settings
}

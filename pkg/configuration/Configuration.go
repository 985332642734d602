package configuration

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"dario.cat/mergo"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/static"
	"gopkg.in/yaml.v3"
)

// Builtin holds the values used when neither the environment nor the
// project defaults set them.
func Builtin() Settings {
	return Settings{
		StopTimeout:    static.DEFAULT_STOP_TIMEOUT,
		CheckInterval:  static.DEFAULT_CHECK_INTERVAL,
		KeepContainers: static.DEFAULT_KEEP_CONTAINERS,
		Health: Health{
			Type:     "http",
			Endpoint: static.DEFAULT_HEALTH_ENDPOINT,
			Wait:     static.DEFAULT_HEALTH_WAIT,
			Retries:  static.DEFAULT_HEALTH_RETRIES,
		},
		Ssh: Ssh{
			Port:         static.DEFAULT_SSH_PORT,
			RemoteSocket: static.DEFAULT_ENGINE_SOCKET,
			KeepAlive:    static.DEFAULT_SSH_KEEPALIVE,
		},
	}
}

func Load(path string) (*Project, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading project file %s", path)
	}

	project, err := FromYAML(bytes)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing project file %s", path)
	}

	project.Directory = filepath.Dir(path)
	return project, nil
}

func FromYAML(bytes []byte) (*Project, error) {
	project := &Project{}

	if err := yaml.Unmarshal(bytes, project); err != nil {
		return nil, err
	}

	return project, nil
}

// Names lists the environments of the project in alphabetical order.
func (p *Project) Names() []string {
	names := make([]string, 0, len(p.Environments))

	for name := range p.Environments {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Resolve layers the named environment over the project defaults and the
// builtin values, then applies overrides. An empty name resolves the
// defaults alone.
func (p *Project) Resolve(name string, overrides Overrides) (*Environment, error) {
	settings := Settings{}
	policy := restartPolicy(p.Defaults.RestartPolicy)

	if name != "" {
		selected, ok := p.Environments[name]
		if !ok {
			return nil, errors.Wrapf(ERROR_UNKNOWN_ENVIRONMENT, "%s (known: %s)", name, strings.Join(p.Names(), ", "))
		}

		settings = clone(selected)

		if selected.RestartPolicy != nil {
			policy = restartPolicy(selected.RestartPolicy)
		}
	}

	if err := mergo.Merge(&settings, clone(p.Defaults)); err != nil {
		return nil, errors.Wrap(err, "merging project defaults")
	}

	if err := mergo.Merge(&settings, Builtin()); err != nil {
		return nil, errors.Wrap(err, "merging builtin defaults")
	}

	settings.RestartPolicy = policy
	apply(&settings, overrides)

	if err := Validate(settings); err != nil {
		return nil, err
	}

	return &Environment{
		Name:       name,
		Directory:  p.Directory,
		Definition: p.Service,
		Settings:   settings,
	}, nil
}

func Validate(settings Settings) error {
	err := validator.New(validator.WithRequiredStructEnabled()).Struct(settings)
	if err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			return fmt.Errorf("invalid configuration: %s failed %s check", invalid[0].Namespace(), invalid[0].Tag())
		}

		return err
	}

	for _, callback := range settings.Callbacks {
		if callback.Type == "webhook" && callback.URL == "" {
			return errors.Wrapf(ERROR_WEBHOOK_URL, "event %s", callback.Event)
		}
	}

	return nil
}

func apply(settings *Settings, overrides Overrides) {
	if overrides.Tag != "" {
		settings.Tag = overrides.Tag
	}

	if len(overrides.Hosts) > 0 {
		settings.Hosts = append([]string(nil), overrides.Hosts...)
	}

	if overrides.Parallel {
		settings.Parallel = true
	}

	if overrides.Pushgateway != "" {
		settings.Pushgateway = overrides.Pushgateway
	}
}

// clone copies the maps and slices mergo would otherwise write into.
func clone(settings Settings) Settings {
	settings.Hosts = append([]string(nil), settings.Hosts...)
	settings.Callbacks = append([]Callback(nil), settings.Callbacks...)
	settings.Ssh.IdentityFiles = append([]string(nil), settings.Ssh.IdentityFiles...)
	settings.Env = copyMap(settings.Env)
	settings.Labels = copyMap(settings.Labels)

	if settings.TLS != nil {
		tls := *settings.TLS
		settings.TLS = &tls
	}

	settings.RestartPolicy = restartPolicy(settings.RestartPolicy)
	return settings
}

func restartPolicy(policy *RestartPolicy) *RestartPolicy {
	if policy == nil {
		return nil
	}

	copied := *policy
	if policy.MaxRetryCount != nil {
		count := *policy.MaxRetryCount
		copied.MaxRetryCount = &count
	}

	return &copied
}

func copyMap(in map[string]string) map[string]string {
	if in == nil {
		return nil
	}

	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}

	return out
}

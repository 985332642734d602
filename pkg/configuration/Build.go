package configuration

import (
	"path/filepath"
	"time"

	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/callbacks"
	"github.com/simplecontainer/deployer/pkg/deploy"
	"github.com/simplecontainer/deployer/pkg/dns"
	"github.com/simplecontainer/deployer/pkg/engine"
	"github.com/simplecontainer/deployer/pkg/engine/docker"
	"github.com/simplecontainer/deployer/pkg/group"
	"github.com/simplecontainer/deployer/pkg/health"
	"github.com/simplecontainer/deployer/pkg/host"
	"github.com/simplecontainer/deployer/pkg/registry"
	"github.com/simplecontainer/deployer/pkg/service"
	"github.com/simplecontainer/deployer/pkg/tunnel"
	"go.uber.org/zap"
)

// Service builds the service of the environment, with the environment tag,
// env and labels applied over the definition.
func (e *Environment) Service() (*service.Service, error) {
	definition := e.Definition

	if e.Settings.Tag != "" {
		definition.Tag = e.Settings.Tag
	}

	if definition.EnvFile != "" && !filepath.IsAbs(definition.EnvFile) && e.Directory != "" {
		definition.EnvFile = filepath.Join(e.Directory, definition.EnvFile)
	}

	svc, err := service.FromDefinition(&definition)
	if err != nil {
		return nil, err
	}

	svc.AddEnvVars(e.Settings.Env)
	svc.AddLabels(e.Settings.Labels)

	if e.Settings.Nameserver != "" {
		svc.Resolver = dns.NewNameserver(e.Settings.Nameserver)
	}

	return svc, nil
}

// Group builds the target hosts, talking to their engines through the
// docker binding.
func (e *Environment) Group(log *zap.Logger) (*group.Group, error) {
	return e.GroupWith(docker.Factory(log), log)
}

func (e *Environment) GroupWith(factory engine.Factory, log *zap.Logger) (*group.Group, error) {
	options := []host.Option{
		host.WithFactory(factory),
		host.WithTunnel(e.Tunnel()),
	}

	if e.Settings.TLS != nil {
		options = append(options, host.WithTLS(&engine.TLS{
			CACert: e.Settings.TLS.CACert,
			Cert:   e.Settings.TLS.Cert,
			Key:    e.Settings.TLS.Key,
		}))
	}

	return group.FromAddresses(e.Settings.Hosts, log, options...)
}

func (e *Environment) Tunnel() tunnel.Config {
	ssh := e.Settings.Ssh

	return tunnel.Config{
		Port:                  ssh.Port,
		User:                  ssh.User,
		IdentityFiles:         append([]string(nil), ssh.IdentityFiles...),
		KnownHosts:            ssh.KnownHosts,
		InsecureIgnoreHostKey: ssh.InsecureIgnoreHostKey,
		RemoteSocket:          ssh.RemoteSocket,
		KeepAlive:             time.Duration(ssh.KeepAlive) * time.Second,
		Timeout:               time.Duration(ssh.Timeout) * time.Second,
	}
}

func (e *Environment) Options(log *zap.Logger) (deploy.Options, error) {
	settings := e.Settings

	check, ok := health.ByName(settings.Health.Type, log)
	if !ok {
		return deploy.Options{}, errors.Wrapf(ERROR_HEALTH_CHECK, "%s", settings.Health.Type)
	}

	options := deploy.Options{
		StopTimeout:    time.Duration(settings.StopTimeout) * time.Second,
		HealthCheck:    check,
		Endpoint:       settings.Health.Endpoint,
		Port:           settings.Health.Port,
		WaitTime:       time.Duration(settings.Health.Wait) * time.Second,
		Retries:        settings.Health.Retries,
		CheckInterval:  time.Duration(settings.CheckInterval) * time.Second,
		Parallel:       settings.Parallel,
		Pull:           settings.Pull,
		KeepContainers: settings.KeepContainers,
	}

	if settings.RestartPolicy != nil && settings.RestartPolicy.Name != "" {
		policy := service.NewRestartPolicy(settings.RestartPolicy.Name, settings.RestartPolicy.MaxRetryCount)
		options.RestartPolicy = &policy
	}

	return options, nil
}

// Callbacks registers the configured handlers in file order.
func (e *Environment) Callbacks(svc *service.Service, log *zap.Logger) (*callbacks.Registry, error) {
	registry := callbacks.New()

	for _, callback := range e.Settings.Callbacks {
		event, err := callbacks.ParseEvent(callback.Event)
		if err != nil {
			return nil, err
		}

		var handler callbacks.Handler

		switch callback.Type {
		case "webhook":
			handler = callbacks.Webhook(nil, callback.URL, event, svc.Name)
		case "log":
			handler = callbacks.Log(log, event, svc.Name)
		}

		if err = registry.On(event, handler); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

func (e *Environment) Registry() *registry.Client {
	return registry.New(e.Settings.Registry.Insecure)
}

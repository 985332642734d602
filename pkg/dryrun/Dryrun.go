package dryrun

import (
	"fmt"
	"net"
	"sort"
	"strings"

	"github.com/simplecontainer/deployer/pkg/group"
	"github.com/simplecontainer/deployer/pkg/host"
	"github.com/simplecontainer/deployer/pkg/service"
	"github.com/simplecontainer/deployer/pkg/static"
)

const SEPARATOR = "\n\n\n ******* \n\n\n"

// Render prints the engine CLI command that would start svc on every host.
func Render(g *group.Group, svc *service.Service) string {
	commands := make([]string, 0, g.Len())

	for _, h := range g.Hosts {
		commands = append(commands, Command(h, svc))
	}

	return strings.Join(commands, SEPARATOR)
}

func Command(h *host.Host, svc *service.Service) string {
	var b strings.Builder

	fmt.Fprintf(&b, "docker -H=%s run", endpoint(h))

	keys := make([]string, 0, len(svc.Env))
	for key := range svc.Env {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	for _, key := range keys {
		value := strings.ReplaceAll(svc.Env[key], "\n", "")
		fmt.Fprintf(&b, " -e %s=%s", strings.Split(key, `"`)[0], quote(value))
	}

	for _, binding := range svc.Ports {
		if binding.HostIP != "" {
			fmt.Fprintf(&b, " -p %s:%d:%d/%s", binding.HostIP, binding.HostPort, binding.ContainerPort, binding.Protocol)
			continue
		}

		fmt.Fprintf(&b, " -p %d:%d/%s", binding.HostPort, binding.ContainerPort, binding.Protocol)
	}

	for _, bind := range svc.Binds() {
		fmt.Fprintf(&b, " -v %s", bind)
	}

	if svc.Image != "" {
		fmt.Fprintf(&b, " %s", svc.ImageRef())
	}

	for _, arg := range svc.Command {
		fmt.Fprintf(&b, " %s", quoteIfNeeded(arg))
	}

	return b.String()
}

func endpoint(h *host.Host) string {
	if h.Transport == static.TRANSPORT_SSH {
		if h.Tunnel.User != "" {
			return fmt.Sprintf("ssh://%s@%s", h.Tunnel.User, h.Hostname)
		}

		return fmt.Sprintf("ssh://%s", h.Hostname)
	}

	return fmt.Sprintf("tcp://%s", net.JoinHostPort(h.Hostname, h.Port))
}

func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}

func quoteIfNeeded(value string) string {
	if value == "" || strings.ContainsAny(value, " \t'\"$\\;&|<>*?()[]{}`!#~") {
		return quote(value)
	}

	return value
}

package engine

import (
	"regexp"
	"strings"
)

var exitedStatus = regexp.MustCompile(`^(Exit |Exited)`)

// Exited reports whether the container is in a terminal state and may be
// removed.
func (c Container) Exited() bool {
	return c.State == "exited" || c.State == "dead" || exitedStatus.MatchString(c.Status)
}

// PublishesPort reports whether one of the container ports is published on
// the host as publicPort with the given protocol.
func (c Container) PublishesPort(publicPort uint16, protocol string) bool {
	for _, port := range c.Ports {
		if port.PublicPort == publicPort && port.Type == protocol {
			return true
		}
	}

	return false
}

// ShortID is the 12 character prefix used by the engine CLI.
func (c Container) ShortID() string {
	if len(c.ID) > 12 {
		return c.ID[:12]
	}

	return c.ID
}

func (c Container) Name() string {
	return strings.TrimPrefix(strings.Join(c.Names, ","), "/")
}

// Tag returns the tag part of the container image reference, "latest" when
// the reference carries no tag.
func (c Container) Tag() string {
	return ImageTag(c.Image)
}

func ImageTag(image string) string {
	if at := strings.Index(image, "@"); at != -1 {
		image = image[:at]
	}

	colon := strings.LastIndex(image, ":")
	if colon == -1 || colon < strings.LastIndex(image, "/") {
		return "latest"
	}

	return image[colon+1:]
}

// ListensOn reports whether the inspected container binds hostPort.
func (d ContainerDetails) ListensOn(hostPort string) bool {
	for _, bindings := range d.PortBindings {
		for _, binding := range bindings {
			if binding == hostPort {
				return true
			}
		}
	}

	return false
}

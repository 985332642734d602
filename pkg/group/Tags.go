package group

import (
	"context"
	"sort"

	"github.com/pkg/errors"
	"github.com/simplecontainer/deployer/pkg/host"
	"github.com/simplecontainer/deployer/pkg/static"
)

// CurrentTags lists every host/tag pair running image, in group order.
func (g *Group) CurrentTags(ctx context.Context, image string) ([]TagAssignment, error) {
	assignments := []TagAssignment{}

	for _, h := range g.Hosts {
		tags, err := g.tagsFor(ctx, h, image)
		if err != nil {
			return nil, err
		}

		for _, tag := range tags {
			assignments = append(assignments, TagAssignment{Host: h, Tag: tag})
		}
	}

	return assignments, nil
}

// HostsByTag maps each tag of image to the hosts running it. Hosts within a
// tag are ordered by hostname.
func (g *Group) HostsByTag(ctx context.Context, image string) (map[string][]*host.Host, error) {
	if err := g.checkDuplicates(); err != nil {
		return nil, err
	}

	byTag := map[string][]*host.Host{}
	multiple := map[string][]string{}

	for _, h := range g.Hosts {
		tags, err := g.tagsFor(ctx, h, image)
		if err != nil {
			return nil, err
		}

		switch len(tags) {
		case 0:
		case 1:
			byTag[tags[0]] = append(byTag[tags[0]], h)
		default:
			multiple[h.Hostname] = tags
		}
	}

	if len(multiple) > 0 {
		return nil, &MultipleTagsError{Hosts: multiple}
	}

	for _, hosts := range byTag {
		sort.Slice(hosts, func(i, j int) bool {
			return hosts[i].Hostname < hosts[j].Hostname
		})
	}

	return byTag, nil
}

// FindExistingCanary returns the single host running a tag different from
// the rest of the group, or nil when only one tag is deployed.
func (g *Group) FindExistingCanary(ctx context.Context, image string) (*TagAssignment, error) {
	byTag, err := g.HostsByTag(ctx, image)
	if err != nil {
		return nil, err
	}

	return canaryOf(byTag)
}

// CurrentlyDeployedTag is the production tag: the only one without a
// canary, otherwise the one the canary is not running.
func (g *Group) CurrentlyDeployedTag(ctx context.Context, image string) (string, error) {
	byTag, err := g.HostsByTag(ctx, image)
	if err != nil {
		return "", err
	}

	if len(byTag) == 0 {
		return "", ERROR_NOT_DEPLOYED
	}

	canary, err := canaryOf(byTag)
	if err != nil {
		return "", err
	}

	for tag := range byTag {
		if canary == nil || tag != canary.Tag {
			return tag, nil
		}
	}

	return "", ERROR_NOT_DEPLOYED
}

func canaryOf(byTag map[string][]*host.Host) (*TagAssignment, error) {
	running := 0
	for _, hosts := range byTag {
		running += len(hosts)
	}

	if running < static.MINIMUM_CANARY_HOST_COUNT {
		return nil, ERROR_CANARY_TOO_FEW_HOSTS
	}

	if len(byTag) == 1 {
		return nil, nil
	}

	if len(byTag) > 2 {
		return nil, ERROR_CANARY_TOO_MANY_TAGS
	}

	var canary *TagAssignment

	for tag, hosts := range byTag {
		if len(hosts) != 1 {
			continue
		}

		if canary != nil {
			return nil, ERROR_CANARY_AMBIGUOUS
		}

		canary = &TagAssignment{Host: hosts[0], Tag: tag}
	}

	if canary == nil {
		return nil, ERROR_CANARY_AMBIGUOUS
	}

	return canary, nil
}

func (g *Group) checkDuplicates() error {
	counts := map[string]int{}
	var duplicates []string

	for _, h := range g.Hosts {
		counts[h.Hostname]++

		if counts[h.Hostname] == 2 {
			duplicates = append(duplicates, h.Hostname)
		}
	}

	if len(duplicates) > 0 {
		sort.Strings(duplicates)
		return &DuplicateHostsError{Hostnames: duplicates}
	}

	return nil
}

func (g *Group) tagsFor(ctx context.Context, h *host.Host, image string) ([]string, error) {
	var tags []string

	err := h.Open(ctx, func(ctx context.Context) error {
		var err error
		tags, err = h.CurrentTagsFor(ctx, image)
		return err
	})
	if err != nil {
		return nil, errors.Wrapf(err, "reading tags on %s", h.Hostname)
	}

	return tags, nil
}

package group

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var ERROR_EMPTY_GROUP = errors.New("bad host list: at least one host is required")
var ERROR_CANARY_TOO_FEW_HOSTS = errors.New("cannot canary to less than 3 servers because we wouldn't be able to tell which one was the canary once deployed")
var ERROR_CANARY_TOO_MANY_TAGS = errors.New("there are more than 2 different images deployed right now, canary deployments need one or two")
var ERROR_CANARY_AMBIGUOUS = errors.New("each of the two deployed images runs on 2 or more hosts so the canary cannot be identified")
var ERROR_NOT_DEPLOYED = errors.New("image is not running on any host")

func (e *DuplicateHostsError) Error() string {
	return fmt.Sprintf("found duplicate entries for a server: %s", strings.Join(e.Hostnames, ", "))
}

func (e *MultipleTagsError) Error() string {
	hostnames := make([]string, 0, len(e.Hosts))
	for hostname := range e.Hosts {
		hostnames = append(hostnames, hostname)
	}

	sort.Strings(hostnames)

	entries := make([]string, 0, len(hostnames))
	for _, hostname := range hostnames {
		entries = append(entries, fmt.Sprintf("%s (%s)", hostname, strings.Join(e.Hosts[hostname], ", ")))
	}

	return fmt.Sprintf("found servers that had multiple tags: %s", strings.Join(entries, "; "))
}

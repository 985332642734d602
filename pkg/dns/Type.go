package dns

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"
)

// Resolver turns a hostname into the address substituted for the host IP
// placeholder.
type Resolver interface {
	LookupIP(ctx context.Context, hostname string) (string, error)
}

// System resolves through the operating system resolver.
type System struct {
	resolver *net.Resolver
}

// Nameserver resolves A records against one explicit DNS server.
type Nameserver struct {
	Address string
	Timeout time.Duration
	client  *dns.Client
}

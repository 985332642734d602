package dns

import (
	"context"
	"net"
	"time"

	"github.com/miekg/dns"
	"github.com/pkg/errors"
)

var (
	ERROR_NO_ADDRESS = errors.New("no address found for host")
)

func NewSystem() *System {
	return &System{resolver: net.DefaultResolver}
}

func (s *System) LookupIP(ctx context.Context, hostname string) (string, error) {
	if ip := net.ParseIP(hostname); ip != nil {
		return ip.String(), nil
	}

	addrs, err := s.resolver.LookupIPAddr(ctx, hostname)
	if err != nil {
		return "", errors.Wrapf(err, "resolving %s", hostname)
	}

	for _, addr := range addrs {
		if addr.IP.To4() != nil {
			return addr.IP.String(), nil
		}
	}

	if len(addrs) > 0 {
		return addrs[0].IP.String(), nil
	}

	return "", errors.Wrap(ERROR_NO_ADDRESS, hostname)
}

// NewNameserver takes the server as host:port; port 53 is assumed when it is
// missing.
func NewNameserver(address string) *Nameserver {
	if _, _, err := net.SplitHostPort(address); err != nil {
		address = net.JoinHostPort(address, "53")
	}

	return &Nameserver{
		Address: address,
		Timeout: 5 * time.Second,
		client:  &dns.Client{Net: "udp", Timeout: 5 * time.Second},
	}
}

func (n *Nameserver) LookupIP(ctx context.Context, hostname string) (string, error) {
	if ip := net.ParseIP(hostname); ip != nil {
		return ip.String(), nil
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(hostname), dns.TypeA)
	msg.RecursionDesired = true

	in, _, err := n.client.ExchangeContext(ctx, msg, n.Address)
	if err != nil {
		return "", errors.Wrapf(err, "querying %s for %s", n.Address, hostname)
	}

	if in.Rcode != dns.RcodeSuccess {
		return "", errors.Wrapf(ERROR_NO_ADDRESS, "%s (%s)", hostname, dns.RcodeToString[in.Rcode])
	}

	for _, answer := range in.Answer {
		if a, ok := answer.(*dns.A); ok {
			return a.A.String(), nil
		}
	}

	return "", errors.Wrap(ERROR_NO_ADDRESS, hostname)
}

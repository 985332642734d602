package dns

import (
	"context"
	"net"
	"testing"

	"github.com/go-playground/assert/v2"
	"github.com/miekg/dns"
	"github.com/pkg/errors"
)

func startNameserver(t *testing.T, records map[string]string) string {
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	server := &dns.Server{
		PacketConn: pc,
		Handler: dns.HandlerFunc(func(w dns.ResponseWriter, r *dns.Msg) {
			m := new(dns.Msg)
			m.SetReply(r)

			ip, ok := records[r.Question[0].Name]
			if !ok {
				m.Rcode = dns.RcodeNameError
			} else {
				rr, _ := dns.NewRR(r.Question[0].Name + " 60 IN A " + ip)
				m.Answer = append(m.Answer, rr)
			}

			w.WriteMsg(m)
		}),
	}

	go server.ActivateAndServe()
	t.Cleanup(func() { server.Shutdown() })

	return pc.LocalAddr().String()
}

func TestNameserverLookupIP(t *testing.T) {
	type Wanted struct {
		ip    string
		error error
	}

	type Parameters struct {
		hostname string
	}

	address := startNameserver(t, map[string]string{
		"docker1.example.com.": "10.0.0.11",
	})

	testCases := []struct {
		name       string
		wanted     Wanted
		parameters Parameters
	}{
		{
			"Known host",
			Wanted{ip: "10.0.0.11"},
			Parameters{hostname: "docker1.example.com"},
		},
		{
			"Unknown host",
			Wanted{error: ERROR_NO_ADDRESS},
			Parameters{hostname: "missing.example.com"},
		},
		{
			"Literal address",
			Wanted{ip: "192.168.1.5"},
			Parameters{hostname: "192.168.1.5"},
		},
	}

	resolver := NewNameserver(address)

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ip, err := resolver.LookupIP(context.Background(), tc.parameters.hostname)

			assert.Equal(t, tc.wanted.ip, ip)
			assert.Equal(t, tc.wanted.error, errors.Cause(err))
		})
	}
}

func TestSystemLookupLiteral(t *testing.T) {
	ip, err := NewSystem().LookupIP(context.Background(), "127.0.0.1")

	assert.Equal(t, nil, err)
	assert.Equal(t, "127.0.0.1", ip)
}

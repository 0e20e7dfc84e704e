// Package discovery supplies candidate Capture server addresses.
//
// Actual network browsing (Bonjour/mDNS) lives outside this client; the core
// only consumes "host:port" candidates. StaticProvider adapts a configured
// candidate list to the Provider interface.
package discovery

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/avolkov/go-tether-sync/internal/config"
)

// Candidate is one discovered or configured server endpoint.
type Candidate struct {
	Name string
	Host string
	Port int
}

// Address returns the candidate in "host:port" form.
func (c Candidate) Address() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Provider yields candidate server endpoints, most preferred first.
type Provider interface {
	Candidates(ctx context.Context) ([]Candidate, error)
}

// StaticProvider serves a fixed candidate list from configuration.
type StaticProvider struct {
	candidates []Candidate
}

// NewStaticProvider parses the configured "host:port" entries.
func NewStaticProvider(discoveryCfg config.ClientDiscovery) (*StaticProvider, error) {
	candidates := make([]Candidate, 0, len(discoveryCfg.Candidates))

	for _, raw := range discoveryCfg.Candidates {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		host, portStr, err := net.SplitHostPort(raw)
		if err != nil {
			return nil, fmt.Errorf("parse discovery candidate %q: %w", raw, err)
		}
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return nil, fmt.Errorf("parse discovery candidate %q: bad port", raw)
		}

		candidates = append(candidates, Candidate{Name: raw, Host: host, Port: port})
	}

	return &StaticProvider{candidates: candidates}, nil
}

// Candidates implements [Provider].
func (p *StaticProvider) Candidates(_ context.Context) ([]Candidate, error) {
	out := make([]Candidate, len(p.candidates))
	copy(out, p.candidates)
	return out, nil
}

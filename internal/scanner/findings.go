package scanner

import (
	"strings"

	"bytemomo/sonar/internal/domain"

	nmap "github.com/Ullaakut/nmap/v3"
)

// findings exposes an nmap run through the domain.RawFindings accessors.
type findings struct {
	run *nmap.Run
}

// NewFindings wraps an nmap run. The run is returned untouched by Dump.
func NewFindings(run *nmap.Run) domain.RawFindings {
	return findings{run: run}
}

func (f findings) Hosts() []domain.RawHost {
	if f.run == nil {
		return nil
	}
	out := make([]domain.RawHost, 0, len(f.run.Hosts))
	for i := range f.run.Hosts {
		out = append(out, host{h: &f.run.Hosts[i]})
	}
	return out
}

func (f findings) Dump() any { return f.run }

type host struct {
	h *nmap.Host
}

func (h host) Address() string { return pickHostAddress(*h.h) }

// Hostname prefers the name the user asked for, then the first resolved one.
func (h host) Hostname() string {
	for _, n := range h.h.Hostnames {
		if n.Type == "user" && n.Name != "" {
			return n.Name
		}
	}
	for _, n := range h.h.Hostnames {
		if n.Name != "" {
			return n.Name
		}
	}
	return ""
}

func (h host) State() string { return h.h.Status.State }

func (h host) Protocols() []string {
	var out []string
	seen := map[string]struct{}{}
	for _, p := range h.h.Ports {
		proto := strings.ToLower(p.Protocol)
		if _, ok := seen[proto]; ok {
			continue
		}
		seen[proto] = struct{}{}
		out = append(out, proto)
	}
	return out
}

func (h host) Ports(protocol string) []domain.RawPort {
	var out []domain.RawPort
	for i := range h.h.Ports {
		p := &h.h.Ports[i]
		if strings.EqualFold(p.Protocol, protocol) {
			out = append(out, port{p: p})
		}
	}
	return out
}

type port struct {
	p *nmap.Port
}

func (p port) Number() int         { return int(p.p.ID) }
func (p port) State() string       { return p.p.State.State }
func (p port) ServiceName() string { return p.p.Service.Name }
func (p port) Product() string     { return p.p.Service.Product }
func (p port) Version() string     { return p.p.Service.Version }

func (p port) Scripts() []domain.ScriptResult {
	if len(p.p.Scripts) == 0 {
		return nil
	}
	out := make([]domain.ScriptResult, 0, len(p.p.Scripts))
	for _, s := range p.p.Scripts {
		out = append(out, domain.ScriptResult{ID: s.ID, Output: s.Output})
	}
	return out
}

func pickHostAddress(h nmap.Host) string {
	for _, a := range h.Addresses {
		if a.AddrType == "ipv4" {
			return a.Addr
		}
	}
	for _, a := range h.Addresses {
		if a.AddrType == "ipv6" {
			return a.Addr
		}
	}
	if len(h.Addresses) > 0 {
		return h.Addresses[0].Addr
	}
	return ""
}

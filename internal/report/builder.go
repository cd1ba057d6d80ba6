// Package report turns raw engine findings into the normalised ScanReport.
package report

import (
	"cmp"
	"slices"
	"strings"

	"bytemomo/sonar/internal/domain"
)

const (
	NoHostname     = "No name"
	UnknownService = "Unknown"
)

// Build maps raw findings onto a ScanReport. It does no I/O and never fails:
// missing data becomes a default value. Hosts keep discovery order, protocols
// are sorted by name and ports by number.
func Build(target string, raw domain.RawFindings) domain.ScanReport {
	report := domain.ScanReport{
		Target: target,
		Hosts:  []domain.Host{},
	}
	if raw == nil {
		return report
	}

	seen := make(map[string]struct{})
	for _, rh := range raw.Hosts() {
		if rh == nil {
			continue
		}
		// The address identifies the host in the report, so a host
		// without one has nothing to be listed under.
		addr := strings.TrimSpace(rh.Address())
		if addr == "" {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		report.Hosts = append(report.Hosts, buildHost(addr, rh))
	}
	return report
}

func buildHost(addr string, rh domain.RawHost) domain.Host {
	h := domain.Host{
		Address:   addr,
		Hostname:  strings.TrimSpace(rh.Hostname()),
		State:     domain.ParseHostState(rh.State()),
		Protocols: []domain.Protocol{},
	}
	if h.Hostname == "" {
		h.Hostname = NoHostname
	}

	names := slices.Clone(rh.Protocols())
	slices.SortFunc(names, func(a, b string) int {
		return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
	})

	seen := make(map[domain.ProtocolName]struct{})
	for _, name := range names {
		proto := domain.ParseProtocol(name)
		if proto == "" {
			continue
		}
		if _, dup := seen[proto]; dup {
			continue
		}
		seen[proto] = struct{}{}
		h.Protocols = append(h.Protocols, domain.Protocol{
			Name:  proto,
			Ports: buildPorts(rh.Ports(name)),
		})
	}
	return h
}

func buildPorts(raw []domain.RawPort) []domain.PortFinding {
	out := make([]domain.PortFinding, 0, len(raw))
	for _, rp := range raw {
		if rp == nil || rp.Number() < 0 || rp.Number() > 65535 {
			continue
		}
		out = append(out, buildPort(rp))
	}

	slices.SortStableFunc(out, func(a, b domain.PortFinding) int {
		return cmp.Compare(a.Port, b.Port)
	})
	return slices.CompactFunc(out, func(a, b domain.PortFinding) bool {
		return a.Port == b.Port
	})
}

func buildPort(rp domain.RawPort) domain.PortFinding {
	p := domain.PortFinding{
		Port:        rp.Number(),
		State:       domain.ParsePortState(rp.State()),
		ServiceName: rp.ServiceName(),
		Product:     rp.Product(),
		Version:     rp.Version(),
		Scripts:     []domain.ScriptResult{},
	}
	if strings.TrimSpace(p.ServiceName) == "" {
		p.ServiceName = UnknownService
	}
	for _, s := range rp.Scripts() {
		p.Scripts = append(p.Scripts, domain.ScriptResult{ID: s.ID, Output: s.Output})
	}
	return p
}

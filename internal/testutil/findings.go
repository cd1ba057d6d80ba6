// Package testutil provides in-memory engine results for tests.
package testutil

import (
	"context"

	"bytemomo/sonar/internal/domain"
)

// Findings is a hand-built domain.RawFindings.
type Findings struct {
	HostList []Host
	Native   any
}

func (f Findings) Hosts() []domain.RawHost {
	out := make([]domain.RawHost, 0, len(f.HostList))
	for _, h := range f.HostList {
		out = append(out, h)
	}
	return out
}

func (f Findings) Dump() any { return f.Native }

// Host lists protocols in the order given in ProtocolOrder; when that is
// empty the keys of PortsByProto are used in map order.
type Host struct {
	Addr          string
	Name          string
	Status        string
	ProtocolOrder []string
	PortsByProto  map[string][]Port
}

func (h Host) Address() string  { return h.Addr }
func (h Host) Hostname() string { return h.Name }
func (h Host) State() string    { return h.Status }

func (h Host) Protocols() []string {
	if len(h.ProtocolOrder) > 0 {
		return h.ProtocolOrder
	}
	out := make([]string, 0, len(h.PortsByProto))
	for p := range h.PortsByProto {
		out = append(out, p)
	}
	return out
}

func (h Host) Ports(protocol string) []domain.RawPort {
	ports := h.PortsByProto[protocol]
	out := make([]domain.RawPort, 0, len(ports))
	for _, p := range ports {
		out = append(out, p)
	}
	return out
}

type Port struct {
	ID         int
	Status     string
	Name       string
	ProductStr string
	VersionStr string
	ScriptList []domain.ScriptResult
}

func (p Port) Number() int                    { return p.ID }
func (p Port) State() string                  { return p.Status }
func (p Port) ServiceName() string            { return p.Name }
func (p Port) Product() string                { return p.ProductStr }
func (p Port) Version() string                { return p.VersionStr }
func (p Port) Scripts() []domain.ScriptResult { return p.ScriptList }

// ScenarioA is one reachable host with an open http port and no hostname.
func ScenarioA() Findings {
	return Findings{
		HostList: []Host{{
			Addr:   "192.0.2.10",
			Status: "up",
			PortsByProto: map[string][]Port{
				"tcp": {{ID: 80, Status: "open", Name: "http"}},
			},
		}},
		Native: map[string]any{
			"scan": map[string]any{
				"192.0.2.10": map[string]any{"status": map[string]any{"state": "up"}},
			},
		},
	}
}

// Engine returns canned findings or a canned error and counts calls.
type Engine struct {
	Result domain.RawFindings
	Err    error
	Calls  int
	Target string
	Opts   domain.ScanOptions
}

func (e *Engine) Execute(_ context.Context, target string, opts domain.ScanOptions) (domain.RawFindings, error) {
	e.Calls++
	e.Target = target
	e.Opts = opts
	if e.Err != nil {
		return nil, e.Err
	}
	return e.Result, nil
}

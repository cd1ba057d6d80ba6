package domain

import (
	"errors"
	"strings"
)

type HostState string

const (
	HostUp      HostState = "UP"
	HostDown    HostState = "DOWN"
	HostUnknown HostState = "UNKNOWN"
)

// ParseHostState maps an engine state string onto HostState. Unrecognised
// values become HostUnknown.
func ParseHostState(s string) HostState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up":
		return HostUp
	case "down":
		return HostDown
	default:
		return HostUnknown
	}
}

type PortState string

const (
	PortOpen     PortState = "OPEN"
	PortClosed   PortState = "CLOSED"
	PortFiltered PortState = "FILTERED"
	PortUnknown  PortState = "UNKNOWN"
)

// ParsePortState maps an engine port state onto PortState. Compound nmap
// states such as "open|filtered" are not one of the four and become PortUnknown.
func ParsePortState(s string) PortState {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "open":
		return PortOpen
	case "closed":
		return PortClosed
	case "filtered":
		return PortFiltered
	default:
		return PortUnknown
	}
}

// ProtocolName is TCP, UDP or any other engine protocol name, upper-cased.
type ProtocolName string

const (
	ProtocolTCP ProtocolName = "TCP"
	ProtocolUDP ProtocolName = "UDP"
)

func ParseProtocol(s string) ProtocolName {
	return ProtocolName(strings.ToUpper(strings.TrimSpace(s)))
}

type ScriptResult struct {
	ID     string `json:"id"`
	Output string `json:"output"`
}

type PortFinding struct {
	Port        int            `json:"port"`
	State       PortState      `json:"state"`
	ServiceName string         `json:"service"`
	Product     string         `json:"product,omitempty"`
	Version     string         `json:"version,omitempty"`
	Scripts     []ScriptResult `json:"scripts"`
}

// DisplayVersion joins product and version with one space and trims the
// result. It is empty when both are empty.
func (p PortFinding) DisplayVersion() string {
	return strings.TrimSpace(p.Product + " " + p.Version)
}

type Protocol struct {
	Name  ProtocolName  `json:"name"`
	Ports []PortFinding `json:"ports"`
}

type Host struct {
	Address   string     `json:"address"`
	Hostname  string     `json:"hostname"`
	State     HostState  `json:"state"`
	Protocols []Protocol `json:"protocols"`
}

// ScanReport is the normalised result of one scan. An empty Hosts slice
// means no host answered and is not an error.
type ScanReport struct {
	Target string `json:"target"`
	Hosts  []Host `json:"hosts"`
}

func (r ScanReport) Validate() error {
	if strings.TrimSpace(r.Target) == "" {
		return errors.New("report: target is required")
	}
	seen := make(map[string]struct{}, len(r.Hosts))
	for _, h := range r.Hosts {
		if _, dup := seen[h.Address]; dup {
			return errors.New("report: duplicate host " + h.Address)
		}
		seen[h.Address] = struct{}{}
	}
	return nil
}

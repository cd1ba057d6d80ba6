package domain

// RawFindings is the engine's unprocessed result set. The report builder
// depends only on these accessors, never on the engine's own types.
type RawFindings interface {
	// Hosts returns the hosts in the order the engine discovered them.
	Hosts() []RawHost
	// Dump returns the engine's full native result, used verbatim for persistence.
	Dump() any
}

type RawHost interface {
	Address() string
	// Hostname is empty when the engine resolved none.
	Hostname() string
	State() string
	// Protocols lists the protocol names that have at least one port.
	Protocols() []string
	Ports(protocol string) []RawPort
}

type RawPort interface {
	Number() int
	State() string
	ServiceName() string
	Product() string
	Version() string
	// Scripts is empty when no script output was attached to the port.
	Scripts() []ScriptResult
}

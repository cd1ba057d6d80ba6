// Package console renders scan reports as plain text for a terminal.
package console

import (
	"fmt"
	"io"
	"strings"

	"bytemomo/sonar/internal/domain"
)

const ruleWidth = 70

var (
	hostRule  = strings.Repeat("-", ruleWidth)
	finalRule = strings.Repeat("=", ruleWidth)
)

// Renderer writes the human-readable report. Output depends only on its
// arguments.
type Renderer struct {
	Out io.Writer
}

func New(out io.Writer) *Renderer {
	return &Renderer{Out: out}
}

// Announce prints the pre-scan banner with the effective options.
func (r *Renderer) Announce(target string, opts domain.ScanOptions) error {
	return r.write(
		"",
		fmt.Sprintf("[+] Starting the scan on %s now. Options used: %s", target, opts.Args()),
		hostRule,
	)
}

// Render prints one block per host. A report without hosts prints nothing.
func (r *Renderer) Render(report domain.ScanReport) error {
	return r.write(Lines(report)...)
}

// Finish prints the closing banner.
func (r *Renderer) Finish(target string) error {
	return r.write(
		"",
		finalRule,
		fmt.Sprintf("[*] Scan finished for %s. Have a good day! 👋", target),
	)
}

func (r *Renderer) Saved(path string) error {
	return r.write("", fmt.Sprintf("[+] Success! The scan report is saved in: %s", path))
}

func (r *Renderer) SaveFailed(err error) error {
	return r.write("", fmt.Sprintf("[!] Sorry, there was an issue saving the file. Error: %v", err))
}

func (r *Renderer) EngineMissing(err error) error {
	return r.write(fmt.Sprintf("[!] ERROR: The Nmap program is missing! Please install it first. (%v)", err))
}

func (r *Renderer) ScanFailed(err error) error {
	return r.write(fmt.Sprintf("[!!!] Scan Failed. Did you install Nmap correctly? Problem: %v", err))
}

// Lines returns the host blocks of report, one display line per element.
func Lines(report domain.ScanReport) []string {
	var lines []string
	for _, h := range report.Hosts {
		lines = append(lines,
			"",
			hostRule,
			fmt.Sprintf("HOST IP: %s (Name: %s)", h.Address, h.Hostname),
			// The annotation is printed for every state, DOWN included.
			fmt.Sprintf("STATUS: %s (The host is reachable)", h.State),
		)
		for _, proto := range h.Protocols {
			lines = append(lines, fmt.Sprintf("  -> Checking PROTOCOL: %s", strings.ToUpper(string(proto.Name))))
			for _, p := range proto.Ports {
				lines = append(lines, portLines(p)...)
			}
		}
	}
	return lines
}

func portLines(p domain.PortFinding) []string {
	lines := []string{
		fmt.Sprintf("    PORT: %-5d\tSTATE: %s", p.Port, displayState(p.State)),
		fmt.Sprintf("      SERVICE: %-10s\tVERSION: %s", p.ServiceName, p.DisplayVersion()),
	}
	if len(p.Scripts) == 0 {
		return lines
	}
	lines = append(lines, "      [+] Extra Script Info:")
	for _, s := range p.Scripts {
		lines = append(lines, fmt.Sprintf("        -> %s: %s", s.ID, s.Output))
	}
	return lines
}

func displayState(s domain.PortState) string {
	state := strings.ToUpper(string(s))
	if s == domain.PortOpen {
		return "*** " + state + " ***"
	}
	return state
}

func (r *Renderer) write(lines ...string) error {
	if len(lines) == 0 {
		return nil
	}
	var sb strings.Builder
	for _, l := range lines {
		sb.WriteString(l)
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(r.Out, sb.String())
	return err
}

package console

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"bytemomo/sonar/internal/domain"
	"bytemomo/sonar/internal/report"
	"bytemomo/sonar/internal/testutil"
)

func renderAll(t *testing.T, rep domain.ScanReport) string {
	t.Helper()
	var buf bytes.Buffer
	r := New(&buf)
	if err := r.Announce(rep.Target, domain.DefaultScanOptions()); err != nil {
		t.Fatal(err)
	}
	if err := r.Render(rep); err != nil {
		t.Fatal(err)
	}
	if err := r.Finish(rep.Target); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestRenderScenarioA(t *testing.T) {
	out := renderAll(t, report.Build("192.0.2.10", testutil.ScenarioA()))

	for _, want := range []string{
		"[+] Starting the scan on 192.0.2.10 now. Options used: -sV -sC -T4 --host-timeout 15m --max-retries 1",
		"HOST IP: 192.0.2.10 (Name: No name)\n",
		"STATUS: UP (The host is reachable)\n",
		"  -> Checking PROTOCOL: TCP\n",
		"    PORT: 80   \tSTATE: *** OPEN ***\n",
		"      SERVICE: http      \tVERSION: \n",
		"[*] Scan finished for 192.0.2.10. Have a good day! 👋\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Extra Script Info") {
		t.Errorf("no script header expected without script output")
	}
}

func TestRenderScenarioBBannersOnly(t *testing.T) {
	rep := report.Build("203.0.113.99", testutil.Findings{})
	out := renderAll(t, rep)

	if strings.Contains(out, "HOST IP:") {
		t.Errorf("no host block expected:\n%s", out)
	}
	want := "\n[+] Starting the scan on 203.0.113.99 now. Options used: -sV -sC -T4 --host-timeout 15m --max-retries 1\n" +
		strings.Repeat("-", 70) + "\n" +
		"\n" + strings.Repeat("=", 70) + "\n" +
		"[*] Scan finished for 203.0.113.99. Have a good day! 👋\n"
	if out != want {
		t.Errorf("unexpected output:\n%q\nwant:\n%q", out, want)
	}
	if lines := Lines(rep); len(lines) != 0 {
		t.Errorf("expected no report lines, got %v", lines)
	}
}

func TestRenderOpenHighlightOnlyForOpen(t *testing.T) {
	rep := domain.ScanReport{Target: "t", Hosts: []domain.Host{{
		Address: "10.0.0.1", Hostname: "n", State: domain.HostUp,
		Protocols: []domain.Protocol{{Name: domain.ProtocolTCP, Ports: []domain.PortFinding{
			{Port: 21, State: domain.PortClosed, ServiceName: "ftp"},
			{Port: 22, State: domain.PortFiltered, ServiceName: "ssh"},
			{Port: 23, State: domain.PortUnknown, ServiceName: "telnet"},
			{Port: 80, State: domain.PortOpen, ServiceName: "http"},
		}}},
	}}}

	for _, line := range Lines(rep) {
		if !strings.HasPrefix(line, "    PORT:") {
			continue
		}
		isOpen := strings.HasPrefix(line, "    PORT: 80 ")
		hasStars := strings.Contains(line, "***")
		if isOpen && !strings.Contains(line, "STATE: *** OPEN ***") {
			t.Errorf("open port not highlighted: %q", line)
		}
		if !isOpen && hasStars {
			t.Errorf("non-open port highlighted: %q", line)
		}
	}

	out := strings.Join(Lines(rep), "\n")
	for _, want := range []string{"STATE: CLOSED", "STATE: FILTERED", "STATE: UNKNOWN"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestRenderServicePaddingAndVersion(t *testing.T) {
	rep := domain.ScanReport{Target: "t", Hosts: []domain.Host{{
		Address: "10.0.0.1", Hostname: "n", State: domain.HostUp,
		Protocols: []domain.Protocol{{Name: domain.ProtocolTCP, Ports: []domain.PortFinding{
			{Port: 22, State: domain.PortOpen, ServiceName: "ssh", Product: "OpenSSH", Version: "9.6p1"},
			{Port: 3389, State: domain.PortOpen, ServiceName: "ms-wbt-server-long"},
		}}},
	}}}

	out := strings.Join(Lines(rep), "\n")
	if !strings.Contains(out, "      SERVICE: ssh       \tVERSION: OpenSSH 9.6p1") {
		t.Errorf("service not padded to 10:\n%s", out)
	}
	if !strings.Contains(out, "      SERVICE: ms-wbt-server-long\tVERSION: ") {
		t.Errorf("long service name should not be truncated:\n%s", out)
	}
	if !strings.Contains(out, "    PORT: 3389 \tSTATE") {
		t.Errorf("port not padded to 5:\n%s", out)
	}
}

func TestRenderScripts(t *testing.T) {
	rep := domain.ScanReport{Target: "t", Hosts: []domain.Host{{
		Address: "10.0.0.1", Hostname: "n", State: domain.HostUp,
		Protocols: []domain.Protocol{{Name: "udp", Ports: []domain.PortFinding{
			{Port: 161, State: domain.PortOpen, ServiceName: "snmp", Scripts: []domain.ScriptResult{
				{ID: "snmp-info", Output: "enterprise: net-snmp"},
				{ID: "snmp-sysdescr", Output: "Linux router"},
			}},
		}}},
	}}}

	lines := Lines(rep)
	want := []string{
		"  -> Checking PROTOCOL: UDP",
		"    PORT: 161  \tSTATE: *** OPEN ***",
		"      SERVICE: snmp      \tVERSION: ",
		"      [+] Extra Script Info:",
		"        -> snmp-info: enterprise: net-snmp",
		"        -> snmp-sysdescr: Linux router",
	}
	got := lines[len(lines)-len(want):]
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

// The reachability annotation is not gated on the host state:
// a DOWN host still reads "(The host is reachable)".
func TestRenderReachabilityAnnotationNotGatedOnState(t *testing.T) {
	for _, state := range []domain.HostState{domain.HostUp, domain.HostDown, domain.HostUnknown} {
		rep := domain.ScanReport{Target: "t", Hosts: []domain.Host{{Address: "10.0.0.1", Hostname: "n", State: state}}}
		out := strings.Join(Lines(rep), "\n")
		want := "STATUS: " + string(state) + " (The host is reachable)"
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	raw := testutil.Findings{HostList: []testutil.Host{{
		Addr: "10.0.0.5", Status: "up",
		PortsByProto: map[string][]testutil.Port{
			"udp": {{ID: 53, Status: "open", Name: "domain"}},
			"tcp": {{ID: 443, Status: "open", Name: "https"}, {ID: 22, Status: "open", Name: "ssh"}},
		},
	}}}

	first := renderAll(t, report.Build("10.0.0.5", raw))
	for i := 0; i < 10; i++ {
		if again := renderAll(t, report.Build("10.0.0.5", raw)); again != first {
			t.Fatalf("render %d differs:\n%s\n---\n%s", i, first, again)
		}
	}
}

func TestPersistNotices(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)

	_ = r.Saved("out.json")
	_ = r.SaveFailed(errors.New("permission denied"))

	out := buf.String()
	if !strings.Contains(out, "[+] Success! The scan report is saved in: out.json") {
		t.Errorf("missing success notice:\n%s", out)
	}
	if !strings.Contains(out, "[!] Sorry, there was an issue saving the file. Error: permission denied") {
		t.Errorf("missing failure notice:\n%s", out)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestRenderPropagatesWriteError(t *testing.T) {
	r := New(failingWriter{})
	if err := r.Render(report.Build("192.0.2.10", testutil.ScenarioA())); err == nil {
		t.Error("expected write error")
	}
}

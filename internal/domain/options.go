package domain

import (
	"fmt"
	"strings"
	"time"
)

// Timing is the scan speed profile handed to the engine.
type Timing string

const (
	TimingSlow       Timing = "slow"
	TimingNormal     Timing = "normal"
	TimingAggressive Timing = "aggressive"
)

const (
	DefaultHostTimeout = 15 * time.Minute
	DefaultMaxRetries  = 1
)

// ScanOptions is the option profile for a single engine invocation. It is
// built once and passed by value; nothing reads it from global state.
type ScanOptions struct {
	ServiceDetection bool          `yaml:"service_detection"` // -sV
	DefaultScripts   bool          `yaml:"default_scripts"`   // -sC
	Timing           Timing        `yaml:"timing"`
	HostTimeout      time.Duration `yaml:"host_timeout"`
	MaxRetries       int           `yaml:"max_retries"`

	Ports      []string `yaml:"ports,omitempty"`
	BinaryPath string   `yaml:"nmap_path,omitempty"`
}

// DefaultScanOptions returns the fixed profile: version detection and
// default scripts on, aggressive timing, 15m host timeout, one retry.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		ServiceDetection: true,
		DefaultScripts:   true,
		Timing:           TimingAggressive,
		HostTimeout:      DefaultHostTimeout,
		MaxRetries:       DefaultMaxRetries,
	}
}

func (o ScanOptions) Validate() error {
	switch o.Timing {
	case TimingSlow, TimingNormal, TimingAggressive:
	default:
		return fmt.Errorf("options: unknown timing profile %q", o.Timing)
	}
	if o.HostTimeout < 0 {
		return fmt.Errorf("options: host_timeout must not be negative")
	}
	if o.MaxRetries < 0 {
		return fmt.Errorf("options: max_retries must not be negative")
	}
	for _, p := range o.Ports {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("options: empty port entry")
		}
	}
	return nil
}

// TimingTemplate returns the nmap -T level for the profile.
func (t Timing) TimingTemplate() int {
	switch t {
	case TimingSlow:
		return 2
	case TimingNormal:
		return 3
	default:
		return 4
	}
}

// Args renders the options the way they appear on an nmap command line.
func (o ScanOptions) Args() string {
	var args []string
	if o.ServiceDetection {
		args = append(args, "-sV")
	}
	if o.DefaultScripts {
		args = append(args, "-sC")
	}
	args = append(args, fmt.Sprintf("-T%d", o.Timing.TimingTemplate()))
	if len(o.Ports) > 0 {
		args = append(args, "-p", strings.Join(o.Ports, ","))
	}
	if o.HostTimeout > 0 {
		args = append(args, "--host-timeout", formatDuration(o.HostTimeout))
	}
	args = append(args, "--max-retries", fmt.Sprint(o.MaxRetries))
	return strings.Join(args, " ")
}

func formatDuration(d time.Duration) string {
	switch {
	case d%time.Hour == 0:
		return fmt.Sprintf("%dh", d/time.Hour)
	case d%time.Minute == 0:
		return fmt.Sprintf("%dm", d/time.Minute)
	case d%time.Second == 0:
		return fmt.Sprintf("%ds", d/time.Second)
	default:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
}

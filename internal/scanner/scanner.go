package scanner

import (
	"context"
	"errors"
	"io/fs"
	"os/exec"
	"strings"

	"bytemomo/sonar/internal/domain"

	nmap "github.com/Ullaakut/nmap/v3"
	"github.com/sirupsen/logrus"
)

// NmapScanner is the scan engine adapter backed by the nmap binary.
type NmapScanner struct {
	Log *logrus.Entry
}

var _ domain.Engine = (*NmapScanner)(nil)

func New(log *logrus.Entry) *NmapScanner {
	return &NmapScanner{Log: log.WithField("scanner", "nmap")}
}

// Execute launches exactly one nmap process for target and waits for it.
// Any error returned is a *domain.ScanFailure.
func (s *NmapScanner) Execute(ctx context.Context, target string, opts domain.ScanOptions) (domain.RawFindings, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, &domain.ScanFailure{Kind: domain.ScanAborted, Detail: "no target specified"}
	}
	if err := opts.Validate(); err != nil {
		return nil, &domain.ScanFailure{Kind: domain.ScanAborted, Detail: "invalid options", Err: err}
	}

	log := s.Log.WithFields(logrus.Fields{
		"target":  target,
		"options": opts.Args(),
	})

	log.Debug("Creating nmap scanner")
	scanner, err := nmap.NewScanner(ctx, buildOptions(target, opts)...)
	if err != nil {
		log.WithError(err).Error("Failed to create nmap scanner")
		return nil, classify(err)
	}

	log.Info("Executing nmap scan")
	result, warnings, err := scanner.Run()
	if warnings != nil && len(*warnings) > 0 {
		log.WithField("warnings", *warnings).Warn("Nmap scan produced warnings")
	}
	if err != nil {
		log.WithError(err).Error("Nmap scan failed")
		return nil, classify(err)
	}
	if result == nil {
		return nil, &domain.ScanFailure{Kind: domain.ScanAborted, Detail: "nmap returned no result"}
	}
	if len(result.Hosts) == 0 && warnings != nil {
		if detail := targetError(*warnings); detail != "" {
			log.WithField("detail", detail).Error("Nmap rejected the target")
			return nil, &domain.ScanFailure{Kind: domain.ScanAborted, Detail: detail}
		}
	}

	log.WithFields(logrus.Fields{
		"hosts":   len(result.Hosts),
		"runtime": result.Stats.Finished.TimeStr,
		"summary": result.Stats.Finished.Summary,
	}).Info("Nmap scan complete")

	return NewFindings(result), nil
}

func buildOptions(target string, o domain.ScanOptions) []nmap.Option {
	opts := []nmap.Option{
		nmap.WithTargets(target),
	}

	if o.BinaryPath != "" {
		opts = append(opts, nmap.WithBinaryPath(o.BinaryPath))
	}

	if o.ServiceDetection {
		opts = append(opts, nmap.WithServiceInfo()) // -sV
	}

	if o.DefaultScripts {
		opts = append(opts, nmap.WithDefaultScript()) // -sC
	}

	switch o.Timing {
	case domain.TimingSlow:
		opts = append(opts, nmap.WithTimingTemplate(nmap.TimingPolite)) // -T2
	case domain.TimingNormal:
		opts = append(opts, nmap.WithTimingTemplate(nmap.TimingNormal)) // -T3
	default:
		opts = append(opts, nmap.WithTimingTemplate(nmap.TimingAggressive)) // -T4
	}

	if len(o.Ports) != 0 {
		opts = append(opts, nmap.WithPorts(strings.Join(o.Ports, ",")))
	}

	if o.HostTimeout > 0 {
		opts = append(opts, nmap.WithHostTimeout(o.HostTimeout))
	}

	opts = append(opts, nmap.WithMaxRetries(o.MaxRetries))

	return opts
}

// nmap exits 0 with an empty host list when it cannot use the target and
// only says so on stderr.
var targetErrorMarkers = []string{
	"Failed to resolve",
	"No targets were specified",
}

// targetError returns the first warning that reports an unusable target.
func targetError(warnings []string) string {
	for _, w := range warnings {
		for _, marker := range targetErrorMarkers {
			if strings.Contains(w, marker) {
				return strings.TrimSpace(w)
			}
		}
	}
	return ""
}

// classify maps nmap library errors onto the failure taxonomy.
func classify(err error) *domain.ScanFailure {
	switch {
	case errors.Is(err, nmap.ErrNmapNotInstalled),
		errors.Is(err, exec.ErrNotFound),
		errors.Is(err, fs.ErrNotExist),
		errors.Is(err, fs.ErrPermission):
		return &domain.ScanFailure{Kind: domain.EngineUnavailable, Detail: "nmap could not be started", Err: err}
	case errors.Is(err, nmap.ErrScanTimeout), errors.Is(err, context.DeadlineExceeded):
		return &domain.ScanFailure{Kind: domain.ScanAborted, Detail: "scan timed out", Err: err}
	case errors.Is(err, nmap.ErrScanInterrupt), errors.Is(err, context.Canceled):
		return &domain.ScanFailure{Kind: domain.ScanAborted, Detail: "scan interrupted", Err: err}
	default:
		return &domain.ScanFailure{Kind: domain.ScanAborted, Detail: "nmap reported an error", Err: err}
	}
}

package usecase

import (
	"context"
	"errors"

	"bytemomo/sonar/internal/adapter/console"
	"bytemomo/sonar/internal/domain"
	"bytemomo/sonar/internal/report"

	"github.com/sirupsen/logrus"
)

// ScanUC runs one scan end to end: announce, execute, build, render and
// optionally persist the engine dump.
type ScanUC struct {
	Log     *logrus.Entry
	Engine  domain.Engine
	Console *console.Renderer
	Writer  domain.DumpWriter
}

// Execute returns the rendered report. Only engine failures are returned as
// errors; in that case nothing is built or rendered. A failed write of the
// output file is shown and logged but does not fail the scan.
func (uc ScanUC) Execute(ctx context.Context, target string, opts domain.ScanOptions, output string) (domain.ScanReport, error) {
	log := uc.Log.WithField("target", target)

	uc.show(log, uc.Console.Announce(target, opts))

	raw, err := uc.Engine.Execute(ctx, target, opts)
	if err != nil {
		var failure *domain.ScanFailure
		if errors.As(err, &failure) && failure.Kind == domain.EngineUnavailable {
			uc.show(log, uc.Console.EngineMissing(err))
		} else {
			uc.show(log, uc.Console.ScanFailed(err))
		}
		log.WithError(err).Error("Scan failed")
		return domain.ScanReport{}, err
	}

	rep := report.Build(target, raw)
	log.WithField("hosts", len(rep.Hosts)).Info("Report built")

	uc.show(log, uc.Console.Render(rep))

	if output != "" {
		uc.persist(log, raw, output)
	}

	uc.show(log, uc.Console.Finish(target))
	return rep, nil
}

func (uc ScanUC) persist(log *logrus.Entry, raw domain.RawFindings, output string) {
	log = log.WithField("report_path", output)
	var err error
	if raw == nil {
		err = &domain.PersistFailure{Kind: domain.IOError, Path: output, Err: errors.New("no scan result to save")}
	} else {
		err = uc.Writer.Persist(raw.Dump(), output)
	}
	if err != nil {
		log.WithError(err).Warn("Could not save scan report")
		uc.show(log, uc.Console.SaveFailed(err))
		return
	}
	log.Info("Report written")
	uc.show(log, uc.Console.Saved(output))
}

func (uc ScanUC) show(log *logrus.Entry, err error) {
	if err != nil {
		log.WithError(err).Warn("Could not write to console")
	}
}

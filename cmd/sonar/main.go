package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bytemomo/sonar/internal/adapter/console"
	"bytemomo/sonar/internal/adapter/jsonreport"
	"bytemomo/sonar/internal/adapter/logger"
	"bytemomo/sonar/internal/adapter/yamlconfig"
	"bytemomo/sonar/internal/domain"
	"bytemomo/sonar/internal/scanner"
	"bytemomo/sonar/internal/usecase"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"
	commit  = "dev"
)

type flags struct {
	output   string
	profile  string
	nmapPath string
	logLevel string
	logFile  string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var failure *domain.ScanFailure
		if !errors.As(err, &failure) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "sonar <target>",
		Short: "Scan a host for open ports and identify the services behind them",
		Long: `sonar runs nmap against a single target (IP address, hostname or range),
prints every host, port, service and script result it finds and can save
nmap's full result as indented JSON.`,
		Example:       "  sonar 45.33.32.156 -o report.json",
		Version:       fmt.Sprintf("%s (%s)", version, commit),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], f)
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&f.output, "output", "o", "", "Save the full nmap result as JSON to this file")
	fl.StringVar(&f.profile, "profile", "", "YAML scan profile overriding the default options")
	fl.StringVar(&f.nmapPath, "nmap-path", "", "Path to the nmap binary (default: looked up in PATH)")
	fl.StringVar(&f.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	fl.StringVar(&f.logFile, "log-file", "", "Also write logs to this rotating file")

	return cmd
}

func run(cmd *cobra.Command, target string, f *flags) error {
	level, err := logrus.ParseLevel(f.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	closer := logger.SetLoggerToStructured(level, f.logFile)
	defer closer.Close()

	opts, err := loadOptions(f)
	if err != nil {
		return err
	}

	log := logrus.WithFields(logrus.Fields{
		"version": version,
		"target":  target,
	})
	log.Info("Starting scan")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	uc := usecase.ScanUC{
		Log:     log,
		Engine:  scanner.New(log),
		Console: console.New(cmd.OutOrStdout()),
		Writer:  jsonreport.New(),
	}

	_, err = uc.Execute(ctx, target, opts, f.output)
	return err
}

func loadOptions(f *flags) (domain.ScanOptions, error) {
	opts := domain.DefaultScanOptions()
	if f.profile != "" {
		var err error
		opts, err = yamlconfig.LoadScanOptions(f.profile)
		if err != nil {
			return domain.ScanOptions{}, fmt.Errorf("could not load profile: %w", err)
		}
	}
	if f.nmapPath != "" {
		opts.BinaryPath = f.nmapPath
	}
	return opts, nil
}

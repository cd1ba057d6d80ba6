package domain

import "fmt"

type FailureKind string

const (
	// EngineUnavailable means the scanner binary could not be located or started.
	EngineUnavailable FailureKind = "EngineUnavailable"
	// ScanAborted means the engine started but reported an error.
	ScanAborted FailureKind = "ScanAborted"
	// IOError is the only persistence failure kind.
	IOError FailureKind = "IOError"
)

// ScanFailure is terminal for the current invocation.
type ScanFailure struct {
	Kind   FailureKind
	Detail string
	Err    error
}

func (f *ScanFailure) Error() string {
	switch {
	case f.Detail != "" && f.Err != nil:
		return fmt.Sprintf("%s: %s: %v", f.Kind, f.Detail, f.Err)
	case f.Err != nil:
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	case f.Detail != "":
		return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
	}
	return string(f.Kind)
}

func (f *ScanFailure) Unwrap() error { return f.Err }

// PersistFailure is reported to the user but never changes the exit status.
type PersistFailure struct {
	Kind FailureKind
	Path string
	Err  error
}

func (f *PersistFailure) Error() string {
	return fmt.Sprintf("%s: write %s: %v", f.Kind, f.Path, f.Err)
}

func (f *PersistFailure) Unwrap() error { return f.Err }

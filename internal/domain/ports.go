package domain

import "context"

// Engine runs one scan of target with the given options.
type Engine interface {
	Execute(ctx context.Context, target string, opts ScanOptions) (RawFindings, error)
}

// DumpWriter persists an engine's native result dump.
type DumpWriter interface {
	Persist(dump any, path string) error
}

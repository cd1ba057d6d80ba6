package jsonreport

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"bytemomo/sonar/internal/domain"
)

const indent = "    "

// Writer persists the engine's native dump as indented JSON.
type Writer struct{}

var _ domain.DumpWriter = (*Writer)(nil)

func New() *Writer { return &Writer{} }

// Persist creates or replaces path with dump. The file is written next to
// path and renamed into place, so readers never see a half-written report.
// Errors are *domain.PersistFailure.
func (w *Writer) Persist(dump any, path string) error {
	if path == "" {
		return &domain.PersistFailure{Kind: domain.IOError, Path: path, Err: errors.New("empty output path")}
	}
	if err := writeJSON(path, dump); err != nil {
		return &domain.PersistFailure{Kind: domain.IOError, Path: path, Err: err}
	}
	return nil
}

func writeJSON(path string, v any) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()

	enc := json.NewEncoder(f)
	enc.SetIndent("", indent)
	if err = enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	if err = f.Chmod(0o644); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

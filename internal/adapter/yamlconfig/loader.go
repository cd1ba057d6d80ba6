package yamlconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"bytemomo/sonar/internal/domain"

	"gopkg.in/yaml.v3"
)

// LoadScanOptions reads a YAML scan profile. Keys that are absent keep the
// value from domain.DefaultScanOptions; unknown keys are rejected.
func LoadScanOptions(path string) (domain.ScanOptions, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.ScanOptions{}, err
	}
	return ParseScanOptions(b)
}

func ParseScanOptions(data []byte) (domain.ScanOptions, error) {
	opts := domain.DefaultScanOptions()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return domain.ScanOptions{}, fmt.Errorf("failed to parse scan profile: %w", err)
	}

	if err := opts.Validate(); err != nil {
		return domain.ScanOptions{}, fmt.Errorf("invalid scan profile: %w", err)
	}
	return opts, nil
}

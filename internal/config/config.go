// Package config loads previewer options from a YAML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/idelchi/datapreview/internal/preview"
)

// Allowed values for the enumerated options.
//
//nolint:gochecknoglobals // Config constant
var (
	AllowedOutputs = []string{"table", "json"}
	AllowedColors  = []string{"auto", "always", "never"}
)

// File mirrors the YAML configuration file. Unset keys leave the
// corresponding option untouched.
type File struct {
	EnforceMaxSize     *bool   `yaml:"enforce_max_size"`
	MaxSize            *string `yaml:"max_size"`
	ResolveSymlinks    *bool   `yaml:"resolve_symlinks"`
	ExitNonZeroOnError *bool   `yaml:"exit_non_zero_on_error"`
	PreviewRows        *int    `yaml:"preview_rows"`
	SampleValues       *int    `yaml:"sample_values"`
	Output             *string `yaml:"output"`
	Color              *string `yaml:"color"`
}

// Load reads and decodes the configuration file at path. Unknown keys are rejected.
func Load(path string) (*File, error) {
	if path == "" {
		return nil, errors.New("config path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var file File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %q: %w", path, err)
	}

	return &file, nil
}

// Apply overlays the keys set in the file onto opt.
func (f *File) Apply(opt *preview.Options) error {
	if f.EnforceMaxSize != nil {
		opt.EnforceMaxSize = *f.EnforceMaxSize
	}

	if f.MaxSize != nil {
		size, err := preview.ParseSize(*f.MaxSize)
		if err != nil {
			return fmt.Errorf("invalid max_size %q: %w", *f.MaxSize, err)
		}

		opt.MaxSize = size
	}

	if f.ResolveSymlinks != nil {
		opt.ResolveSymlinks = *f.ResolveSymlinks
	}

	if f.ExitNonZeroOnError != nil {
		opt.ExitNonZeroOnError = *f.ExitNonZeroOnError
	}

	if f.PreviewRows != nil {
		opt.PreviewRows = *f.PreviewRows
	}

	if f.SampleValues != nil {
		opt.SampleValues = *f.SampleValues
	}

	if f.Output != nil {
		opt.Output = *f.Output
	}

	if f.Color != nil {
		opt.Color = *f.Color
	}

	return nil
}

// Validate checks that opt holds usable values.
func Validate(opt preview.Options) error {
	if !slices.Contains(AllowedOutputs, opt.Output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", opt.Output, AllowedOutputs)
	}

	if !slices.Contains(AllowedColors, opt.Color) {
		return fmt.Errorf("invalid color mode %q: must be one of %v", opt.Color, AllowedColors)
	}

	if opt.PreviewRows < 0 {
		return errors.New("preview rows cannot be negative")
	}

	if opt.SampleValues < 0 {
		return errors.New("sample values cannot be negative")
	}

	if opt.EnforceMaxSize && opt.MaxSize <= 0 {
		return errors.New("max size must be positive when the size limit is enforced")
	}

	return nil
}

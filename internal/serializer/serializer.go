// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package serializer writes a ConfigDocument, wrapped with a generation
// timestamp, as pretty-printed JSON (or YAML).
package serializer

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/configexport/pkg/types"
)

// now is the clock used for envelope timestamps; tests replace it.
var now = time.Now

const (
	tempPrefix = ".configexport-"
	filePerm   = 0o644
)

// Serializer encodes documents and writes them to a filesystem.
type Serializer struct {
	fs     afero.Fs
	format types.OutputFormat
	indent int
}

// New creates a Serializer over fs. A nil fs means the OS filesystem.
// Zero values in cfg fall back to JSON with a 4-space indent.
func New(fs afero.Fs, cfg types.ExportConfig) *Serializer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	format := cfg.Format
	if format == "" {
		format = types.FormatJSON
	}
	indent := cfg.Indent
	if indent <= 0 {
		indent = types.DefaultIndent
	}
	return &Serializer{fs: fs, format: format, indent: indent}
}

// Envelope wraps doc with the current UTC time.
func (s *Serializer) Envelope(doc *types.ConfigDocument) types.ExportEnvelope {
	return types.ExportEnvelope{
		Timestamp: now().UTC().Format(time.RFC3339),
		Config:    doc,
	}
}

// Encode renders doc in the configured format. Failures are
// *types.SerializationError.
func (s *Serializer) Encode(doc *types.ConfigDocument) ([]byte, error) {
	if doc == nil {
		return nil, &types.SerializationError{Err: errors.New("nil document")}
	}
	env := s.Envelope(doc)

	var buf bytes.Buffer
	switch s.format {
	case types.FormatJSON:
		enc := gojson.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", strings.Repeat(" ", s.indent))
		if err := enc.Encode(env); err != nil {
			return nil, &types.SerializationError{Err: fmt.Errorf("encoding JSON: %w", err)}
		}
	case types.FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(s.indent)
		if err := enc.Encode(&env); err != nil {
			return nil, &types.SerializationError{Err: fmt.Errorf("encoding YAML: %w", err)}
		}
		if err := enc.Close(); err != nil {
			return nil, &types.SerializationError{Err: fmt.Errorf("encoding YAML: %w", err)}
		}
	default:
		return nil, &types.SerializationError{Err: fmt.Errorf("unsupported format %q: use json or yaml", s.format)}
	}
	return buf.Bytes(), nil
}

// WriteFile encodes doc and atomically replaces dest with the result. The
// parent directory of dest must already exist. Filesystem failures are
// *types.IOError; on any failure dest is left untouched.
func (s *Serializer) WriteFile(doc *types.ConfigDocument, dest string) error {
	data, err := s.Encode(doc)
	if err != nil {
		return err
	}

	dir := filepath.Dir(dest)
	info, err := s.fs.Stat(dir)
	if err != nil {
		return &types.IOError{Op: "write", Path: dest, Err: err}
	}
	if !info.IsDir() {
		return &types.IOError{Op: "write", Path: dest, Err: fmt.Errorf("%s is not a directory", dir)}
	}

	tmp, err := afero.TempFile(s.fs, dir, tempPrefix)
	if err != nil {
		return &types.IOError{Op: "create", Path: dest, Err: err}
	}
	tmpName := tmp.Name()
	defer tmp.Close()

	if _, err := tmp.Write(data); err != nil {
		s.discard(tmpName)
		return &types.IOError{Op: "write", Path: dest, Err: err}
	}
	if err := tmp.Close(); err != nil {
		s.discard(tmpName)
		return &types.IOError{Op: "write", Path: dest, Err: err}
	}
	if err := s.fs.Chmod(tmpName, filePerm); err != nil {
		s.discard(tmpName)
		return &types.IOError{Op: "chmod", Path: dest, Err: err}
	}
	if err := s.fs.Rename(tmpName, dest); err != nil {
		s.discard(tmpName)
		return &types.IOError{Op: "rename", Path: dest, Err: err}
	}
	return nil
}

// discard removes a leftover temp file. The caller already holds the error
// worth reporting, so a failed removal is ignored.
func (s *Serializer) discard(name string) {
	_ = s.fs.Remove(name)
}

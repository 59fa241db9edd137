// Package export writes tracker snapshots to files and backup destinations
// and reads them back for import.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"manuscript-tracker/internal/domain"
	apperrors "manuscript-tracker/internal/errors"
)

// SchemaVersion is written into every encoded snapshot.
const SchemaVersion = 1

// Format is a snapshot encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// document is the on-disk envelope around a snapshot.
type document struct {
	Version         int `json:"version" yaml:"version"`
	domain.Snapshot `yaml:",inline"`
}

// ParseFormat accepts json or yaml ("yml" too).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", apperrors.NewInvalidArgumentError("format", s, "snapshot format must be json or yaml")
}

// FormatFromPath picks the format from a file extension, defaulting to JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// EncodeSnapshot writes snapshot to w in the given format.
func EncodeSnapshot(w io.Writer, snapshot *domain.Snapshot, format Format) error {
	doc := document{Version: SchemaVersion, Snapshot: *snapshot}
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		return enc.Close()
	default:
		return apperrors.NewInvalidArgumentError("format", string(format), "snapshot format must be json or yaml")
	}
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot.
func DecodeSnapshot(r io.Reader, format Format) (*domain.Snapshot, error) {
	var doc document
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, apperrors.NewInvalidArgumentError("snapshot", "json", err.Error())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, apperrors.NewInvalidArgumentError("snapshot", "yaml", err.Error())
		}
	default:
		return nil, apperrors.NewInvalidArgumentError("format", string(format), "snapshot format must be json or yaml")
	}

	if doc.Version != SchemaVersion {
		return nil, apperrors.NewInvalidArgumentError("version", fmt.Sprintf("%d", doc.Version),
			fmt.Sprintf("unsupported snapshot version, expected %d", SchemaVersion))
	}
	return &doc.Snapshot, nil
}

package scene

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	clerrors "github.com/matzehuels/canvaslayout/pkg/errors"
)

// Format identifies a scene document encoding.
type Format string

// Supported document formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts a format name or a file extension ("yml", ".toml").
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "json":
		return FormatJSON, nil
	case "toml":
		return FormatTOML, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", clerrors.New(clerrors.ErrCodeInvalidFormat,
			"unsupported scene format %q (must be toml, yaml or json)", s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", clerrors.New(clerrors.ErrCodeInvalidFormat,
			"cannot detect scene format of %s: missing file extension", path)
	}
	return ParseFormat(ext)
}

// Read decodes a scene from r. Unknown keys are rejected so that typos in
// field names do not silently fall back to defaults. The scene is validated
// before it is returned.
func Read(r io.Reader, format Format) (*Scene, error) {
	var s Scene
	if err := decode(r, format, &s); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ReadFile reads and validates the scene at path.
func ReadFile(path string) (*Scene, error) {
	if err := clerrors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, clerrors.Wrap(clerrors.ErrCodeFileNotFound, err, "scene %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	s, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Write encodes the scene to w.
func Write(s *Scene, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(s); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return nil
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return clerrors.New(clerrors.ErrCodeInvalidFormat, "unsupported scene format %q", format)
	}
}

// WriteFile writes the scene to path in the format implied by its extension.
func WriteFile(s *Scene, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Write(s, &buf, format); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

func decode(r io.Reader, format Format, s *Scene) error {
	var err error
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(s)
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(s)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return clerrors.New(clerrors.ErrCodeInvalidFormat, "unknown key %q", undecoded[0].String())
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(s)
	default:
		return clerrors.New(clerrors.ErrCodeInvalidFormat, "unsupported scene format %q", format)
	}

	if errors.Is(err, io.EOF) {
		return clerrors.New(clerrors.ErrCodeInvalidFormat, "empty %s document", format)
	}
	if err != nil {
		return clerrors.Wrap(clerrors.ErrCodeInvalidFormat, err, "decode %s", format)
	}
	return nil
}

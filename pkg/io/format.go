package io

import (
	"bytes"
	"encoding/json"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/heatflow/pkg/errors"
)

// Format is a definition file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks a format from the file extension.
func FormatFromPath(path string) (Format, error) {
	if err := errors.ValidateDefinitionFilename(filepath.Base(path)); err != nil {
		return "", err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return FormatJSON, nil
	}
}

// FormatFromContentType picks a format from an HTTP Content-Type header.
// An empty header means JSON.
func FormatFromContentType(ct string) (Format, error) {
	if ct == "" {
		return FormatJSON, nil
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse content type %q", ct)
	}
	switch mt {
	case "application/json":
		return FormatJSON, nil
	case "application/toml", "text/toml", "application/x-toml":
		return FormatTOML, nil
	case "application/yaml", "application/x-yaml", "text/yaml", "text/x-yaml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q (want JSON, TOML or YAML)", mt)
}

// ContentType returns the MIME type of f.
func (f Format) ContentType() string {
	switch f {
	case FormatTOML:
		return "application/toml"
	case FormatYAML:
		return "application/yaml"
	default:
		return "application/json"
	}
}

// Decode reads a definition in format f from r and validates it.
// Decode does not close r.
func Decode(r io.Reader, f Format) (*Definition, error) {
	var def Definition
	var err error
	switch f {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&def)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&def)
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&def)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported definition format %q", f)
	}
	if err != nil {
		if err == io.EOF {
			return nil, errors.New(errors.ErrCodeInvalidDefinition, "empty %s definition", f)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidDefinition, err, "decode %s", f)
	}
	if err := def.Validate(); err != nil {
		return nil, err
	}
	return &def, nil
}

// Parse decodes a definition from raw bytes.
func Parse(data []byte, f Format) (*Definition, error) {
	return Decode(bytes.NewReader(data), f)
}

// Load reads and validates the definition file at path.
func Load(path string) (*Definition, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "definition %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer file.Close()

	def, err := Decode(file, f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return def, nil
}

// Encode writes def to w in format f.
func Encode(w io.Writer, def *Definition, f Format) error {
	var err error
	switch f {
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(def)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(def); err == nil {
			err = enc.Close()
		}
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(def)
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported definition format %q", f)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode %s", f)
	}
	return nil
}

// Save writes def to path, choosing the format from the extension.
func Save(path string, def *Definition) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, def, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

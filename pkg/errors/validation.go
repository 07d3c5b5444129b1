package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// MaxNodeIDLength bounds node identifiers in definition files.
const MaxNodeIDLength = 128

// ValidateNodeID checks a node identifier from a definition file.
// IDs end up in DOT output and cache keys, so control characters and
// quotes are rejected.
func ValidateNodeID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidDefinition, "node id cannot be empty")
	}
	if len(id) > MaxNodeIDLength {
		return New(ErrCodeInvalidDefinition, "node id too long (max %d characters)", MaxNodeIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidDefinition, "node id %q contains control characters", id)
		}
	}
	if strings.ContainsAny(id, `"\`) {
		return New(ErrCodeInvalidDefinition, "node id %q contains quotes or backslashes", id)
	}
	return nil
}

// ValidateDefinitionFilename checks that a definition file has a supported
// extension.
func ValidateDefinitionFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidPath, "definition filename cannot be empty")
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml", ".yaml", ".yml", ".json":
		return nil
	case "":
		return New(ErrCodeInvalidFormat, "definition file %q has no extension (want .toml, .yaml or .json)", name)
	default:
		return New(ErrCodeInvalidFormat, "unsupported definition file %q (want .toml, .yaml or .json)", name)
	}
}

// ValidatePath validates an output path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

package io

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShippedDefinitionsBuild(t *testing.T) {
	paths, err := filepath.Glob("../../examples/*")
	require.NoError(t, err)
	require.NotEmpty(t, paths)

	for _, p := range paths {
		t.Run(filepath.Base(p), func(t *testing.T) {
			def, err := Load(p)
			require.NoError(t, err)
			_, unmatched, err := def.Build()
			require.NoError(t, err)
			require.Empty(t, unmatched)
		})
	}
}

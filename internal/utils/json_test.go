package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

func TestSaveJSON_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.json")

	require.NoError(t, SaveJSON(path, sample{Name: "seed", Value: 42}))

	var got sample
	require.NoError(t, LoadJSON(path, &got))
	assert.Equal(t, sample{Name: "seed", Value: 42}, got)
}

func TestLoadJSON_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		var got sample
		err := LoadJSON(filepath.Join(t.TempDir(), "nope.json"), &got)
		assert.ErrorContains(t, err, "failed to read file")
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		var got sample
		err := LoadJSON(path, &got)
		assert.ErrorContains(t, err, "failed to unmarshal JSON")
	})
}

func TestSaveJSON_Unmarshalable(t *testing.T) {
	err := SaveJSON(filepath.Join(t.TempDir(), "x.json"), map[string]any{"ch": make(chan int)})

	assert.ErrorContains(t, err, "failed to marshal data")
}

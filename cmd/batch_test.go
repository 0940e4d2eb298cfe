package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadInputsCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sites.csv")
	csv := "name,location\nsite a,\"35.6, 140.1\"\nsite b,https://maps.app.goo.gl/x\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0644))

	batchInput = path
	batchColumn = "location"
	batchNoHeader = false
	t.Cleanup(func() { batchInput, batchColumn = "", "" })

	inputs, err := readInputs()
	require.NoError(t, err)
	assert.Equal(t, []string{"35.6, 140.1", "https://maps.app.goo.gl/x"}, inputs)
}

func TestReadInputsHeaderless(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sites.csv")
	require.NoError(t, os.WriteFile(path, []byte("\"35.6, 140.1\"\n\"35.7, 140.2\"\n"), 0644))

	batchInput = path
	batchColumn = ""
	batchNoHeader = true
	t.Cleanup(func() { batchInput, batchNoHeader = "", false })

	inputs, err := readInputs()
	require.NoError(t, err)
	assert.Equal(t, []string{"35.6, 140.1", "35.7, 140.2"}, inputs)
}

func TestReadInputsMissingFile(t *testing.T) {
	batchInput = filepath.Join(t.TempDir(), "absent.csv")
	t.Cleanup(func() { batchInput = "" })

	_, err := readInputs()
	assert.Error(t, err)
}

func TestOpenOutput(t *testing.T) {
	t.Run("stdout default", func(t *testing.T) {
		w, closeFn, err := openOutput("")
		require.NoError(t, err)
		defer closeFn()
		assert.Equal(t, os.Stdout, w)
	})

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out.csv")
		w, closeFn, err := openOutput(path)
		require.NoError(t, err)
		assert.NotNil(t, w)
		closeFn()
		_, statErr := os.Stat(path)
		assert.NoError(t, statErr)
	})
}

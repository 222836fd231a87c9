package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"casha/finance-advisor/internal/fileutils"
	"casha/finance-advisor/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.csv")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	assert.False(t, fileutils.DirectoryExists(filepath.Join(dir, "missing")))
	assert.True(t, fileutils.DirectoryExists(dir))
	assert.False(t, fileutils.DirectoryExists(file))
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	require.NoError(t, fileutils.EnsureDirectoryExists(dir))
	assert.True(t, fileutils.DirectoryExists(dir))
	require.NoError(t, fileutils.EnsureDirectoryExists(dir))
}

func TestReadFileLimited(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(file, []byte("0123456789"), 0600))

	data, err := fileutils.ReadFileLimited(file, 10)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", string(data))

	data, err = fileutils.ReadFileLimited(file, 0)
	require.NoError(t, err)
	assert.Len(t, data, 10)

	_, err = fileutils.ReadFileLimited(file, 9)
	require.Error(t, err)
	assert.Equal(t, parsererror.KindFileTooLarge, parsererror.KindOf(err))

	_, err = fileutils.ReadFileLimited(filepath.Join(dir, "missing.csv"), 10)
	assert.ErrorContains(t, err, "file does not exist")

	_, err = fileutils.ReadFileLimited(dir, 10)
	assert.Error(t, err)
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "nested", "out.json")
	require.NoError(t, fileutils.WriteFile(file, []byte("{}"), 0600))
	got, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(got))
}

func TestListFilesWithExtensions(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.csv", "a.XLSX", "c.pdf", "d.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.csv"), 0750))

	files, err := fileutils.ListFilesWithExtensions(dir, ".csv", ".xlsx")
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.XLSX"), filepath.Join(dir, "b.csv")}, files)

	_, err = fileutils.ListFilesWithExtensions(filepath.Join(dir, "none"), ".csv")
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		input, outDir, ext, want string
	}{
		{"in/bank.xlsx", "", ".csv", filepath.Join("in", "bank.csv")},
		{"in/bank.csv", "out", "json", filepath.Join("out", "bank.json")},
		{"bank", "", ".yaml", "bank.yaml"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, fileutils.OutputPath(tt.input, tt.outDir, tt.ext))
	}
}

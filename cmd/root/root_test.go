package root_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"casha/finance-advisor/cmd/root"
	"casha/finance-advisor/internal/config"
	"casha/finance-advisor/internal/container"
	"casha/finance-advisor/internal/logging"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "casha", root.Cmd.Use)
	assert.Contains(t, root.Cmd.Short, "personal finance tool")
	assert.NotNil(t, root.Cmd.Run)
	assert.NotNil(t, root.Cmd.PersistentPreRunE)
	assert.NotNil(t, root.Cmd.PersistentPostRun)
}

func TestRootCommand_Flags(t *testing.T) {
	root.Init()
	root.Init()

	tests := []struct {
		name      string
		shorthand string
	}{
		{"input", "i"},
		{"output", "o"},
		{"currency", ""},
		{"config", ""},
		{"log-level", ""},
		{"log-format", ""},
		{"csv-delimiter", ""},
		{"ai-enabled", ""},
		{"max-size-mb", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag := root.Cmd.PersistentFlags().Lookup(tt.name)
			require.NotNil(t, flag)
			assert.Equal(t, tt.shorthand, flag.Shorthand)
		})
	}
}

func TestRootCommand_Run(t *testing.T) {
	assert.NotPanics(t, func() {
		root.Cmd.Run(&cobra.Command{}, []string{})
	})
}

func TestParseInputAndWriteOutput(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "bank.csv")
	require.NoError(t, os.WriteFile(input, []byte("Date,Description,Amount,Category\n2024-01-15,Coffee,-4.50,Food\n"), 0600))

	c, err := container.NewContainerWithLogger(config.Defaults(), logging.NewMockLogger())
	require.NoError(t, err)
	root.SetContainer(c)
	t.Cleanup(func() {
		root.SetContainer(nil)
		root.SharedFlags = root.CommonFlags{}
	})

	root.SharedFlags.Input = input
	result, err := root.ParseInput()
	require.NoError(t, err)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, -4.5, result.Transactions[0].Amount)

	var buf bytes.Buffer
	require.NoError(t, root.WriteOutput(&buf, []byte("hello")))
	assert.Equal(t, "hello", buf.String())

	root.SharedFlags.Output = filepath.Join(dir, "out", "result.txt")
	require.NoError(t, root.WriteOutput(&buf, []byte("file")))
	got, err := os.ReadFile(root.SharedFlags.Output)
	require.NoError(t, err)
	assert.Equal(t, "file", string(got))
}

func TestParseInput_RequiresInput(t *testing.T) {
	root.SharedFlags = root.CommonFlags{}
	_, err := root.ParseInput()
	assert.ErrorContains(t, err, "--input")
}

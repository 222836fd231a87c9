package detect

import (
	"bytes"
	"context"
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

func runDetect(t *testing.T, content string) (string, error) {
	t.Helper()
	input := filepath.Join(t.TempDir(), "export.csv")
	require.NoError(t, os.WriteFile(input, []byte(content), 0600))

	c, err := container.NewContainerWithLogger(config.Defaults(), logging.NewMockLogger())
	require.NoError(t, err)
	root.SetContainer(c)
	root.SharedFlags = root.CommonFlags{Input: input}
	t.Cleanup(func() {
		root.SetContainer(nil)
		root.SharedFlags = root.CommonFlags{}
	})

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	err = Cmd.RunE(cmd, nil)
	return out.String(), err
}

func TestDetectCommand(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "rupiah keywords and magnitude",
			content: "Date,Description,Amount,Category\n" +
				"2024-01-15,Grocery Shopping,\"Rp -150.000\",Food\n" +
				"2024-01-14,Salary,\"Rp 5.000.000\",Income\n",
			want: "Detected currency: IDR\nAmounts read as:   IDR\nNet position:      Rp 4.850.000\n",
		},
		{
			name: "small dollar amounts",
			content: "Date,Description,Amount,Category\n" +
				"2024-01-15,Coffee,-4.50,Food\n" +
				"2024-01-16,Book,-20.00,Shopping\n",
			want: "Detected currency: USD\nAmounts read as:   USD\nNet position:      -$24.50\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := runDetect(t, tt.content)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectCommand_MissingInput(t *testing.T) {
	root.SharedFlags = root.CommonFlags{}
	cmd := &cobra.Command{}
	assert.Error(t, Cmd.RunE(cmd, nil))
}

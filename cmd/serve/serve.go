// Package serve handles the serve command
package serve

import (
	"os"
	"os/signal"
	"syscall"

	"casha/finance-advisor/cmd/root"

	"github.com/spf13/cobra"
)

// Addr overrides server.addr.
var Addr string

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload, summary and insight API over HTTP",
	Long: `Start the HTTP API. Clients create a session, upload a CSV or XLSX file
to it and then read the summary or request insights.

Example:
  casha serve --addr :9090`,
	RunE: serveFunc,
}

func init() {
	Cmd.Flags().StringVar(&Addr, "addr", "", "Listen address (default: server.addr)")
}

func serveFunc(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.GetContainer().NewAPIServer(Addr).Run(ctx); err != nil {
		root.Log.WithError(err).Error("API server failed")
		return err
	}
	return nil
}

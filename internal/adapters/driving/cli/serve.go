package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/lexai/internal/adapters/driving/httpapi"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Long: `Start a JSON HTTP API over the search, quota and subscription services.

Routes:
  GET  /health
  POST /api/search     {"query": "...", "source": "static", "court": "", "year": "", "topic": ""}
  GET  /api/quota
  POST /api/upgrade    {"email": "you@example.com"}
  POST /api/downgrade`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntP("port", "p", 8080, "HTTP port")
	serveCmd.Flags().String("host", "127.0.0.1", "interface to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	host, err := cmd.Flags().GetString("host")
	if err != nil {
		return fmt.Errorf("getting host flag: %w", err)
	}
	if port <= 0 || port > 65535 {
		return fmt.Errorf("invalid port %d", port)
	}

	handler, err := httpapi.NewHandler(searchService, quotaService, subscriptionService)
	if err != nil {
		return err
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on http://%s\n", addr)
	return httpapi.Run(cmd.Context(), addr, handler)
}

package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/mark-chris/threatmap/internal/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server for AI agent integration",
	Long: `Start a Model Context Protocol (MCP) server on stdin/stdout.

The server exposes the analyze_architecture and list_attack_vectors tools for
agent integration with MCP-compatible AI coding assistants. Protocol frames
are exchanged on stdout; all logging goes to stderr.

Examples:
  # Serve the default threat intelligence document
  threatmap serve

  # Serve a specific catalog
  threatmap serve --intel ./intel/production.yaml`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	counts := catalog.Counts()
	log.WithField("vectors", counts.AttackVectors).
		WithField("vulnerabilities", counts.Vulnerabilities).
		WithField("controls", counts.SecurityControls).
		Info("Starting MCP server on stdio")

	srv := mcp.NewServer(catalog, log)
	return srv.ServeStdio(os.Stdin, os.Stdout)
}

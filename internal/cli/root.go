package cli

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mark-chris/threatmap/internal/config"
	"github.com/mark-chris/threatmap/internal/threatmodel"
)

var (
	// Global flags
	archPath     string
	intelPath    string
	outputFormat string
	verbose      bool

	// Shared resources
	cfg         = config.Load()
	log         = logrus.StandardLogger()
	catalog     *threatmodel.Catalog
	application *threatmodel.Application
)

// rootCmd is the base command
var rootCmd = &cobra.Command{
	Use:   "threatmap",
	Short: "Attack surface identification and security control suggestion",
	Long: `threatmap - threat modeling for application architectures.

Reads an architecture document and a threat intelligence document, identifies
components exposed to attack, attaches known vulnerabilities to them, and
suggests security controls with an explanation for each suggestion.

Examples:
  # Scaffold starter documents in the current directory
  threatmap init

  # Generate a threat model report
  threatmap analyze

  # Machine-readable report for pipelines
  threatmap analyze --format json

  # Inspect the loaded intelligence
  threatmap list vectors
  threatmap get control "Input Validation"

  # Check documents without analyzing
  threatmap validate

  # Start the MCP server for AI agent integration
  threatmap serve`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configureLogging()

		// These commands manage documents themselves or need none
		switch cmd.Name() {
		case "help", "version", "init", "validate":
			return nil
		}

		log.WithField("path", intelPath).Debug("Loading threat intelligence")
		loaded, err := threatmodel.LoadIntel(intelPath)
		if err != nil {
			return fmt.Errorf("failed to load threat intelligence: %w", err)
		}
		catalog = loaded

		// Only analyze needs the architecture document up front
		if cmd.Name() == "analyze" {
			log.WithField("path", archPath).Debug("Loading architecture")
			app, err := threatmodel.LoadArchitecture(archPath)
			if err != nil {
				return fmt.Errorf("failed to load architecture: %w", err)
			}
			application = app
		}

		return nil
	},
}

// Execute runs the CLI
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVarP(&archPath, "arch", "a", cfg.ArchitecturePath,
		"Path to the architecture document")
	rootCmd.PersistentFlags().StringVarP(&intelPath, "intel", "i", cfg.IntelPath,
		"Path to the threat intelligence document")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", cfg.OutputFormat,
		"Output format: text, json, or yaml")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Verbose human-readable output and debug logging")

	// Add subcommands
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// configureLogging routes diagnostics to stderr so stdout stays
// reserved for command output and protocol frames
func configureLogging() {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	if verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
}

// getFormat returns the output format based on flags
func getFormat() threatmodel.OutputFormat {
	if verbose {
		return threatmodel.FormatText
	}
	switch outputFormat {
	case "json":
		return threatmodel.FormatJSON
	case "yaml":
		return threatmodel.FormatYAML
	default:
		return threatmodel.FormatText
	}
}

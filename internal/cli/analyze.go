package cli

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mark-chris/threatmap/internal/threatmodel"
)

var (
	analyzeAgent        bool
	analyzeBudget       int
	analyzeSurfacesOnly bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Identify attack surfaces and suggest security controls",
	Long: `Analyze the architecture document against the threat intelligence document.

Identifies which services and databases present an attack surface, attaches the
vulnerabilities that apply to each, and suggests security controls with a
reason for every suggestion.

Examples:
  # Human-readable report
  threatmap analyze

  # Full report as JSON
  threatmap analyze --format json

  # Surfaces without control suggestions
  threatmap analyze --surfaces-only

  # Token-budgeted digest for AI agents
  threatmap analyze --agent --budget 300`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeAgent, "agent", false,
		"Emit a compact token-budgeted digest instead of a full report")
	analyzeCmd.Flags().IntVar(&analyzeBudget, "budget", cfg.TokenBudget,
		"Token budget for --agent output")
	analyzeCmd.Flags().BoolVar(&analyzeSurfacesOnly, "surfaces-only", false,
		"Identify attack surfaces but skip control suggestions")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	surfaces := threatmodel.IdentifySurfaces(application, catalog.Vulnerabilities())

	var suggestions []*threatmodel.SuggestedControl
	if !analyzeSurfacesOnly {
		suggestions = threatmodel.SuggestControls(surfaces, catalog.Controls())
	}

	log.WithFields(logrus.Fields{
		"surfaces":    len(surfaces),
		"suggestions": len(suggestions),
	}).Debug("Analysis complete")

	report := threatmodel.BuildReport(application, catalog, surfaces, suggestions, archPath, intelPath)

	if analyzeAgent {
		counter, err := threatmodel.NewTokenCounter()
		if err != nil {
			log.WithError(err).Warn("Token encoder unavailable, using approximate counts")
		}
		fmt.Println(threatmodel.BuildAgentReport(report, counter, analyzeBudget))
		return nil
	}

	output, err := threatmodel.FormatReport(report, getFormat())
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	fmt.Println(output)
	return nil
}

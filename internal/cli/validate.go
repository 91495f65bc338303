package cli

import (
	"fmt"
	"os"

	"github.com/mark-chris/threatmap/internal/threatmodel"
	"github.com/spf13/cobra"
)

var (
	validateArchOnly  bool
	validateIntelOnly bool
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the architecture and threat intelligence documents",
	Long: `Validate both input documents without running an analysis.

Checks that each document parses, that required keys are present, and that
every cross-reference (network zones, attack vectors) resolves.

Examples:
  # Validate both documents
  threatmap validate

  # Validate one document
  threatmap validate --arch-only
  threatmap validate --intel-only`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateArchOnly, "arch-only", false,
		"Validate only the architecture document")
	validateCmd.Flags().BoolVar(&validateIntelOnly, "intel-only", false,
		"Validate only the threat intelligence document")
}

// documentCheck is the outcome of validating one document
type documentCheck struct {
	label  string
	detail string
	err    error
}

// checkArchitecture loads the architecture document and summarizes it
func checkArchitecture(path string) documentCheck {
	app, err := threatmodel.LoadArchitecture(path)
	if err != nil {
		return documentCheck{label: path, err: err}
	}
	return documentCheck{
		label: path,
		detail: fmt.Sprintf("%d zone(s), %d service(s), %d database(s)",
			len(app.NetworkZones), len(app.Services), len(app.Databases)),
	}
}

// checkIntel loads the threat intelligence document and summarizes it
func checkIntel(path string) documentCheck {
	loaded, err := threatmodel.LoadIntel(path)
	if err != nil {
		return documentCheck{label: path, err: err}
	}
	counts := loaded.Counts()
	return documentCheck{
		label: path,
		detail: fmt.Sprintf("%d actors, %d vectors, %d vulnerabilities, %d controls",
			counts.ThreatActors, counts.AttackVectors, counts.Vulnerabilities, counts.SecurityControls),
	}
}

// printCheck renders one check result and reports whether it failed
func printCheck(check documentCheck) bool {
	if check.err != nil {
		fmt.Printf("✗ %s\n", check.label)
		fmt.Printf("  ERROR: %s\n", check.err)
		return true
	}
	fmt.Printf("✓ %s (%s)\n", check.label, check.detail)
	return false
}

func runValidate(cmd *cobra.Command, args []string) error {
	var checks []documentCheck
	if !validateIntelOnly {
		checks = append(checks, checkArchitecture(archPath))
	}
	if !validateArchOnly {
		checks = append(checks, checkIntel(intelPath))
	}

	failed := 0
	for _, check := range checks {
		if printCheck(check) {
			failed++
		}
	}

	// Summary
	fmt.Printf("\nValidated %d document(s): %d error(s)\n", len(checks), failed)

	if failed > 0 {
		os.Exit(1)
	}

	return nil
}

package cli

import (
	"fmt"
	"strings"

	"github.com/mark-chris/threatmap/internal/threatmodel"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <actors|vectors|vulnerabilities|controls>",
	Short: "List entries from the threat intelligence catalog",
	Long: `List one section of the loaded threat intelligence catalog.

Examples:
  # List all attack vectors
  threatmap list vectors

  # List security controls with full detail
  threatmap list controls --verbose`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"actors", "vectors", "vulnerabilities", "controls"},
	RunE:      runList,
}

func runList(cmd *cobra.Command, args []string) error {
	switch args[0] {
	case "actors":
		return listActors()
	case "vectors":
		return listVectors()
	case "vulnerabilities":
		return listVulnerabilities()
	case "controls":
		return listControls()
	default:
		return fmt.Errorf("unknown catalog section: %s (expected actors, vectors, vulnerabilities, or controls)", args[0])
	}
}

func listActors() error {
	actors := catalog.Actors()
	if len(actors) == 0 {
		fmt.Println("No threat actors found")
		return nil
	}

	fmt.Printf("Found %d threat actor(s):\n\n", len(actors))
	for _, actor := range actors {
		if verbose {
			if err := printEntryDetail(actor); err != nil {
				return err
			}
		} else {
			fmt.Printf("%-30s  %s\n", actor.Name, actor.Motivation)
		}
	}
	return nil
}

func listVectors() error {
	vectors := catalog.Vectors()
	if len(vectors) == 0 {
		fmt.Println("No attack vectors found")
		return nil
	}

	fmt.Printf("Found %d attack vector(s):\n\n", len(vectors))
	for _, vector := range vectors {
		if verbose {
			if err := printEntryDetail(vector); err != nil {
				return err
			}
		} else {
			fmt.Printf("%-30s  [%s]\n", vector.Name, strings.Join(vector.TargetComponents, "/"))
		}
	}
	return nil
}

func listVulnerabilities() error {
	vulns := catalog.Vulnerabilities()
	if len(vulns) == 0 {
		fmt.Println("No vulnerabilities found")
		return nil
	}

	fmt.Printf("Found %d vulnerability(s):\n\n", len(vulns))
	for _, vuln := range vulns {
		if verbose {
			if err := printEntryDetail(vuln); err != nil {
				return err
			}
		} else {
			fmt.Printf("%-30s  [%s]  via %s\n", vuln.Name, vuln.Severity, vuln.AttackVector.Name)
		}
	}
	return nil
}

func listControls() error {
	controls := catalog.Controls()
	if len(controls) == 0 {
		fmt.Println("No security controls found")
		return nil
	}

	fmt.Printf("Found %d security control(s):\n\n", len(controls))
	for _, control := range controls {
		if verbose {
			if err := printEntryDetail(control); err != nil {
				return err
			}
		} else {
			fmt.Printf("%-30s  [%s]  %s\n", control.Name, control.ImplementationStatus, control.Owner)
		}
	}
	return nil
}

// printEntryDetail renders one catalog entry in full text form
func printEntryDetail(entry interface{}) error {
	output, err := threatmodel.FormatEntryDetail(entry, threatmodel.FormatText)
	if err != nil {
		return fmt.Errorf("failed to format entry: %w", err)
	}
	fmt.Println(output)
	fmt.Println()
	return nil
}

package cli

import (
	"fmt"

	"github.com/mark-chris/threatmap/internal/threatmodel"
	"github.com/spf13/cobra"
)

var getCmd = &cobra.Command{
	Use:   "get <actor|vector|vulnerability|control> <name>",
	Short: "Get a catalog entry by name",
	Long: `Retrieve one entry from the threat intelligence catalog.

Examples:
  # Get an attack vector (JSON)
  threatmap get vector "SQL Injection" --format json

  # Get a security control (human-readable)
  threatmap get control "Input Validation" --verbose`,
	Args: cobra.ExactArgs(2),
	RunE: runGet,
}

func runGet(cmd *cobra.Command, args []string) error {
	kind, name := args[0], args[1]

	var entry interface{}
	switch kind {
	case "actor":
		if actor := catalog.ActorByName(name); actor != nil {
			entry = actor
		} else {
			return fmt.Errorf("threat actor not found: %s", name)
		}
	case "vector":
		if vector := catalog.VectorByName(name); vector != nil {
			entry = vector
		} else {
			return fmt.Errorf("attack vector not found: %s", name)
		}
	case "vulnerability":
		if vuln := catalog.VulnerabilityByName(name); vuln != nil {
			entry = vuln
		} else {
			return fmt.Errorf("vulnerability not found: %s", name)
		}
	case "control":
		if control := catalog.ControlByName(name); control != nil {
			entry = control
		} else {
			return fmt.Errorf("security control not found: %s", name)
		}
	default:
		return fmt.Errorf("unknown catalog section: %s (expected actor, vector, vulnerability, or control)", kind)
	}

	output, err := threatmodel.FormatEntryDetail(entry, getFormat())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	fmt.Println(output)
	return nil
}

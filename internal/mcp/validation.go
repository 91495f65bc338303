package mcp

import (
	"fmt"
	"strings"

	"github.com/mark-chris/threatmap/internal/threatmodel"
)

// validateToolName validates the tool name against the advertised tools
func validateToolName(name string) error {
	if name != toolAnalyzeArchitecture && name != toolListAttackVectors {
		return fmt.Errorf("unknown tool: %s", name)
	}
	return nil
}

// validateArchitectureDoc validates the architecture parameter
func validateArchitectureDoc(architecture string) error {
	if strings.TrimSpace(architecture) == "" {
		return fmt.Errorf("architecture must be a non-empty YAML document")
	}
	return nil
}

// validateVerbosity validates the verbosity parameter
func validateVerbosity(verbosity string) error {
	if verbosity == "" {
		return nil // Optional field
	}

	validVerbosity := []string{"summary", "full"}
	for _, valid := range validVerbosity {
		if verbosity == valid {
			return nil
		}
	}

	return fmt.Errorf("Invalid verbosity '%s'. Supported values: summary, full", verbosity)
}

// validateTarget validates the target parameter
func validateTarget(target string) error {
	if target == "" {
		return nil // Optional field
	}

	validTargets := []string{threatmodel.ComponentService, threatmodel.ComponentDatabase}
	for _, valid := range validTargets {
		if target == valid {
			return nil
		}
	}

	return fmt.Errorf("Invalid target '%s'. Supported values: %s", target, strings.Join(validTargets, ", "))
}

// validateNoUnknownParams checks for unknown parameters
func validateNoUnknownParams(args map[string]interface{}, allowed []string) error {
	allowedMap := make(map[string]bool)
	for _, key := range allowed {
		allowedMap[key] = true
	}

	for key := range args {
		if !allowedMap[key] {
			return fmt.Errorf("Unknown parameter '%s'. Supported parameters: %s", key, strings.Join(allowed, ", "))
		}
	}

	return nil
}

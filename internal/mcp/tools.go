package mcp

import (
	"encoding/json"
	"fmt"

	"github.com/mark-chris/threatmap/internal/threatmodel"
)

// Tool names exposed over tools/list
const (
	toolAnalyzeArchitecture = "analyze_architecture"
	toolListAttackVectors   = "list_attack_vectors"
)

// toolsListResult represents the tools/list response
type toolsListResult struct {
	Tools []interface{} `json:"tools"`
}

// toolsCallParams represents the tools/call request parameters
type toolsCallParams struct {
	Name      string                 `json:"name"`
	Arguments map[string]interface{} `json:"arguments"`
}

// toolCallResult represents the tools/call response
type toolCallResult struct {
	Content []interface{} `json:"content"`
	IsError bool          `json:"isError"`
}

// analyzeToolDefinition returns the MCP tool definition for
// analyze_architecture
func analyzeToolDefinition() map[string]interface{} {
	return map[string]interface{}{
		"name":        toolAnalyzeArchitecture,
		"description": "Analyze an application architecture document against the loaded threat intelligence. Identifies attack surfaces and suggests security controls for each.",
		"inputSchema": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"architecture": map[string]interface{}{
					"type":        "string",
					"minLength":   1,
					"description": "Architecture document as inline YAML (network_zones, services, databases)",
				},
				"verbosity": map[string]interface{}{
					"type":        "string",
					"enum":        []string{"summary", "full"},
					"default":     "summary",
					"description": "Output format: 'summary' for a token-budgeted digest, 'full' for the complete JSON report",
				},
			},
			"required":             []string{"architecture"},
			"additionalProperties": false,
		},
	}
}

// listVectorsToolDefinition returns the MCP tool definition for
// list_attack_vectors
func listVectorsToolDefinition() map[string]interface{} {
	return map[string]interface{}{
		"name":        toolListAttackVectors,
		"description": "List the attack vectors known to the threat intelligence catalog, optionally filtered by the component type they target.",
		"inputSchema": map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"target": map[string]interface{}{
					"type":        "string",
					"enum":        []string{threatmodel.ComponentService, threatmodel.ComponentDatabase},
					"description": "Restrict to vectors targeting this component type",
				},
			},
			"additionalProperties": false,
		},
	}
}

// handleToolsList handles the tools/list request
func handleToolsList(s *Server, params json.RawMessage) (interface{}, error) {
	// Check if initialized
	if s.getState() != stateInitialized {
		return nil, errNotInitialized
	}

	result := toolsListResult{
		Tools: []interface{}{
			analyzeToolDefinition(),
			listVectorsToolDefinition(),
		},
	}

	return result, nil
}

// handleToolsCall handles the tools/call request
func handleToolsCall(s *Server, params json.RawMessage) (interface{}, error) {
	// Check if initialized
	if s.getState() != stateInitialized {
		return nil, errNotInitialized
	}

	// Parse parameters
	var p toolsCallParams
	if err := json.Unmarshal(params, &p); err != nil {
		return nil, fmt.Errorf("invalid tools/call params: %w", err)
	}

	// Validate tool name (protocol error)
	if err := validateToolName(p.Name); err != nil {
		return nil, err
	}

	if p.Name == toolAnalyzeArchitecture {
		return callAnalyzeArchitecture(s, p.Arguments)
	}
	return callListAttackVectors(s, p.Arguments)
}

// callAnalyzeArchitecture validates and executes the
// analyze_architecture tool
func callAnalyzeArchitecture(s *Server, args map[string]interface{}) (interface{}, error) {
	architecture, _ := args["architecture"].(string)
	verbosity, _ := args["verbosity"].(string)

	// Validate architecture (tool execution error)
	if err := validateArchitectureDoc(architecture); err != nil {
		return createToolExecutionErrorResult(err.Error()), nil
	}

	// Validate verbosity (tool execution error)
	if err := validateVerbosity(verbosity); err != nil {
		return createToolExecutionErrorResult(err.Error()), nil
	}

	// Check for unknown parameters (tool execution error)
	allowed := []string{"architecture", "verbosity"}
	if err := validateNoUnknownParams(args, allowed); err != nil {
		return createToolExecutionErrorResult(err.Error()), nil
	}

	if verbosity == "" {
		verbosity = "summary"
	}

	text, err := s.analyzeDocument(architecture, verbosity)
	if err != nil {
		return createToolExecutionErrorResult(fmt.Sprintf("Analysis failed: %v", err)), nil
	}

	return toolCallResult{
		Content: []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": text,
			},
		},
		IsError: false,
	}, nil
}

// callListAttackVectors validates and executes the list_attack_vectors
// tool
func callListAttackVectors(s *Server, args map[string]interface{}) (interface{}, error) {
	target, _ := args["target"].(string)

	// Validate target (tool execution error)
	if err := validateTarget(target); err != nil {
		return createToolExecutionErrorResult(err.Error()), nil
	}

	// Check for unknown parameters (tool execution error)
	allowed := []string{"target"}
	if err := validateNoUnknownParams(args, allowed); err != nil {
		return createToolExecutionErrorResult(err.Error()), nil
	}

	return toolCallResult{
		Content: []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": s.renderVectorList(target),
			},
		},
		IsError: false,
	}, nil
}

// createToolExecutionErrorResult creates a tool execution error result
func createToolExecutionErrorResult(message string) interface{} {
	return toolCallResult{
		Content: []interface{}{
			map[string]interface{}{
				"type": "text",
				"text": message,
			},
		},
		IsError: true,
	}
}

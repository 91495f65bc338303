package threatmodel

import (
	"fmt"
	"strings"
)

// DefaultTokenBudget caps agent-mode output so it fits comfortably in
// an AI agent's context window
const DefaultTokenBudget = 500

// BuildAgentReport renders report as a compact line-per-finding listing
// for AI agents, keeping the output within budget tokens. The summary
// header and at least one finding are always included; remaining lines
// are dropped from the end with an omission note once the budget is
// reached. A budget of zero or less selects DefaultTokenBudget.
func BuildAgentReport(report *Report, tc *TokenCounter, budget int) string {
	if budget <= 0 {
		budget = DefaultTokenBudget
	}

	var lines []string
	for _, surface := range report.Surfaces {
		lines = append(lines, agentSurfaceLine(surface))
	}
	for _, suggestion := range report.Suggestions {
		lines = append(lines, agentSuggestionLine(suggestion))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Threat model: %d attack surface(s), %d suggested control(s).\n",
		len(report.Surfaces), len(report.Suggestions))

	used := tc.CountTokens(sb.String())
	added := 0
	for _, line := range lines {
		cost := tc.CountTokens(line)
		if used+cost > budget && added > 0 {
			fmt.Fprintf(&sb, "(+%d finding(s) omitted to fit the token budget)", len(lines)-added)
			return sb.String()
		}
		sb.WriteString(line)
		used += cost
		added++
	}

	return strings.TrimRight(sb.String(), "\n")
}

func agentSurfaceLine(surface SurfaceOutput) string {
	line := fmt.Sprintf("- surface %s (%s, %s): %s",
		surface.ComponentName, surface.ComponentType, surface.NetworkZone, surface.Reason)
	if len(surface.Vulnerabilities) > 0 {
		names := make([]string, len(surface.Vulnerabilities))
		for i, vuln := range surface.Vulnerabilities {
			names[i] = vuln.Name
		}
		line += "; vulns: " + strings.Join(names, ", ")
	}
	return line + "\n"
}

func agentSuggestionLine(suggestion SuggestionOutput) string {
	reason := strings.SplitN(suggestion.Reason, ". ", 2)[0]
	return fmt.Sprintf("- control %s -> %s: %s\n",
		suggestion.Control, suggestion.ComponentName, reason)
}

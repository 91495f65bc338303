package threatmodel

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// OutputFormat controls how results are rendered
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// FormatReport renders a report in the requested format. Unrecognized
// formats fall back to JSON.
func FormatReport(report *Report, format OutputFormat) (string, error) {
	switch format {
	case FormatText:
		return formatReportText(report), nil
	case FormatYAML:
		return marshalYAML(report)
	case FormatJSON:
		return marshalJSON(report)
	default:
		return marshalJSON(report)
	}
}

// FormatEntryDetail renders a single catalog entry in the requested
// format. Text output is a labeled field listing; other formats
// marshal the entry directly.
func FormatEntryDetail(entry interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatText:
		return formatEntryText(entry)
	case FormatYAML:
		return marshalYAML(entry)
	default:
		return marshalJSON(entry)
	}
}

func marshalJSON(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal to JSON: %w", err)
	}
	return string(data), nil
}

func marshalYAML(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to marshal to YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func formatReportText(report *Report) string {
	var sb strings.Builder

	sb.WriteString("Threat Model Report\n")
	fmt.Fprintf(&sb, "Run:       %s\n", report.Meta.ID)
	fmt.Fprintf(&sb, "Generated: %s\n", report.Meta.GeneratedAt)
	if report.Meta.ArchitectureSource != "" || report.Meta.IntelSource != "" {
		fmt.Fprintf(&sb, "Sources:   %s\n", sourcesLine(report.Meta))
	}
	fmt.Fprintf(&sb, "Modeled:   %d service(s), %d database(s)\n", report.Meta.Services, report.Meta.Databases)
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")

	if len(report.Surfaces) == 0 {
		sb.WriteString("No attack surfaces identified.\n")
	} else {
		fmt.Fprintf(&sb, "ATTACK SURFACES (%d)\n", len(report.Surfaces))
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		for i, surface := range report.Surfaces {
			fmt.Fprintf(&sb, "[%d] %s (%s, zone: %s)\n", i+1, surface.ComponentName, surface.ComponentType, surface.NetworkZone)
			fmt.Fprintf(&sb, "    Reason: %s\n", surface.Reason)
			if len(surface.Vulnerabilities) == 0 {
				sb.WriteString("    No known vulnerabilities attached\n")
			} else {
				fmt.Fprintf(&sb, "    Potential vulnerabilities (%d):\n", len(surface.Vulnerabilities))
				for _, vuln := range surface.Vulnerabilities {
					fmt.Fprintf(&sb, "      - %s\n", vulnerabilityLine(vuln))
				}
			}
			sb.WriteString("\n")
		}
	}

	if len(report.Suggestions) == 0 {
		sb.WriteString("No security controls suggested.\n")
	} else {
		fmt.Fprintf(&sb, "SUGGESTED CONTROLS (%d)\n", len(report.Suggestions))
		sb.WriteString(strings.Repeat("-", 40) + "\n")
		for i, suggestion := range report.Suggestions {
			fmt.Fprintf(&sb, "[%d] %s -> %s\n", i+1, suggestion.Control, suggestion.ComponentName)
			fmt.Fprintf(&sb, "    %s\n\n", suggestion.Reason)
		}
	}

	return strings.TrimRight(sb.String(), "\n")
}

func sourcesLine(meta ReportMeta) string {
	var parts []string
	if meta.ArchitectureSource != "" {
		parts = append(parts, meta.ArchitectureSource)
	}
	if meta.IntelSource != "" {
		parts = append(parts, meta.IntelSource)
	}
	return strings.Join(parts, ", ")
}

func vulnerabilityLine(vuln VulnerabilityRef) string {
	line := fmt.Sprintf("%s [%s]", vuln.Name, vuln.Severity)
	if vuln.CVEID != "" {
		line += " " + vuln.CVEID
	}
	if vuln.CVSSScore != nil {
		line += fmt.Sprintf(" (CVSS %.1f)", *vuln.CVSSScore)
	}
	return line
}

func formatEntryText(entry interface{}) (string, error) {
	switch e := entry.(type) {
	case *AttackVector:
		return formatVectorText(e), nil
	case *Vulnerability:
		return formatVulnerabilityText(e), nil
	case *SecurityControl:
		return formatControlText(e), nil
	case *ThreatActor:
		return formatActorText(e), nil
	default:
		return marshalJSON(entry)
	}
}

func formatVectorText(v *AttackVector) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Attack Vector: %s\n", v.Name)
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	writeField(&sb, "Description", v.Description)
	writeField(&sb, "Targets", strings.Join(v.TargetComponents, ", "))
	writeField(&sb, "Ease of exploitation", v.EaseOfExploitation)
	writeField(&sb, "Required privileges", v.RequiredPrivileges)
	writeField(&sb, "Mitigation complexity", v.MitigationComplexity)
	writeField(&sb, "CWE", v.CWEID)
	return strings.TrimRight(sb.String(), "\n")
}

func formatVulnerabilityText(v *Vulnerability) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Vulnerability: %s\n", v.Name)
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	writeField(&sb, "Description", v.Description)
	writeField(&sb, "Severity", v.Severity)
	if v.AttackVector != nil {
		writeField(&sb, "Attack vector", v.AttackVector.Name)
	}
	writeField(&sb, "Affected components", strings.Join(v.AffectedComponents, ", "))
	writeField(&sb, "Exploitability", v.Exploitability)
	writeField(&sb, "Impact", v.ImpactDescription)
	writeField(&sb, "CVE", v.CVEID)
	if v.CVSSScore != nil {
		writeField(&sb, "CVSS", fmt.Sprintf("%.1f", *v.CVSSScore))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func formatControlText(c *SecurityControl) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Security Control: %s\n", c.Name)
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	writeField(&sb, "Description", c.Description)
	var mitigates []string
	for _, vector := range c.Mitigates {
		mitigates = append(mitigates, vector.Name)
	}
	writeField(&sb, "Mitigates", strings.Join(mitigates, ", "))
	writeField(&sb, "Cost to implement", c.CostToImplement)
	writeField(&sb, "Effectiveness", c.Effectiveness)
	writeField(&sb, "Implementation status", c.ImplementationStatus)
	writeField(&sb, "Owner", c.Owner)
	writeField(&sb, "Related vulnerabilities", strings.Join(c.RelatedVulnerabilities, ", "))
	writeField(&sb, "Residual risk", c.ResidualRisk)
	return strings.TrimRight(sb.String(), "\n")
}

func formatActorText(a *ThreatActor) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Threat Actor: %s\n", a.Name)
	sb.WriteString(strings.Repeat("=", 50) + "\n")
	writeField(&sb, "Skill level", a.SkillLevel)
	writeField(&sb, "Motivation", a.Motivation)
	writeField(&sb, "Resources", a.Resources)
	writeField(&sb, "Likely targets", strings.Join(a.LikelyTargets, ", "))
	writeField(&sb, "Attack history", strings.Join(a.AttackHistory, ", "))
	return strings.TrimRight(sb.String(), "\n")
}

func writeField(sb *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	fmt.Fprintf(sb, "%-24s %s\n", label+":", value)
}

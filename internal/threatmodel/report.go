package threatmodel

import (
	"time"

	"github.com/google/uuid"
)

// ReportMeta identifies a single analysis run
type ReportMeta struct {
	ID                 string        `yaml:"id" json:"id"`
	GeneratedAt        string        `yaml:"generated_at" json:"generated_at"`
	ArchitectureSource string        `yaml:"architecture_source,omitempty" json:"architecture_source,omitempty"`
	IntelSource        string        `yaml:"intel_source,omitempty" json:"intel_source,omitempty"`
	Services           int           `yaml:"services" json:"services"`
	Databases          int           `yaml:"databases" json:"databases"`
	Catalog            CatalogCounts `yaml:"catalog" json:"catalog"`
}

// VulnerabilityRef is the report view of a vulnerability attached to a
// surface
type VulnerabilityRef struct {
	Name      string   `yaml:"name" json:"name"`
	Severity  string   `yaml:"severity" json:"severity"`
	CVEID     string   `yaml:"cve_id,omitempty" json:"cve_id,omitempty"`
	CVSSScore *float64 `yaml:"cvss_score,omitempty" json:"cvss_score,omitempty"`
}

// SurfaceOutput is the report view of one identified attack surface.
// Reason is the rendered exposure string.
type SurfaceOutput struct {
	ComponentName   string             `yaml:"component_name" json:"component_name"`
	ComponentType   string             `yaml:"component_type" json:"component_type"`
	NetworkZone     string             `yaml:"network_zone" json:"network_zone"`
	Reason          string             `yaml:"reason" json:"reason"`
	Vulnerabilities []VulnerabilityRef `yaml:"potential_vulnerabilities,omitempty" json:"potential_vulnerabilities,omitempty"`
}

// SuggestionOutput is the report view of one suggested control
type SuggestionOutput struct {
	Control       string `yaml:"control" json:"control"`
	ComponentName string `yaml:"component_name" json:"component_name"`
	Reason        string `yaml:"reason" json:"reason"`
}

// Report is a complete analysis result ready for rendering
type Report struct {
	Meta        ReportMeta         `yaml:"meta" json:"meta"`
	Surfaces    []SurfaceOutput    `yaml:"attack_surfaces" json:"attack_surfaces"`
	Suggestions []SuggestionOutput `yaml:"suggested_controls" json:"suggested_controls"`
}

// BuildReport assembles the analysis results into a Report, stamping it
// with a fresh run id and the generation time in UTC
func BuildReport(app *Application, catalog *Catalog, surfaces []*IdentifiedAttackSurface, suggestions []*SuggestedControl, archSource, intelSource string) *Report {
	report := &Report{
		Meta: ReportMeta{
			ID:                 uuid.NewString(),
			GeneratedAt:        time.Now().UTC().Format(time.RFC3339),
			ArchitectureSource: archSource,
			IntelSource:        intelSource,
		},
	}
	if app != nil {
		report.Meta.Services = len(app.Services)
		report.Meta.Databases = len(app.Databases)
	}
	if catalog != nil {
		report.Meta.Catalog = catalog.Counts()
	}

	for _, surface := range surfaces {
		out := SurfaceOutput{
			ComponentName: surface.ComponentName,
			ComponentType: surface.ComponentType,
			NetworkZone:   surface.NetworkZone,
			Reason:        surface.Reason(),
		}
		for _, vuln := range surface.PotentialVulnerabilities {
			out.Vulnerabilities = append(out.Vulnerabilities, VulnerabilityRef{
				Name:      vuln.Name,
				Severity:  vuln.Severity,
				CVEID:     vuln.CVEID,
				CVSSScore: vuln.CVSSScore,
			})
		}
		report.Surfaces = append(report.Surfaces, out)
	}

	for _, suggestion := range suggestions {
		report.Suggestions = append(report.Suggestions, SuggestionOutput{
			Control:       suggestion.Control.Name,
			ComponentName: suggestion.AppliesToSurface.ComponentName,
			Reason:        suggestion.ReasonForSuggestion,
		})
	}

	return report
}

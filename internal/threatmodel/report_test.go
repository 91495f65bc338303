package threatmodel

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func testReportInputs() (*Application, *Catalog, []*IdentifiedAttackSurface, []*SuggestedControl) {
	app := testApplication()
	catalog := testCatalog()

	vector := catalog.VectorByName("SQL Injection")
	vuln := &Vulnerability{
		Name:         "SQL Injection in WebService",
		AttackVector: vector,
		Severity:     "High",
		CVEID:        "CVE-2023-1234",
		CVSSScore:    floatPtr(8.5),
	}
	surface := testSurface("WebService", ComponentService, vuln)
	control := testControl("Web Application Firewall", []*AttackVector{vector})
	suggestions := SuggestControls([]*IdentifiedAttackSurface{surface}, []*SecurityControl{control})

	return app, catalog, []*IdentifiedAttackSurface{surface}, suggestions
}

// TestBuildReport_Meta tests run identification and input counts
func TestBuildReport_Meta(t *testing.T) {
	app, catalog, surfaces, suggestions := testReportInputs()

	report := BuildReport(app, catalog, surfaces, suggestions, "architecture.yaml", "threat_intelligence.yaml")

	if _, err := uuid.Parse(report.Meta.ID); err != nil {
		t.Errorf("Meta.ID %q is not a valid UUID: %v", report.Meta.ID, err)
	}
	if _, err := time.Parse(time.RFC3339, report.Meta.GeneratedAt); err != nil {
		t.Errorf("Meta.GeneratedAt %q is not RFC3339: %v", report.Meta.GeneratedAt, err)
	}
	if report.Meta.ArchitectureSource != "architecture.yaml" || report.Meta.IntelSource != "threat_intelligence.yaml" {
		t.Errorf("unexpected sources: %+v", report.Meta)
	}
	if report.Meta.Services != 2 || report.Meta.Databases != 2 {
		t.Errorf("Services/Databases = %d/%d, want 2/2", report.Meta.Services, report.Meta.Databases)
	}
	if report.Meta.Catalog != catalog.Counts() {
		t.Errorf("Meta.Catalog = %+v, want %+v", report.Meta.Catalog, catalog.Counts())
	}
}

// TestBuildReport_SurfaceView tests the rendered surface entries
func TestBuildReport_SurfaceView(t *testing.T) {
	app, catalog, surfaces, suggestions := testReportInputs()

	report := BuildReport(app, catalog, surfaces, suggestions, "", "")

	if len(report.Surfaces) != 1 {
		t.Fatalf("got %d surfaces, want 1", len(report.Surfaces))
	}
	surface := report.Surfaces[0]
	if surface.ComponentName != "WebService" || surface.ComponentType != ComponentService {
		t.Errorf("unexpected surface identity: %+v", surface)
	}
	if surface.Reason != "Publicly exposed service" {
		t.Errorf("Reason = %q, want %q", surface.Reason, "Publicly exposed service")
	}
	if len(surface.Vulnerabilities) != 1 {
		t.Fatalf("got %d vulnerability refs, want 1", len(surface.Vulnerabilities))
	}
	ref := surface.Vulnerabilities[0]
	if ref.Name != "SQL Injection in WebService" || ref.Severity != "High" || ref.CVEID != "CVE-2023-1234" {
		t.Errorf("unexpected vulnerability ref: %+v", ref)
	}
	if ref.CVSSScore == nil || *ref.CVSSScore != 8.5 {
		t.Errorf("CVSSScore = %v, want 8.5", ref.CVSSScore)
	}
}

// TestBuildReport_SuggestionView tests the rendered suggestion entries
func TestBuildReport_SuggestionView(t *testing.T) {
	app, catalog, surfaces, suggestions := testReportInputs()

	report := BuildReport(app, catalog, surfaces, suggestions, "", "")

	if len(report.Suggestions) != 1 {
		t.Fatalf("got %d suggestions, want 1", len(report.Suggestions))
	}
	suggestion := report.Suggestions[0]
	if suggestion.Control != "Web Application Firewall" {
		t.Errorf("Control = %q, want %q", suggestion.Control, "Web Application Firewall")
	}
	if suggestion.ComponentName != "WebService" {
		t.Errorf("ComponentName = %q, want %q", suggestion.ComponentName, "WebService")
	}
	if suggestion.Reason != suggestions[0].ReasonForSuggestion {
		t.Errorf("Reason = %q, want the suggestion reason", suggestion.Reason)
	}
}

// TestBuildReport_NilInputs tests that absent app and catalog leave
// zeroed counts rather than failing
func TestBuildReport_NilInputs(t *testing.T) {
	report := BuildReport(nil, nil, nil, nil, "", "")

	if report.Meta.Services != 0 || report.Meta.Databases != 0 {
		t.Errorf("expected zero component counts, got %+v", report.Meta)
	}
	if len(report.Surfaces) != 0 || len(report.Suggestions) != 0 {
		t.Error("expected empty report sections")
	}
	if report.Meta.ID == "" {
		t.Error("expected a run id even for an empty report")
	}
}

// TestBuildReport_DistinctRunIDs tests that every run gets its own id
func TestBuildReport_DistinctRunIDs(t *testing.T) {
	first := BuildReport(nil, nil, nil, nil, "", "")
	second := BuildReport(nil, nil, nil, nil, "", "")

	if first.Meta.ID == second.Meta.ID {
		t.Errorf("two runs share the id %q", first.Meta.ID)
	}
}

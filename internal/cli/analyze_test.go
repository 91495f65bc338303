package cli

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark-chris/threatmap/internal/cli/testutil"
	"github.com/mark-chris/threatmap/internal/threatmodel"
)

// resetAnalyzeFlags resets analyze command flags and global variables
func resetAnalyzeFlags() {
	resetRootFlags()
	analyzeAgent = false
	analyzeBudget = threatmodel.DefaultTokenBudget
	analyzeSurfacesOnly = false
}

// loadTestApplication loads the fixture architecture document into the
// package application
func loadTestApplication(t *testing.T, fixture *testutil.TestFixture) {
	t.Helper()

	app, err := threatmodel.LoadArchitecture(fixture.ArchPath)
	if err != nil {
		t.Fatalf("Failed to load architecture: %v", err)
	}
	application = app
}

// TestAnalyzeCommand_TextReport tests the human-readable report
func TestAnalyzeCommand_TextReport(t *testing.T) {
	// Setup test fixtures
	fixture := testutil.SetupTestDocuments(t)
	defer fixture.Cleanup()

	resetAnalyzeFlags()
	loadTestCatalog(t, fixture)
	loadTestApplication(t, fixture)

	var err error
	output := captureOutput(func() {
		err = runAnalyze(analyzeCmd, nil)
	})

	if err != nil {
		t.Fatalf("Analyze command failed: %v", err)
	}

	if !contains(output, "Threat Model Report") {
		t.Error("Expected output to contain the report header")
	}
	if !contains(output, "ATTACK SURFACES (2)") {
		t.Error("Expected 2 attack surfaces in the report")
	}
	if !contains(output, "web-frontend (Service, zone: public)") {
		t.Error("Expected the web-frontend surface line")
	}
	if !contains(output, "orders-db (Database, zone: internal)") {
		t.Error("Expected the orders-db surface line")
	}
	if !contains(output, "SUGGESTED CONTROLS (4)") {
		t.Error("Expected 4 suggested controls in the report")
	}
	if !contains(output, "Parameterized Queries -> web-frontend") {
		t.Error("Expected the parameterized queries suggestion")
	}
	if !contains(output, "Security Awareness Training -> orders-db") {
		t.Error("Expected the training suggestion for orders-db")
	}

	// The internal-only worker service presents no surface
	if contains(output, "worker (") {
		t.Error("Expected the worker service to be absent from the report")
	}
}

// TestAnalyzeCommand_JSONReport tests the machine-readable report
func TestAnalyzeCommand_JSONReport(t *testing.T) {
	// Setup test fixtures
	fixture := testutil.SetupTestDocuments(t)
	defer fixture.Cleanup()

	resetAnalyzeFlags()
	outputFormat = "json"
	loadTestCatalog(t, fixture)
	loadTestApplication(t, fixture)

	var err error
	output := captureOutput(func() {
		err = runAnalyze(analyzeCmd, nil)
	})

	if err != nil {
		t.Fatalf("Analyze command failed: %v", err)
	}

	var report threatmodel.Report
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}

	if len(report.Surfaces) != 2 {
		t.Errorf("Expected 2 surfaces, got %d", len(report.Surfaces))
	}
	if len(report.Suggestions) != 4 {
		t.Errorf("Expected 4 suggestions, got %d", len(report.Suggestions))
	}
	if report.Meta.Services != 2 || report.Meta.Databases != 2 {
		t.Errorf("Expected meta counts 2/2, got %d/%d", report.Meta.Services, report.Meta.Databases)
	}
	if report.Surfaces[0].ComponentName != "web-frontend" {
		t.Errorf("Expected web-frontend first, got %s", report.Surfaces[0].ComponentName)
	}
	if report.Suggestions[0].Control != "Parameterized Queries" {
		t.Errorf("Expected Parameterized Queries first, got %s", report.Suggestions[0].Control)
	}
	if report.Suggestions[0].ComponentName != "web-frontend" {
		t.Errorf("Expected first suggestion for web-frontend, got %s", report.Suggestions[0].ComponentName)
	}
}

// TestAnalyzeCommand_SurfacesOnly tests skipping control suggestion
func TestAnalyzeCommand_SurfacesOnly(t *testing.T) {
	// Setup test fixtures
	fixture := testutil.SetupTestDocuments(t)
	defer fixture.Cleanup()

	resetAnalyzeFlags()
	outputFormat = "json"
	analyzeSurfacesOnly = true
	loadTestCatalog(t, fixture)
	loadTestApplication(t, fixture)

	var err error
	output := captureOutput(func() {
		err = runAnalyze(analyzeCmd, nil)
	})

	if err != nil {
		t.Fatalf("Analyze command failed: %v", err)
	}

	var report threatmodel.Report
	if err := json.Unmarshal([]byte(output), &report); err != nil {
		t.Fatalf("Failed to parse JSON output: %v", err)
	}

	if len(report.Surfaces) != 2 {
		t.Errorf("Expected 2 surfaces, got %d", len(report.Surfaces))
	}
	if len(report.Suggestions) != 0 {
		t.Errorf("Expected no suggestions with --surfaces-only, got %d", len(report.Suggestions))
	}
}

// TestAnalyzeCommand_AgentMode tests the token-budgeted agent digest
func TestAnalyzeCommand_AgentMode(t *testing.T) {
	// Setup test fixtures
	fixture := testutil.SetupTestDocuments(t)
	defer fixture.Cleanup()

	resetAnalyzeFlags()
	analyzeAgent = true
	loadTestCatalog(t, fixture)
	loadTestApplication(t, fixture)

	var err error
	output := captureOutput(func() {
		err = runAnalyze(analyzeCmd, nil)
	})

	if err != nil {
		t.Fatalf("Analyze command failed: %v", err)
	}

	if !strings.HasPrefix(output, "Threat model: 2 attack surface(s), 4 suggested control(s).") {
		t.Errorf("Expected agent digest header, got: %q", output)
	}
	if !contains(output, "- surface web-frontend") {
		t.Error("Expected a surface finding line")
	}
	if !contains(output, "- control Parameterized Queries -> web-frontend") {
		t.Error("Expected a control finding line")
	}
}

// TestAnalyzeCommand_AgentBudget tests that a tight budget truncates the
// digest with an omission note
func TestAnalyzeCommand_AgentBudget(t *testing.T) {
	// Setup test fixtures
	fixture := testutil.SetupTestDocuments(t)
	defer fixture.Cleanup()

	resetAnalyzeFlags()
	analyzeAgent = true
	analyzeBudget = 1
	loadTestCatalog(t, fixture)
	loadTestApplication(t, fixture)

	var err error
	output := captureOutput(func() {
		err = runAnalyze(analyzeCmd, nil)
	})

	if err != nil {
		t.Fatalf("Analyze command failed: %v", err)
	}

	// Header plus the first finding always survive, the rest is dropped
	if !contains(output, "- surface web-frontend") {
		t.Error("Expected the first finding to survive the budget")
	}
	if !contains(output, "(+5 finding(s) omitted to fit the token budget)") {
		t.Errorf("Expected an omission note, got: %q", output)
	}
}

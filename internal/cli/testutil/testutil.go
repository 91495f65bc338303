package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TestFixture holds test document paths and provides cleanup
type TestFixture struct {
	Dir       string // Temporary directory containing both documents
	ArchPath  string // Architecture document path
	IntelPath string // Threat intelligence document path
	Cleanup   func() // Cleanup function to remove temporary resources
}

const testArchitectureDoc = `network_zones:
  - name: public
  - name: internal
services:
  - name: web-frontend
    port: 443
    protocol: HTTPS
    processes_sensitive_data: true
    network_zone: public
  - name: worker
    port: 8080
    protocol: HTTP
    network_zone: internal
databases:
  - name: orders-db
    type: SQL
    stores_sensitive_data: true
    network_zone: internal
  - name: cache
    type: NoSQL
    network_zone: internal
`

const testIntelDoc = `threat_actors:
  - name: Organized Crime
    skill_level: High
    motivation: Financial gain
attack_vectors:
  - name: SQL Injection
    description: Injection of SQL through unsanitized input
    target_components:
      - Service
      - Database
  - name: Phishing
    description: Credential theft through deceptive messages
    target_components:
      - Service
vulnerabilities:
  - name: SQL Injection in Web Frontend
    attack_vector: SQL Injection
    affected_components:
      - web-frontend
    severity: High
    cve_id: CVE-2024-1111
    cvss_score: 8.1
  - name: Weak Session Management
    attack_vector: Phishing
    severity: Medium
security_controls:
  - name: Parameterized Queries
    mitigates:
      - SQL Injection
    implementation_status: Implemented
    owner: Platform Team
    effectiveness: High
    related_vulnerabilities:
      - SQL Injection in Web Frontend
    residual_risk: Low
  - name: Security Awareness Training
    mitigates:
      - Phishing
    implementation_status: Planned
    owner: Security Team
    effectiveness: Medium
`

// SetupTestDocuments writes a valid architecture document and a matching
// threat intelligence document into a temporary directory. Analyzing the
// pair yields two attack surfaces (web-frontend and orders-db) with two
// attached vulnerabilities each, and four control suggestions.
func SetupTestDocuments(tb testing.TB) *TestFixture {
	tb.Helper()

	tmpDir := tb.TempDir()
	archPath := filepath.Join(tmpDir, "architecture.yaml")
	intelPath := filepath.Join(tmpDir, "threat_intelligence.yaml")

	// #nosec G306 -- Test files don't need restrictive permissions
	if err := os.WriteFile(archPath, []byte(testArchitectureDoc), 0644); err != nil {
		tb.Fatalf("Failed to write architecture document: %v", err)
	}
	// #nosec G306 -- Test files don't need restrictive permissions
	if err := os.WriteFile(intelPath, []byte(testIntelDoc), 0644); err != nil {
		tb.Fatalf("Failed to write threat intelligence document: %v", err)
	}

	return &TestFixture{
		Dir:       tmpDir,
		ArchPath:  archPath,
		IntelPath: intelPath,
		Cleanup:   func() {}, // tb.TempDir() handles cleanup automatically
	}
}

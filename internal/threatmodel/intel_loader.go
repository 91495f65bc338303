package threatmodel

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ResidualRiskNotAssessed is recorded on controls whose document entry
// does not state a residual risk
const ResidualRiskNotAssessed = "Not Assessed"

type intelDoc struct {
	ThreatActors     []actorEntry   `yaml:"threat_actors"`
	AttackVectors    []vectorEntry  `yaml:"attack_vectors"`
	Vulnerabilities  []vulnEntry    `yaml:"vulnerabilities"`
	SecurityControls []controlEntry `yaml:"security_controls"`
}

type actorEntry struct {
	Name          *string  `yaml:"name"`
	SkillLevel    string   `yaml:"skill_level"`
	Motivation    string   `yaml:"motivation"`
	Resources     string   `yaml:"resources"`
	LikelyTargets []string `yaml:"likely_targets"`
	AttackHistory []string `yaml:"attack_history"`
}

type vectorEntry struct {
	Name                 *string  `yaml:"name"`
	Description          string   `yaml:"description"`
	TargetComponents     []string `yaml:"target_components"`
	EaseOfExploitation   string   `yaml:"ease_of_exploitation"`
	RequiredPrivileges   string   `yaml:"required_privileges"`
	MitigationComplexity string   `yaml:"mitigation_complexity"`
	CWEID                string   `yaml:"cwe_id"`
}

type vulnEntry struct {
	Name               *string  `yaml:"name"`
	Description        string   `yaml:"description"`
	AttackVector       *string  `yaml:"attack_vector"`
	AffectedComponents []string `yaml:"affected_components"`
	Severity           *string  `yaml:"severity"`
	Exploitability     string   `yaml:"exploitability"`
	ImpactDescription  string   `yaml:"impact_description"`
	CVEID              string   `yaml:"cve_id"`
	CVSSScore          *float64 `yaml:"cvss_score"`
}

type controlEntry struct {
	Name                   *string  `yaml:"name"`
	Description            string   `yaml:"description"`
	Mitigates              []string `yaml:"mitigates"`
	CostToImplement        string   `yaml:"cost_to_implement"`
	Effectiveness          string   `yaml:"effectiveness"`
	ImplementationStatus   string   `yaml:"implementation_status"`
	Owner                  string   `yaml:"owner"`
	RelatedVulnerabilities []string `yaml:"related_vulnerabilities"`
	ResidualRisk           *string  `yaml:"residual_risk"`
}

// LoadIntel reads a threat intelligence document from path and resolves
// it into a Catalog
func LoadIntel(path string) (*Catalog, error) {
	if err := checkDocumentPath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Kind: KindFileNotFound, Path: path, Detail: "threat intelligence document not found", Err: err}
		}
		return nil, fmt.Errorf("failed to read threat intelligence document %s: %w", path, err)
	}

	catalog, err := ParseIntel(data)
	if err != nil {
		annotatePath(err, path)
		return nil, err
	}
	return catalog, nil
}

// ParseIntel decodes and resolves a threat intelligence document. All
// attack vectors are parsed first so that vulnerabilities and controls
// can reference them regardless of section order in the document.
func ParseIntel(data []byte) (*Catalog, error) {
	var doc intelDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, classifyYAMLError(err, "threat_intelligence")
	}

	// First pass: independent entries
	var actors []*ThreatActor
	for i, entry := range doc.ThreatActors {
		if entry.Name == nil || *entry.Name == "" {
			return nil, missingKey("threat_actors", fmt.Sprintf("threat actor entry %d", i), "name")
		}
		actors = append(actors, &ThreatActor{
			Name:          *entry.Name,
			SkillLevel:    entry.SkillLevel,
			Motivation:    entry.Motivation,
			Resources:     entry.Resources,
			LikelyTargets: entry.LikelyTargets,
			AttackHistory: entry.AttackHistory,
		})
	}

	var vectors []*AttackVector
	vectorsByName := make(map[string]*AttackVector)
	for i, entry := range doc.AttackVectors {
		if entry.Name == nil || *entry.Name == "" {
			return nil, missingKey("attack_vectors", fmt.Sprintf("attack vector entry %d", i), "name")
		}
		vector := &AttackVector{
			Name:                 *entry.Name,
			Description:          entry.Description,
			TargetComponents:     entry.TargetComponents,
			EaseOfExploitation:   entry.EaseOfExploitation,
			RequiredPrivileges:   entry.RequiredPrivileges,
			MitigationComplexity: entry.MitigationComplexity,
			CWEID:                entry.CWEID,
		}
		vectors = append(vectors, vector)
		vectorsByName[vector.Name] = vector
	}

	// Second pass: entries that reference vectors by name
	var vulns []*Vulnerability
	for i, entry := range doc.Vulnerabilities {
		vuln, err := resolveVulnerability(i, entry, vectorsByName)
		if err != nil {
			return nil, err
		}
		vulns = append(vulns, vuln)
	}

	var controls []*SecurityControl
	for i, entry := range doc.SecurityControls {
		control, err := resolveControl(i, entry, vectorsByName)
		if err != nil {
			return nil, err
		}
		controls = append(controls, control)
	}

	catalog := NewCatalog()
	catalog.Build(actors, vectors, vulns, controls)
	return catalog, nil
}

func resolveVulnerability(i int, entry vulnEntry, vectors map[string]*AttackVector) (*Vulnerability, error) {
	where := fmt.Sprintf("vulnerability entry %d", i)
	if entry.Name == nil || *entry.Name == "" {
		return nil, missingKey("vulnerabilities", where, "name")
	}
	if entry.AttackVector == nil || *entry.AttackVector == "" {
		return nil, missingKey("vulnerabilities", where, "attack_vector")
	}
	if entry.Severity == nil || *entry.Severity == "" {
		return nil, missingKey("vulnerabilities", where, "severity")
	}

	vector, ok := vectors[*entry.AttackVector]
	if !ok {
		return nil, &LoadError{
			Kind:    KindUnresolvedReference,
			Section: "vulnerabilities",
			Detail:  fmt.Sprintf("vulnerability '%s' references unknown attack vector '%s'", *entry.Name, *entry.AttackVector),
		}
	}

	return &Vulnerability{
		Name:               *entry.Name,
		Description:        entry.Description,
		AttackVector:       vector,
		AffectedComponents: entry.AffectedComponents,
		Severity:           *entry.Severity,
		Exploitability:     entry.Exploitability,
		ImpactDescription:  entry.ImpactDescription,
		CVEID:              entry.CVEID,
		CVSSScore:          entry.CVSSScore,
	}, nil
}

func resolveControl(i int, entry controlEntry, vectors map[string]*AttackVector) (*SecurityControl, error) {
	where := fmt.Sprintf("security control entry %d", i)
	if entry.Name == nil || *entry.Name == "" {
		return nil, missingKey("security_controls", where, "name")
	}

	var mitigates []*AttackVector
	for _, vectorName := range entry.Mitigates {
		vector, ok := vectors[vectorName]
		if !ok {
			return nil, &LoadError{
				Kind:    KindUnresolvedReference,
				Section: "security_controls",
				Detail:  fmt.Sprintf("security control '%s' mitigates unknown attack vector '%s'", *entry.Name, vectorName),
			}
		}
		mitigates = append(mitigates, vector)
	}

	residualRisk := ResidualRiskNotAssessed
	if entry.ResidualRisk != nil && *entry.ResidualRisk != "" {
		residualRisk = *entry.ResidualRisk
	}

	return &SecurityControl{
		Name:                   *entry.Name,
		Description:            entry.Description,
		Mitigates:              mitigates,
		CostToImplement:        entry.CostToImplement,
		Effectiveness:          entry.Effectiveness,
		ImplementationStatus:   entry.ImplementationStatus,
		Owner:                  entry.Owner,
		RelatedVulnerabilities: entry.RelatedVulnerabilities,
		ResidualRisk:           residualRisk,
	}, nil
}

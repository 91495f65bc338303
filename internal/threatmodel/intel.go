package threatmodel

// ThreatActor profiles an adversary from the intelligence document
type ThreatActor struct {
	Name          string   `yaml:"name" json:"name"`
	SkillLevel    string   `yaml:"skill_level,omitempty" json:"skill_level,omitempty"`
	Motivation    string   `yaml:"motivation,omitempty" json:"motivation,omitempty"`
	Resources     string   `yaml:"resources,omitempty" json:"resources,omitempty"`
	LikelyTargets []string `yaml:"likely_targets,omitempty" json:"likely_targets,omitempty"`
	AttackHistory []string `yaml:"attack_history,omitempty" json:"attack_history,omitempty"`
}

// AttackVector is a general class of attack technique. TargetComponents
// names the component types it applies to ("Service", "Database").
type AttackVector struct {
	Name                 string   `yaml:"name" json:"name"`
	Description          string   `yaml:"description,omitempty" json:"description,omitempty"`
	TargetComponents     []string `yaml:"target_components,omitempty" json:"target_components,omitempty"`
	EaseOfExploitation   string   `yaml:"ease_of_exploitation,omitempty" json:"ease_of_exploitation,omitempty"`
	RequiredPrivileges   string   `yaml:"required_privileges,omitempty" json:"required_privileges,omitempty"`
	MitigationComplexity string   `yaml:"mitigation_complexity,omitempty" json:"mitigation_complexity,omitempty"`
	CWEID                string   `yaml:"cwe_id,omitempty" json:"cwe_id,omitempty"`
}

// Vulnerability is a concrete weakness realized through exactly one
// attack vector. AffectedComponents pins it to named components; an
// empty list means it applies to any component. CVSSScore is nil when
// the document does not score the vulnerability.
type Vulnerability struct {
	Name               string        `yaml:"name" json:"name"`
	Description        string        `yaml:"description,omitempty" json:"description,omitempty"`
	AttackVector       *AttackVector `yaml:"attack_vector" json:"attack_vector"`
	AffectedComponents []string      `yaml:"affected_components,omitempty" json:"affected_components,omitempty"`
	Severity           string        `yaml:"severity" json:"severity"`
	Exploitability     string        `yaml:"exploitability,omitempty" json:"exploitability,omitempty"`
	ImpactDescription  string        `yaml:"impact_description,omitempty" json:"impact_description,omitempty"`
	CVEID              string        `yaml:"cve_id,omitempty" json:"cve_id,omitempty"`
	CVSSScore          *float64      `yaml:"cvss_score,omitempty" json:"cvss_score,omitempty"`
}

// SecurityControl is a mitigation available to the organization.
// Mitigates holds resolved vectors; RelatedVulnerabilities holds
// vulnerability names or CVE ids and is never resolved against the
// catalog, so it may reference vulnerabilities tracked elsewhere.
type SecurityControl struct {
	Name                   string          `yaml:"name" json:"name"`
	Description            string          `yaml:"description,omitempty" json:"description,omitempty"`
	Mitigates              []*AttackVector `yaml:"mitigates,omitempty" json:"mitigates,omitempty"`
	CostToImplement        string          `yaml:"cost_to_implement,omitempty" json:"cost_to_implement,omitempty"`
	Effectiveness          string          `yaml:"effectiveness,omitempty" json:"effectiveness,omitempty"`
	ImplementationStatus   string          `yaml:"implementation_status,omitempty" json:"implementation_status,omitempty"`
	Owner                  string          `yaml:"owner,omitempty" json:"owner,omitempty"`
	RelatedVulnerabilities []string        `yaml:"related_vulnerabilities,omitempty" json:"related_vulnerabilities,omitempty"`
	ResidualRisk           string          `yaml:"residual_risk,omitempty" json:"residual_risk,omitempty"`
}

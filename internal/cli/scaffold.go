package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// scaffoldAnswers holds the values collected by init
type scaffoldAnswers struct {
	AppName      string
	ServiceName  string
	ServicePort  int
	DatabaseName string
}

func defaultScaffoldAnswers() scaffoldAnswers {
	return scaffoldAnswers{
		AppName:      "my-app",
		ServiceName:  "web-frontend",
		ServicePort:  443,
		DatabaseName: "app-db",
	}
}

// Writer-side document shapes. The loader reads these same keys back.
type scaffoldZone struct {
	Name string `yaml:"name"`
}

type scaffoldService struct {
	Name                   string `yaml:"name"`
	Port                   int    `yaml:"port"`
	Protocol               string `yaml:"protocol"`
	ProcessesSensitiveData bool   `yaml:"processes_sensitive_data"`
	NetworkZone            string `yaml:"network_zone"`
}

type scaffoldDatabase struct {
	Name                string `yaml:"name"`
	Type                string `yaml:"type"`
	StoresSensitiveData bool   `yaml:"stores_sensitive_data"`
	NetworkZone         string `yaml:"network_zone"`
}

type scaffoldArchitecture struct {
	NetworkZones []scaffoldZone     `yaml:"network_zones"`
	Services     []scaffoldService  `yaml:"services"`
	Databases    []scaffoldDatabase `yaml:"databases"`
}

type scaffoldActor struct {
	Name          string   `yaml:"name"`
	SkillLevel    string   `yaml:"skill_level,omitempty"`
	Motivation    string   `yaml:"motivation,omitempty"`
	Resources     string   `yaml:"resources,omitempty"`
	LikelyTargets []string `yaml:"likely_targets,omitempty"`
}

type scaffoldVector struct {
	Name               string   `yaml:"name"`
	Description        string   `yaml:"description,omitempty"`
	TargetComponents   []string `yaml:"target_components,omitempty"`
	EaseOfExploitation string   `yaml:"ease_of_exploitation,omitempty"`
}

type scaffoldVulnerability struct {
	Name               string   `yaml:"name"`
	Description        string   `yaml:"description,omitempty"`
	AttackVector       string   `yaml:"attack_vector"`
	AffectedComponents []string `yaml:"affected_components,omitempty"`
	Severity           string   `yaml:"severity"`
	CVEID              string   `yaml:"cve_id,omitempty"`
	CVSSScore          float64  `yaml:"cvss_score,omitempty"`
}

type scaffoldControl struct {
	Name                   string   `yaml:"name"`
	Description            string   `yaml:"description,omitempty"`
	Mitigates              []string `yaml:"mitigates,omitempty"`
	CostToImplement        string   `yaml:"cost_to_implement,omitempty"`
	Effectiveness          string   `yaml:"effectiveness,omitempty"`
	ImplementationStatus   string   `yaml:"implementation_status,omitempty"`
	Owner                  string   `yaml:"owner,omitempty"`
	RelatedVulnerabilities []string `yaml:"related_vulnerabilities,omitempty"`
	ResidualRisk           string   `yaml:"residual_risk,omitempty"`
}

type scaffoldIntel struct {
	ThreatActors     []scaffoldActor         `yaml:"threat_actors"`
	AttackVectors    []scaffoldVector        `yaml:"attack_vectors"`
	Vulnerabilities  []scaffoldVulnerability `yaml:"vulnerabilities"`
	SecurityControls []scaffoldControl       `yaml:"security_controls"`
}

// writeScaffold renders both starter documents. Existing files are left
// alone unless force is set.
func writeScaffold(answers scaffoldAnswers, archPath, intelPath string, force bool) error {
	if !force {
		for _, path := range []string{archPath, intelPath} {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
		}
	}

	arch := scaffoldArchitecture{
		NetworkZones: []scaffoldZone{
			{Name: "public"},
			{Name: "internal"},
		},
		Services: []scaffoldService{
			{
				Name:                   answers.ServiceName,
				Port:                   answers.ServicePort,
				Protocol:               "HTTPS",
				ProcessesSensitiveData: true,
				NetworkZone:            "public",
			},
			{
				Name:        "worker",
				Port:        8080,
				Protocol:    "HTTP",
				NetworkZone: "internal",
			},
		},
		Databases: []scaffoldDatabase{
			{
				Name:                answers.DatabaseName,
				Type:                "SQL",
				StoresSensitiveData: true,
				NetworkZone:         "internal",
			},
		},
	}

	sqliName := "SQL Injection in " + answers.ServiceName
	intel := scaffoldIntel{
		ThreatActors: []scaffoldActor{
			{
				Name:          "Opportunistic Attacker",
				SkillLevel:    "Low",
				Motivation:    "Financial gain",
				Resources:     "Limited",
				LikelyTargets: []string{"Internet-facing services"},
			},
		},
		AttackVectors: []scaffoldVector{
			{
				Name:               "SQL Injection",
				Description:        "Injection of SQL through unsanitized input",
				TargetComponents:   []string{"Service", "Database"},
				EaseOfExploitation: "Medium",
			},
			{
				Name:             "Credential Stuffing",
				Description:      "Replay of breached credentials against login endpoints",
				TargetComponents: []string{"Service"},
			},
		},
		Vulnerabilities: []scaffoldVulnerability{
			{
				Name:               sqliName,
				Description:        "User input reaches query construction without parameterization",
				AttackVector:       "SQL Injection",
				AffectedComponents: []string{answers.ServiceName},
				Severity:           "High",
				CVEID:              "CVE-2024-10001",
				CVSSScore:          8.6,
			},
			{
				Name:         "Weak Password Policy",
				Description:  "Accounts accept short passwords without lockout",
				AttackVector: "Credential Stuffing",
				Severity:     "Medium",
			},
		},
		SecurityControls: []scaffoldControl{
			{
				Name:                   "Parameterized Queries",
				Description:            "All database access goes through bound parameters",
				Mitigates:              []string{"SQL Injection"},
				CostToImplement:        "Low",
				Effectiveness:          "High",
				ImplementationStatus:   "Implemented",
				Owner:                  "Platform Team",
				RelatedVulnerabilities: []string{sqliName},
				ResidualRisk:           "Low",
			},
			{
				Name:                 "Multi-Factor Authentication",
				Description:          "Second factor required on all login flows",
				Mitigates:            []string{"Credential Stuffing"},
				CostToImplement:      "Medium",
				Effectiveness:        "High",
				ImplementationStatus: "Planned",
				Owner:                "Security Team",
			},
		},
	}

	if err := writeYAMLDoc(archPath, arch); err != nil {
		return err
	}
	return writeYAMLDoc(intelPath, intel)
}

func writeYAMLDoc(path string, doc interface{}) error {
	data, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to render %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

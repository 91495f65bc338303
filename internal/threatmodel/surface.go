package threatmodel

import (
	"fmt"
	"strings"
)

// Component type tags carried on identified surfaces and matched
// against AttackVector.TargetComponents
const (
	ComponentService  = "Service"
	ComponentDatabase = "Database"
)

// ExposureReason tags why a component counts as an attack surface. The
// constant values are the display strings rendered in reports.
type ExposureReason string

const (
	ReasonPubliclyExposed      ExposureReason = "Publicly exposed service"
	ReasonHandlesSensitiveData ExposureReason = "Handles sensitive data"
	ReasonStoresSensitiveData  ExposureReason = "Stores sensitive data"
)

// IdentifiedAttackSurface is one exposed component together with the
// reasons it is exposed and the vulnerabilities that plausibly apply
// to it. Reasons and vulnerabilities keep first-recorded order.
type IdentifiedAttackSurface struct {
	ComponentName            string           `yaml:"component_name" json:"component_name"`
	ComponentType            string           `yaml:"component_type" json:"component_type"`
	NetworkZone              string           `yaml:"network_zone" json:"network_zone"`
	Reasons                  []ExposureReason `yaml:"reasons" json:"reasons"`
	PotentialVulnerabilities []*Vulnerability `yaml:"potential_vulnerabilities,omitempty" json:"potential_vulnerabilities,omitempty"`
}

// Reason renders the accumulated exposure reasons as a single display
// string, semicolon separated
func (s *IdentifiedAttackSurface) Reason() string {
	parts := make([]string, len(s.Reasons))
	for i, r := range s.Reasons {
		parts[i] = string(r)
	}
	return strings.Join(parts, "; ")
}

func (s *IdentifiedAttackSurface) addReason(reason ExposureReason) {
	for _, existing := range s.Reasons {
		if existing == reason {
			return
		}
	}
	s.Reasons = append(s.Reasons, reason)
}

func (s *IdentifiedAttackSurface) attach(vuln *Vulnerability) {
	for _, existing := range s.PotentialVulnerabilities {
		if existing.Name == vuln.Name {
			return
		}
	}
	s.PotentialVulnerabilities = append(s.PotentialVulnerabilities, vuln)
}

// IdentifySurfaces flags the exposed components of app and attaches the
// known vulnerabilities that apply to each.
//
// A service is exposed when its zone is named "public" (any casing) or
// when it processes sensitive data; a database is exposed when it
// stores sensitive data. A component flagged for several reasons yields
// one surface carrying all of them. Surfaces keep encounter order,
// services before databases.
//
// A vulnerability attaches to a surface when its affected_components
// list is empty, or names the component, or when the surface's
// component type appears in the vulnerability's attack vector targets.
// The clauses are checked in that order and the first hit wins.
func IdentifySurfaces(app *Application, knownVulnerabilities []*Vulnerability) []*IdentifiedAttackSurface {
	var surfaces []*IdentifiedAttackSurface
	byName := make(map[string]*IdentifiedAttackSurface)

	record := func(componentName, componentType, zone string, reason ExposureReason) {
		surface, ok := byName[componentName]
		if !ok {
			surface = &IdentifiedAttackSurface{
				ComponentName: componentName,
				ComponentType: componentType,
				NetworkZone:   zone,
			}
			byName[componentName] = surface
			surfaces = append(surfaces, surface)
		}
		surface.addReason(reason)
	}

	for _, svc := range app.Services {
		if svc.NetworkZone != nil && strings.EqualFold(svc.NetworkZone.Name, "public") {
			record(svc.Name, ComponentService, svc.NetworkZone.Name, ReasonPubliclyExposed)
		}
		if svc.ProcessesSensitiveData {
			record(svc.Name, ComponentService, zoneName(svc.NetworkZone), ReasonHandlesSensitiveData)
		}
	}

	for _, db := range app.Databases {
		if db.StoresSensitiveData {
			record(db.Name, ComponentDatabase, zoneName(db.NetworkZone), ReasonStoresSensitiveData)
		}
	}

	for _, surface := range surfaces {
		for _, vuln := range knownVulnerabilities {
			if len(vuln.AffectedComponents) == 0 || containsString(vuln.AffectedComponents, surface.ComponentName) {
				surface.attach(vuln)
				continue
			}
			if vuln.AttackVector == nil {
				panic(fmt.Sprintf("threatmodel: vulnerability '%s' has no resolved attack vector", vuln.Name))
			}
			if containsString(vuln.AttackVector.TargetComponents, surface.ComponentType) {
				surface.attach(vuln)
			}
		}
	}

	return surfaces
}

func zoneName(zone *NetworkZone) string {
	if zone == nil {
		return ""
	}
	return zone.Name
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}

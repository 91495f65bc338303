package threatmodel

import (
	"fmt"
	"strconv"
)

// SuggestedControl pairs a security control with the surface it should
// be applied to and the reason it was selected
type SuggestedControl struct {
	Control             *SecurityControl         `yaml:"control" json:"control"`
	ReasonForSuggestion string                   `yaml:"reason_for_suggestion" json:"reason_for_suggestion"`
	AppliesToSurface    *IdentifiedAttackSurface `yaml:"-" json:"-"`
}

type suggestionKey struct {
	control   string
	component string
}

// SuggestControls recommends controls for the identified surfaces.
//
// For each surface, each attached vulnerability is checked against the
// available controls in catalog order. A control fires when the
// vulnerability's name or CVE id appears in its related vulnerability
// list, or failing that, when the control mitigates the vulnerability's
// attack vector. A given control is suggested at most once per
// component; the first vulnerability to fire supplies the reason text.
func SuggestControls(surfaces []*IdentifiedAttackSurface, availableControls []*SecurityControl) []*SuggestedControl {
	var suggestions []*SuggestedControl
	suggested := make(map[suggestionKey]bool)

	for _, surface := range surfaces {
		for _, vuln := range surface.PotentialVulnerabilities {
			for _, control := range availableControls {
				key := suggestionKey{control: control.Name, component: surface.ComponentName}
				if suggested[key] {
					continue
				}
				reason, ok := controlReason(control, vuln, surface)
				if !ok {
					continue
				}
				suggestions = append(suggestions, &SuggestedControl{
					Control:             control,
					ReasonForSuggestion: reason,
					AppliesToSurface:    surface,
				})
				suggested[key] = true
			}
		}
	}

	return suggestions
}

// controlReason decides whether control applies to vuln on surface and
// builds the reason text. The related-vulnerability rule takes
// precedence over the vector rule.
func controlReason(control *SecurityControl, vuln *Vulnerability, surface *IdentifiedAttackSurface) (string, bool) {
	if containsString(control.RelatedVulnerabilities, vuln.Name) ||
		(vuln.CVEID != "" && containsString(control.RelatedVulnerabilities, vuln.CVEID)) {
		reason := fmt.Sprintf(
			"Directly addresses vulnerability '%s' (CVE: %s, CVSS: %s, Severity: %s) identified for component '%s'. %s",
			vuln.Name, cveLabel(vuln), cvssLabel(vuln), vuln.Severity, surface.ComponentName,
			controlStatus(control))
		return reason, true
	}

	if vuln.AttackVector == nil {
		panic(fmt.Sprintf("threatmodel: vulnerability '%s' has no resolved attack vector", vuln.Name))
	}
	for _, vector := range control.Mitigates {
		if vector.Name == vuln.AttackVector.Name {
			reason := fmt.Sprintf(
				"Mitigates attack vector '%s', which is relevant due to vulnerability '%s' (CVE: %s, CVSS: %s, Severity: %s) identified for component '%s'. %s",
				vector.Name, vuln.Name, cveLabel(vuln), cvssLabel(vuln), vuln.Severity, surface.ComponentName,
				controlStatus(control))
			return reason, true
		}
	}

	return "", false
}

func controlStatus(control *SecurityControl) string {
	return fmt.Sprintf("Control status: %s, owner: %s, effectiveness: %s, residual risk: %s.",
		control.ImplementationStatus, control.Owner, control.Effectiveness, control.ResidualRisk)
}

func cveLabel(vuln *Vulnerability) string {
	if vuln.CVEID == "" {
		return "N/A"
	}
	return vuln.CVEID
}

func cvssLabel(vuln *Vulnerability) string {
	if vuln.CVSSScore == nil {
		return "N/A"
	}
	return strconv.FormatFloat(*vuln.CVSSScore, 'f', 1, 64)
}

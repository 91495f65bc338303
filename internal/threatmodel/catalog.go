package threatmodel

import (
	"sync"
)

// CatalogCounts summarizes the size of a loaded catalog
type CatalogCounts struct {
	ThreatActors     int `yaml:"threat_actors" json:"threat_actors"`
	AttackVectors    int `yaml:"attack_vectors" json:"attack_vectors"`
	Vulnerabilities  int `yaml:"vulnerabilities" json:"vulnerabilities"`
	SecurityControls int `yaml:"security_controls" json:"security_controls"`
}

// Catalog holds a resolved threat intelligence snapshot with name-keyed
// lookups. Entries keep document order; lookups are safe for concurrent
// readers. Entries are treated as immutable once built.
type Catalog struct {
	actors   []*ThreatActor
	vectors  []*AttackVector
	vulns    []*Vulnerability
	controls []*SecurityControl

	actorsByName   map[string]*ThreatActor
	vectorsByName  map[string]*AttackVector
	vulnsByName    map[string]*Vulnerability
	controlsByName map[string]*SecurityControl

	mu sync.RWMutex
}

// NewCatalog creates an empty catalog
func NewCatalog() *Catalog {
	return &Catalog{
		actorsByName:   make(map[string]*ThreatActor),
		vectorsByName:  make(map[string]*AttackVector),
		vulnsByName:    make(map[string]*Vulnerability),
		controlsByName: make(map[string]*SecurityControl),
	}
}

// Build replaces the catalog contents with the given entries
func (c *Catalog) Build(actors []*ThreatActor, vectors []*AttackVector, vulns []*Vulnerability, controls []*SecurityControl) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.actors = actors
	c.vectors = vectors
	c.vulns = vulns
	c.controls = controls

	c.actorsByName = make(map[string]*ThreatActor, len(actors))
	for _, a := range actors {
		c.actorsByName[a.Name] = a
	}
	c.vectorsByName = make(map[string]*AttackVector, len(vectors))
	for _, v := range vectors {
		c.vectorsByName[v.Name] = v
	}
	c.vulnsByName = make(map[string]*Vulnerability, len(vulns))
	for _, v := range vulns {
		c.vulnsByName[v.Name] = v
	}
	c.controlsByName = make(map[string]*SecurityControl, len(controls))
	for _, ctl := range controls {
		c.controlsByName[ctl.Name] = ctl
	}
}

// Actors returns all threat actors in document order
func (c *Catalog) Actors() []*ThreatActor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.actors
}

// Vectors returns all attack vectors in document order
func (c *Catalog) Vectors() []*AttackVector {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vectors
}

// Vulnerabilities returns all vulnerabilities in document order
func (c *Catalog) Vulnerabilities() []*Vulnerability {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vulns
}

// Controls returns all security controls in document order
func (c *Catalog) Controls() []*SecurityControl {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.controls
}

// ActorByName returns the named threat actor, or nil
func (c *Catalog) ActorByName(name string) *ThreatActor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.actorsByName[name]
}

// VectorByName returns the named attack vector, or nil
func (c *Catalog) VectorByName(name string) *AttackVector {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vectorsByName[name]
}

// VulnerabilityByName returns the named vulnerability, or nil
func (c *Catalog) VulnerabilityByName(name string) *Vulnerability {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vulnsByName[name]
}

// ControlByName returns the named security control, or nil
func (c *Catalog) ControlByName(name string) *SecurityControl {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.controlsByName[name]
}

// Counts reports how many entries the catalog holds per section
func (c *Catalog) Counts() CatalogCounts {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CatalogCounts{
		ThreatActors:     len(c.actors),
		AttackVectors:    len(c.vectors),
		Vulnerabilities:  len(c.vulns),
		SecurityControls: len(c.controls),
	}
}

package threatmodel

// NetworkZone is a named segment of the deployment network, such as
// "public" or "private". Zone names are compared case-insensitively
// when deciding exposure.
type NetworkZone struct {
	Name string `yaml:"name" json:"name"`
}

// Service is a network-listening component of the modeled application
type Service struct {
	Name                   string `yaml:"name" json:"name"`
	Port                   int    `yaml:"port" json:"port"`
	Protocol               string `yaml:"protocol" json:"protocol"`
	ProcessesSensitiveData bool   `yaml:"processes_sensitive_data" json:"processes_sensitive_data"`

	// Resolved from the zone name in the document
	NetworkZone *NetworkZone `yaml:"network_zone" json:"network_zone"`
}

// Database is a data store component of the modeled application
type Database struct {
	Name                string `yaml:"name" json:"name"`
	Type                string `yaml:"type" json:"type"`
	StoresSensitiveData bool   `yaml:"stores_sensitive_data" json:"stores_sensitive_data"`

	// Resolved from the zone name in the document
	NetworkZone *NetworkZone `yaml:"network_zone" json:"network_zone"`
}

// Application is the fully resolved architecture model. Slices preserve
// the order of the source document; services and databases share zone
// pointers with NetworkZones.
type Application struct {
	NetworkZones []*NetworkZone `yaml:"network_zones" json:"network_zones"`
	Services     []*Service     `yaml:"services" json:"services"`
	Databases    []*Database    `yaml:"databases" json:"databases"`
}

// Zone returns the named network zone, or nil if the application does
// not define it
func (a *Application) Zone(name string) *NetworkZone {
	for _, z := range a.NetworkZones {
		if z.Name == name {
			return z
		}
	}
	return nil
}

package threatmodel

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document entry types use pointer fields so that a missing key is
// distinguishable from a zero value.

type architectureDoc struct {
	NetworkZones []zoneEntry     `yaml:"network_zones"`
	Services     []serviceEntry  `yaml:"services"`
	Databases    []databaseEntry `yaml:"databases"`
}

type zoneEntry struct {
	Name *string `yaml:"name"`
}

type serviceEntry struct {
	Name                   *string `yaml:"name"`
	Port                   *int    `yaml:"port"`
	Protocol               *string `yaml:"protocol"`
	NetworkZone            *string `yaml:"network_zone"`
	ProcessesSensitiveData bool    `yaml:"processes_sensitive_data"`
}

type databaseEntry struct {
	Name                *string `yaml:"name"`
	Type                *string `yaml:"type"`
	NetworkZone         *string `yaml:"network_zone"`
	StoresSensitiveData bool    `yaml:"stores_sensitive_data"`
}

// LoadArchitecture reads an architecture document from path and resolves
// it into an Application
func LoadArchitecture(path string) (*Application, error) {
	if err := checkDocumentPath(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Kind: KindFileNotFound, Path: path, Detail: "architecture document not found", Err: err}
		}
		return nil, fmt.Errorf("failed to read architecture document %s: %w", path, err)
	}

	app, err := ParseArchitecture(data)
	if err != nil {
		annotatePath(err, path)
		return nil, err
	}
	return app, nil
}

// ParseArchitecture decodes and resolves an architecture document.
// All three top-level sections are optional; entries within a present
// section must carry their required keys, and every network_zone
// reference must name a declared zone.
func ParseArchitecture(data []byte) (*Application, error) {
	var doc architectureDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, classifyYAMLError(err, "architecture")
	}

	app := &Application{}
	zones := make(map[string]*NetworkZone)

	for i, entry := range doc.NetworkZones {
		if entry.Name == nil || *entry.Name == "" {
			return nil, &LoadError{
				Kind:    KindMissingField,
				Section: "network_zones",
				Detail:  fmt.Sprintf("network zone entry %d: missing required key 'name'", i),
			}
		}
		zone := &NetworkZone{Name: *entry.Name}
		app.NetworkZones = append(app.NetworkZones, zone)
		zones[zone.Name] = zone
	}

	for i, entry := range doc.Services {
		svc, err := resolveService(i, entry, zones)
		if err != nil {
			return nil, err
		}
		app.Services = append(app.Services, svc)
	}

	for i, entry := range doc.Databases {
		db, err := resolveDatabase(i, entry, zones)
		if err != nil {
			return nil, err
		}
		app.Databases = append(app.Databases, db)
	}

	return app, nil
}

func resolveService(i int, entry serviceEntry, zones map[string]*NetworkZone) (*Service, error) {
	where := fmt.Sprintf("service entry %d", i)
	if entry.Name == nil || *entry.Name == "" {
		return nil, missingKey("services", where, "name")
	}
	if entry.Port == nil {
		return nil, missingKey("services", where, "port")
	}
	if entry.Protocol == nil || *entry.Protocol == "" {
		return nil, missingKey("services", where, "protocol")
	}
	if entry.NetworkZone == nil || *entry.NetworkZone == "" {
		return nil, missingKey("services", where, "network_zone")
	}

	zone, ok := zones[*entry.NetworkZone]
	if !ok {
		return nil, &LoadError{
			Kind:    KindUnresolvedReference,
			Section: "services",
			Detail:  fmt.Sprintf("service '%s' references unknown network zone '%s'", *entry.Name, *entry.NetworkZone),
		}
	}

	return &Service{
		Name:                   *entry.Name,
		Port:                   *entry.Port,
		Protocol:               *entry.Protocol,
		ProcessesSensitiveData: entry.ProcessesSensitiveData,
		NetworkZone:            zone,
	}, nil
}

func resolveDatabase(i int, entry databaseEntry, zones map[string]*NetworkZone) (*Database, error) {
	where := fmt.Sprintf("database entry %d", i)
	if entry.Name == nil || *entry.Name == "" {
		return nil, missingKey("databases", where, "name")
	}
	if entry.Type == nil || *entry.Type == "" {
		return nil, missingKey("databases", where, "type")
	}
	if entry.NetworkZone == nil || *entry.NetworkZone == "" {
		return nil, missingKey("databases", where, "network_zone")
	}

	zone, ok := zones[*entry.NetworkZone]
	if !ok {
		return nil, &LoadError{
			Kind:    KindUnresolvedReference,
			Section: "databases",
			Detail:  fmt.Sprintf("database '%s' references unknown network zone '%s'", *entry.Name, *entry.NetworkZone),
		}
	}

	return &Database{
		Name:                *entry.Name,
		Type:                *entry.Type,
		StoresSensitiveData: entry.StoresSensitiveData,
		NetworkZone:         zone,
	}, nil
}

func missingKey(section, entry, key string) *LoadError {
	return &LoadError{
		Kind:    KindMissingField,
		Section: section,
		Detail:  fmt.Sprintf("%s: missing required key '%s'", entry, key),
	}
}

// classifyYAMLError maps a yaml.v3 decode failure onto the LoadError
// taxonomy. Wrong scalar kinds surface as *yaml.TypeError; anything
// else is a malformed document.
func classifyYAMLError(err error, section string) error {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return &LoadError{
			Kind:    KindTypeMismatch,
			Section: section,
			Detail:  strings.Join(typeErr.Errors, "; "),
			Err:     err,
		}
	}
	return &LoadError{
		Kind:    KindMalformedDocument,
		Section: section,
		Detail:  "document is not valid YAML",
		Err:     err,
	}
}

// annotatePath fills in the source path on a LoadError produced by a
// byte-level parse
func annotatePath(err error, path string) {
	var loadErr *LoadError
	if errors.As(err, &loadErr) && loadErr.Path == "" {
		loadErr.Path = path
	}
}

// checkDocumentPath rejects paths that can never name a document,
// before any filesystem access
func checkDocumentPath(path string) error {
	if path == "" {
		return errors.New("document path is empty")
	}
	if strings.ContainsRune(path, 0) {
		return errors.New("document path contains a NUL byte")
	}
	return nil
}

package config

import "fmt"

// SectorTemplate is a named preset for the sector being crossed.
type SectorTemplate struct {
	Name        string
	Description string
	Sector      SectorConfig
}

// voyageTemplates is built once; callers get copies.
var voyageTemplates = buildTemplates(DefaultUnits())

func buildTemplates(u Units) map[string]SectorTemplate {
	return map[string]SectorTemplate{
		"asteroid_belt": {
			Name:        "Asteroid Belt",
			Description: "One cubic AU of the main belt, 20 000 bodies",
			Sector:      SectorConfig{SizeAU: 1, Classes: asteroidBeltClasses(u, 10000, 10000)},
		},
		"sparse_sector": {
			Name:        "Sparse Sector",
			Description: "One cubic AU with a tenth of the belt's population",
			Sector:      SectorConfig{SizeAU: 1, Classes: asteroidBeltClasses(u, 1000, 1000)},
		},
		"debris_field": {
			Name:        "Debris Field",
			Description: "A thousandth of a cubic AU packed with large bodies",
			Sector:      SectorConfig{SizeAU: 0.001, Classes: asteroidBeltClasses(u, 0, 2000)},
		},
	}
}

// GetSectorTemplate returns the named template, or nil if there is none.
func GetSectorTemplate(name string) *SectorTemplate {
	tmpl, ok := voyageTemplates[name]
	if !ok {
		return nil
	}
	tmpl.Sector.Classes = append([]BodyClassConfig(nil), tmpl.Sector.Classes...)
	return &tmpl
}

// ListSectorTemplates returns template names mapped to their descriptions.
func ListSectorTemplates() map[string]string {
	out := make(map[string]string, len(voyageTemplates))
	for key, tmpl := range voyageTemplates {
		out[key] = tmpl.Description
	}
	return out
}

// ApplySectorTemplate replaces the config's sector with the named template.
func ApplySectorTemplate(config *VoyageConfig, name string) error {
	tmpl := GetSectorTemplate(name)
	if tmpl == nil {
		return fmt.Errorf("unknown sector template %q", name)
	}
	config.Sector = tmpl.Sector
	return nil
}

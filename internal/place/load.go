package place

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type seedFile struct {
	Places []seedPlace `yaml:"places"`
}

type seedPlace struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"imageUrl"`
	Category    string `yaml:"category"`
	Location    string `yaml:"location"`
}

// LoadFile reads places from a YAML seed file of the form
//
//	places:
//	  - name: Helsinki Cathedral
//	    category: church
//	    location: Senate Square
//
// Every entry needs a name. An id is optional but must be a UUID when set.
func LoadFile(path string) ([]*Place, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML seed document. See LoadFile.
func Parse(data []byte) ([]*Place, error) {
	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	places := make([]*Place, 0, len(seed.Places))
	for i, entry := range seed.Places {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("place #%d: name is required", i+1)
		}

		var id string
		if entry.ID != "" {
			parsed, err := parseID(entry.ID)
			if err != nil {
				return nil, fmt.Errorf("place #%d (%s): %w", i+1, name, err)
			}
			id = parsed
		}

		places = append(places, &Place{
			ID:          id,
			Name:        name,
			Description: strings.TrimSpace(entry.Description),
			ImageURL:    strings.TrimSpace(entry.ImageURL),
			Category:    strings.TrimSpace(entry.Category),
			Location:    strings.TrimSpace(entry.Location),
		})
	}
	return places, nil
}

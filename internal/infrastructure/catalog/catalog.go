// Package catalog holds the read-only site content bundled into the binary.
package catalog

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/weblinkcreator/siteapi/internal/domain/entities"
)

//go:embed catalog.yaml
var bundled []byte

// Load decodes the bundled catalog
func Load() (*entities.Catalog, error) {
	return Parse(bundled)
}

// Parse decodes a catalog from YAML
func Parse(data []byte) (*entities.Catalog, error) {
	var c entities.Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[int]bool)
	for category, plans := range c.Subscriptions {
		for _, plan := range plans {
			if seen[plan.ID] {
				return nil, fmt.Errorf("duplicate plan id %d in category %s", plan.ID, category)
			}
			seen[plan.ID] = true
		}
	}

	return &c, nil
}

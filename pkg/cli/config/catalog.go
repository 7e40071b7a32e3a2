package config

import (
	"os"

	"github.com/breachalert/breachalert/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Catalog holds the sample breach catalog configuration
type Catalog struct {
	Path string
}

// Flags returns CLI flags for Catalog configuration
func (c *Catalog) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "breach-catalog",
			Usage:       "Path to a YAML breach catalog for sample/fallback data (built-in set if omitted)",
			Category:    "Breach lookup",
			Sources:     cli.EnvVars("BREACHALERT_BREACH_CATALOG"),
			Destination: &c.Path,
		},
	}
}

// Configure loads the breach catalog from file, or returns the built-in
// sample set when no path is given.
func (c *Catalog) Configure() (*model.BreachCatalog, error) {
	if c.Path == "" {
		return model.DefaultBreachCatalog(), nil
	}
	return LoadBreachCatalogFromFile(c.Path)
}

// LoadBreachCatalogFromFile loads a breach catalog from a YAML file
func LoadBreachCatalogFromFile(path string) (*model.BreachCatalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, goerr.Wrap(err, "breach catalog file not found",
				goerr.V("path", path))
		}
		return nil, goerr.Wrap(err, "failed to read breach catalog file",
			goerr.V("path", path))
	}

	var catalog model.BreachCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, goerr.Wrap(err, "failed to parse breach catalog YAML",
			goerr.V("path", path))
	}

	if err := catalog.Validate(); err != nil {
		return nil, goerr.Wrap(err, "invalid breach catalog",
			goerr.V("path", path))
	}

	catalog.Normalize()
	return &catalog, nil
}

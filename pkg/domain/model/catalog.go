package model

import (
	"github.com/m-mizutani/goerr/v2"
)

// BreachCatalog is the sample breach database used when no remote provider
// is configured and as the fallback data set when the provider fails.
type BreachCatalog struct {
	Breaches []BreachRecord `yaml:"breaches"`
}

// Validate validates the catalog entries
func (c *BreachCatalog) Validate() error {
	if len(c.Breaches) == 0 {
		return goerr.New("at least one breach entry is required")
	}

	names := make(map[string]bool)
	for i, b := range c.Breaches {
		if b.Name == "" {
			return goerr.New("breach name is required", goerr.V("index", i))
		}
		if b.PwnCount < 0 {
			return goerr.New("pwn count must be non-negative",
				goerr.V("name", b.Name),
				goerr.V("pwnCount", b.PwnCount))
		}
		if names[b.Name] {
			return goerr.New("duplicate breach name", goerr.V("name", b.Name))
		}
		names[b.Name] = true
	}

	return nil
}

// Normalize fills in derived fields for catalog entries loaded from file.
// Entries without an explicit severity get the calculated band.
func (c *BreachCatalog) Normalize() {
	for i := range c.Breaches {
		if len(c.Breaches[i].DataClasses) == 0 {
			c.Breaches[i].DataClasses = []string{"Email addresses"}
		}
		if c.Breaches[i].Severity == "" {
			c.Breaches[i].Severity = c.Breaches[i].CalculateSeverity()
		}
	}
}

// DefaultBreachCatalog returns the built-in sample data set of two
// well-known historical breaches.
func DefaultBreachCatalog() *BreachCatalog {
	catalog := &BreachCatalog{
		Breaches: []BreachRecord{
			{
				Name:        "Adobe",
				Title:       "Adobe Breach 2013",
				BreachDate:  "2013-10-04",
				Description: "In October 2013, 153 million Adobe accounts were breached with each containing an internal ID, username, email, encrypted password and a password hint in plain text.",
				DataClasses: []string{"Email addresses", "Passwords", "Password hints"},
				PwnCount:    152445165,
				IsVerified:  true,
				Domain:      "adobe.com",
			},
			{
				Name:        "LinkedIn",
				Title:       "LinkedIn Breach 2012",
				BreachDate:  "2012-05-05",
				Description: "In May 2016, LinkedIn had 164 million email addresses and passwords exposed. Originally hacked in 2012, the data remained private until 2016 when it was put up for sale on a dark market.",
				DataClasses: []string{"Email addresses", "Passwords"},
				PwnCount:    164611595,
				IsVerified:  true,
				Domain:      "linkedin.com",
			},
		},
	}
	catalog.Normalize()
	return catalog
}

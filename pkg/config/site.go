package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Site holds the company details shown on every page.
type Site struct {
	Name        string    `yaml:"name"`
	Tagline     string    `yaml:"tagline"`
	Description string    `yaml:"description"`
	Currency    string    `yaml:"currency"`
	Office      Office    `yaml:"office"`
	Nav         []NavItem `yaml:"nav"`
	Socials     []Social  `yaml:"socials"`
	About       []Section `yaml:"about"`
	Legal       []NavItem `yaml:"legal"`
	Locations   []string  `yaml:"locations"`
}

type Office struct {
	Address  string `yaml:"address"`
	Phone    string `yaml:"phone"`
	Email    string `yaml:"email"`
	WhatsApp string `yaml:"whatsapp"`
	Hours    string `yaml:"hours"`
}

type NavItem struct {
	Label string `yaml:"label"`
	Path  string `yaml:"path"`
}

type Social struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

type Section struct {
	Heading string `yaml:"heading"`
	Body    string `yaml:"body"`
}

// DefaultSite is used when no site file exists.
func DefaultSite() *Site {
	return &Site{
		Name:     "Estates",
		Currency: "GHS",
		Nav: []NavItem{
			{Label: "Home", Path: "/"},
			{Label: "Listings", Path: "/listings"},
			{Label: "Insights", Path: "/insights"},
			{Label: "Sell", Path: "/sell"},
			{Label: "Contact", Path: "/contact"},
		},
		Legal: []NavItem{
			{Label: "Privacy Policy", Path: "/legal/privacy-policy"},
			{Label: "Terms of Use", Path: "/legal/terms"},
		},
	}
}

// LoadSite reads the YAML site file. A missing file yields DefaultSite.
func LoadSite(path string) (*Site, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSite(), nil
		}
		return nil, err
	}

	site := DefaultSite()
	if err := yaml.Unmarshal(content, site); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if site.Currency == "" {
		site.Currency = "GHS"
	}
	return site, nil
}

package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed profile.yaml
var defaultProfile []byte

// SiteProfile holds the fixed organization text that appears in chat
// notifications and confirmation emails.
type SiteProfile struct {
	Organization struct {
		Name          string `yaml:"name"`
		PostalCode    string `yaml:"postal_code"`
		Address       string `yaml:"address"`
		ContactEmail  string `yaml:"contact_email"`
		WebsiteURL    string `yaml:"website_url"`
		ResponseHours string `yaml:"response_time"`
	} `yaml:"organization"`
	Notification struct {
		Title  string `yaml:"title"`
		Color  int    `yaml:"color"`
		Footer string `yaml:"footer"`
	} `yaml:"notification"`
	Email struct {
		From    string `yaml:"from"`
		Subject string `yaml:"subject"`
	} `yaml:"email"`
}

// LoadProfile returns the embedded profile, overlaid with the file at path
// when one is given.
func LoadProfile(path string) (*SiteProfile, error) {
	p := &SiteProfile{}
	if err := yaml.Unmarshal(defaultProfile, p); err != nil {
		return nil, fmt.Errorf("failed to parse embedded profile: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read site profile %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, p); err != nil {
			return nil, fmt.Errorf("failed to parse site profile %s: %w", path, err)
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks the fields every outbound message depends on
func (p *SiteProfile) Validate() error {
	switch {
	case p.Organization.Name == "":
		return fmt.Errorf("%w: organization.name is required", ErrInvalidConfig)
	case p.Notification.Title == "":
		return fmt.Errorf("%w: notification.title is required", ErrInvalidConfig)
	case p.Email.From == "":
		return fmt.Errorf("%w: email.from is required", ErrInvalidConfig)
	case p.Email.Subject == "":
		return fmt.Errorf("%w: email.subject is required", ErrInvalidConfig)
	case p.Notification.Color < 0 || p.Notification.Color > 0xFFFFFF:
		return fmt.Errorf("%w: notification.color must be a 24-bit RGB value", ErrInvalidConfig)
	}
	return nil
}

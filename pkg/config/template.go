package config

import "fmt"

// DefaultTemplateHeader returns the comment block written above generated
// configuration files.
func DefaultTemplateHeader() string {
	return `# mdlive configuration
# Values below are the defaults. Environment variables (MDLIVE_*) and
# command line flags take precedence over this file.`
}

// GenerateTemplate returns a commented configuration file holding the
// defaults.
func GenerateTemplate() ([]byte, error) {
	cfg := NewConfig()
	content, err := cfg.ToYAMLWithHeader(DefaultTemplateHeader())
	if err != nil {
		return nil, fmt.Errorf("generate template: %w", err)
	}
	return content, nil
}

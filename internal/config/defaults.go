package config

// defaults returns the default configuration values. The rule defaults
// mirror a conventional yamllint profile: 2-space indentation, 120-column
// lines reported as warnings, and all mechanical rules enabled.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"max_fix_passes": 20,
		"schema_dir":     "schemas",
		"template_dir":   "sql_templates",
		"rules": map[string]interface{}{
			"document_start":  map[string]interface{}{"enabled": true},
			"indentation":     map[string]interface{}{"enabled": true, "spaces": 2},
			"colons":          map[string]interface{}{"enabled": true},
			"trailing_spaces": map[string]interface{}{"enabled": true},
			"new_line_at_eof": map[string]interface{}{"enabled": true},
			"line_length": map[string]interface{}{
				"enabled":  true,
				"max":      120,
				"severity": "warning",
			},
		},
	}
}

// Default returns the built-in configuration without touching the
// filesystem or environment.
func Default() *Configuration {
	return &Configuration{
		MaxFixPasses: 20,
		SchemaDir:    "schemas",
		TemplateDir:  "sql_templates",
		Rules: RuleSet{
			DocumentStart:  RuleToggle{Enabled: true},
			Indentation:    IndentationRule{Enabled: true, Spaces: 2},
			Colons:         RuleToggle{Enabled: true},
			TrailingSpaces: RuleToggle{Enabled: true},
			NewLineAtEOF:   RuleToggle{Enabled: true},
			LineLength:     LineLengthRule{Enabled: true, Max: 120, Severity: SeverityWarning},
		},
	}
}

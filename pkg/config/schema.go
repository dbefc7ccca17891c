// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"regexp"
)

// ScopeConstraints defines per-scope validation rules for a configuration key
type ScopeConstraints struct {
	Forbidden bool // If true, this key cannot be set in this scope
}

// ConfigKeyDefinition defines metadata for a configuration key
type ConfigKeyDefinition struct {
	Key         string      // Configuration key (dot notation)
	Type        string      // "string", "bool", "enum", "int"
	Default     interface{} // Default value
	Description string      // Help text

	EnumValues []string // Valid values for enum type (if Type="enum")
	Pattern    string   // Regex pattern for validation (if Type="string")

	// Per-scope constraints (optional - if nil, key is allowed in scope)
	UserConstraints *ScopeConstraints // Constraints when setting in user config
	RepoConstraints *ScopeConstraints // Constraints when setting in repo config
}

// ConfigRegistry holds all known configuration keys with per-scope constraints.
var ConfigRegistry = map[string]ConfigKeyDefinition{
	"use-tui": {
		Key:         "use-tui",
		Type:        "bool",
		Default:     true,
		Description: "Use TUI for interactive prompts",
	},

	"log-level": {
		Key:         "log-level",
		Type:        "enum",
		Default:     "debug",
		Description: "Log verbosity level",
		EnumValues:  []string{"disabled", "debug", "info", "warn", "error"},
	},

	"catalog.path": {
		Key:         "catalog.path",
		Type:        "string",
		Default:     "", // Set in InitViper() using GlobalPaths.CatalogDir
		Description: "Image catalog file (plain YAML or .xz compressed)",
	},

	"catalog.keyring": {
		Key:         "catalog.keyring",
		Type:        "string",
		Default:     "",
		Description: "Public key for verifying the catalog's detached signature (empty disables verification)",
	},

	"cert.dir": {
		Key:         "cert.dir",
		Type:        "string",
		Default:     "", // Set in InitViper() using GlobalPaths.CertsDir
		Description: "Output directory for generated certificate/key pairs",
		RepoConstraints: &ScopeConstraints{
			Forbidden: true, // Machine-local absolute path, never committed
		},
	},

	"cert.principal": {
		Key:         "cert.principal",
		Type:        "string",
		Default:     "",
		Description: "Default principal name (subject CN) for generated certificates",
	},

	"image.system": {
		Key:         "image.system",
		Type:        "string",
		Default:     "",
		Description: "Pinned operating system for this repository's images",
		UserConstraints: &ScopeConstraints{
			Forbidden: true, // Image pins are repo-specific
		},
	},

	"image.release": {
		Key:         "image.release",
		Type:        "string",
		Default:     "",
		Description: "Pinned release key (system/release form) for this repository's images",
		UserConstraints: &ScopeConstraints{
			Forbidden: true, // Image pins are repo-specific
		},
	},

	"image.kernel": {
		Key:         "image.kernel",
		Type:        "string",
		Default:     "",
		Description: "Pinned kernel variant (empty means the release default)",
		UserConstraints: &ScopeConstraints{
			Forbidden: true, // Image pins are repo-specific
		},
	},
}

// GetKeyDefinition returns the definition for a key, or nil if not found
func GetKeyDefinition(key string) *ConfigKeyDefinition {
	if def, ok := ConfigRegistry[key]; ok {
		return &def
	}
	return nil
}

// ValidateKeyScope checks if a key can be set in the given scope
// Returns an error if the key is forbidden in the specified scope
func ValidateKeyScope(key string, scope ConfigScope) error {
	def := GetKeyDefinition(key)
	if def == nil {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	var constraints *ScopeConstraints
	switch scope {
	case ScopeUser:
		constraints = def.UserConstraints
	case ScopeRepo:
		constraints = def.RepoConstraints
	}

	if constraints != nil && constraints.Forbidden {
		switch scope {
		case ScopeUser:
			return fmt.Errorf(
				"key '%s' cannot be set in user config\n\n"+
					"Hint: Remove --global flag:\n"+
					"  bellows config set %s <value>\n\n"+
					"This key must be set in repo config: ./bellows.yaml",
				key,
				key,
			)
		case ScopeRepo:
			return fmt.Errorf(
				"key '%s' cannot be set in repo config (machine-local setting)\n\n"+
					"Hint: Use --global flag:\n"+
					"  bellows config set --global %s <value>\n\n"+
					"User config: ~/.config/bellows/config.yaml",
				key,
				key,
			)
		}
	}

	return nil
}

// ValidateValue checks if a value is valid for the given key
func ValidateValue(key string, value interface{}) error {
	def := GetKeyDefinition(key)
	if def == nil {
		return fmt.Errorf("unknown configuration key: %s", key)
	}

	switch def.Type {
	case "bool":
		if _, ok := value.(bool); !ok {
			return fmt.Errorf("key '%s' must be a boolean", key)
		}

	case "int":
		if _, ok := value.(int); !ok {
			return fmt.Errorf("key '%s' must be an integer", key)
		}

	case "string":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("key '%s' must be a string", key)
		}

		if def.Pattern != "" {
			matched, err := regexp.MatchString(def.Pattern, str)
			if err != nil {
				return fmt.Errorf("pattern validation error: %w", err)
			}
			if !matched {
				return fmt.Errorf("key '%s' value '%s' does not match required format", key, str)
			}
		}

	case "enum":
		str, ok := value.(string)
		if !ok {
			return fmt.Errorf("key '%s' must be a string", key)
		}

		for _, valid := range def.EnumValues {
			if str == valid {
				return nil
			}
		}
		return fmt.Errorf("key '%s' must be one of: %v (got '%s')", key, def.EnumValues, str)
	}

	return nil
}

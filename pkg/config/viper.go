// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// InitViper initializes Viper configuration with defaults and search paths
// Precedence order: ENV > dir-conf > user-conf > defaults
func InitViper() {
	viper.SetConfigType(ConfigType)

	// Set defaults (lowest precedence)
	viper.SetDefault("use-tui", true)
	viper.SetDefault("log-level", "debug")
	viper.SetDefault("catalog.path", filepath.Join(GlobalPaths.CatalogDir, CatalogFileName))
	viper.SetDefault("catalog.keyring", "")
	viper.SetDefault("cert.dir", GlobalPaths.CertsDir)
	viper.SetDefault("cert.principal", "")
	viper.SetDefault("image.system", "")
	viper.SetDefault("image.release", "")
	viper.SetDefault("image.kernel", "")

	// Enable environment variable support (highest precedence)
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// LoadConfig reads config files in precedence order
// Precedence: ENV > ./bellows.yaml > ~/.config/bellows/config.yaml > defaults
func LoadConfig() error {
	// First, try to read user config from XDG config directory
	viper.SetConfigName(ConfigFileName)
	viper.AddConfigPath(GlobalPaths.ConfigDir)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read user config file: %w", err)
		}
		// Config file not found is OK
	} else if err := validateConfigFile(ScopeUser); err != nil {
		return err
	}

	// Then, try to merge in local directory config (overrides user config)
	viper.SetConfigName(LocalConfigFile)
	viper.AddConfigPath(".")

	if err := viper.MergeInConfig(); err != nil {
		// Ignore if local config doesn't exist
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read local config file: %w", err)
		}
	} else if err := validateConfigFile(ScopeRepo); err != nil {
		return err
	}

	return nil
}

// GetUseTUI returns the use-tui configuration value
func GetUseTUI() bool {
	return viper.GetBool("use-tui")
}

// GetLogLevel returns the log-level configuration value
func GetLogLevel() string {
	return viper.GetString("log-level")
}

// GetCatalogPath returns the catalog.path configuration value
func GetCatalogPath() string {
	return viper.GetString("catalog.path")
}

// GetCatalogKeyring returns the catalog.keyring configuration value
// Empty means signature verification is disabled.
func GetCatalogKeyring() string {
	return viper.GetString("catalog.keyring")
}

// GetCertDir returns the cert.dir configuration value
func GetCertDir() string {
	return viper.GetString("cert.dir")
}

// GetCertPrincipal returns the cert.principal configuration value
func GetCertPrincipal() string {
	return viper.GetString("cert.principal")
}

// GetImageSystem returns the image.system configuration value
func GetImageSystem() string {
	return viper.GetString("image.system")
}

// GetImageRelease returns the image.release configuration value
func GetImageRelease() string {
	return viper.GetString("image.release")
}

// GetImageKernel returns the image.kernel configuration value
func GetImageKernel() string {
	return viper.GetString("image.kernel")
}

// validateConfigFile validates that a config file contains only known keys,
// no forbidden keys for its scope, and well-formed values.
func validateConfigFile(scope ConfigScope) error {
	configPath := getConfigPath(scope)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil // No config file, nothing to validate
	}

	// Temporary Viper instance to read just this config file
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType(ConfigType)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file for validation: %w", err)
	}

	settings := v.AllSettings()
	if len(settings) == 0 {
		return nil
	}

	for _, key := range flattenKeys(settings, "") {
		if err := ValidateKeyScope(key, scope); err != nil {
			return fmt.Errorf("invalid key in config file %s: %w", configPath, err)
		}
		if err := ValidateValue(key, v.Get(key)); err != nil {
			return fmt.Errorf("invalid value in config file %s: %w", configPath, err)
		}
	}

	log.Debugf("validated %s config: %s", getScopeName(scope), configPath)
	return nil
}

// BindFlags binds all relevant cobra flags to Viper
func BindFlags(flags *pflag.FlagSet) error {
	flagsToBind := []string{
		"use-tui",
		"log-level",
	}

	for _, flagName := range flagsToBind {
		if err := viper.BindPFlag(flagName, flags.Lookup(flagName)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", flagName, err)
		}
	}

	return nil
}

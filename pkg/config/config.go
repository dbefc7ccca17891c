// SPDX-License-Identifier: Apache-2.0
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// Configuration
	EnvPrefix        = "BELLOWS" // Environment variable prefix for Viper
	ConfigFileName   = "config"  // Config file name for XDG config dir (without extension)
	LocalConfigFile  = "bellows" // Config file name for current directory (without extension)
	ConfigType       = "yaml"    // Config file type
	DefaultConfigExt = ".yaml"   // Default config file extension

	// CatalogFileName is the default catalog file inside the data dir
	CatalogFileName = "catalog.yaml"
)

// Paths holds all XDG-compliant directory paths
type Paths struct {
	DataDir   string
	CacheDir  string
	ConfigDir string

	// Subdirectories
	CatalogDir string // Image catalog storage
	CertsDir   string // Generated certificate/key pairs
}

var (
	// GlobalPaths is the global paths instance
	GlobalPaths *Paths
)

func init() {
	GlobalPaths = GetPaths()
}

// GetPaths returns XDG-compliant directory paths
func GetPaths() *Paths {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to get home directory: %v\n", err)
			os.Exit(1)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to get home directory: %v\n", err)
			os.Exit(1)
		}
		cacheHome = filepath.Join(home, ".cache")
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to get home directory: %v\n", err)
			os.Exit(1)
		}
		configHome = filepath.Join(home, ".config")
	}

	dataDir := filepath.Join(dataHome, "bellows")
	cacheDir := filepath.Join(cacheHome, "bellows")
	configDir := filepath.Join(configHome, "bellows")

	return &Paths{
		DataDir:    dataDir,
		CacheDir:   cacheDir,
		ConfigDir:  configDir,
		CatalogDir: filepath.Join(dataDir, "catalog"),
		CertsDir:   filepath.Join(dataDir, "certs"),
	}
}

// IsRepoMode returns true when a bellows.yaml exists in the current
// working directory, meaning the CLI is operating within a managed repository.
func IsRepoMode() bool {
	_, err := os.Stat(filepath.Join(".", LocalConfigFile+DefaultConfigExt))
	return err == nil
}

// InitDirs creates all necessary directories
func InitDirs() error {
	dirs := []string{
		GlobalPaths.ConfigDir,
		GlobalPaths.DataDir,
		GlobalPaths.CacheDir,
		GlobalPaths.CatalogDir,
		GlobalPaths.CertsDir,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

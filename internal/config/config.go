// Package config resolves the locations of the bibliography exports and
// the document-store index. Resolution order is explicit option, then
// environment variable, then the global config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Environment variables naming the metadata sources.
const (
	EnvJSONPath     = "ZOTERO_JSON_PATH"
	EnvBibPath      = "ZOTERO_BIB_PATH"
	EnvDocstorePath = "DEVONTHINK_INDEX_PATH"
)

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "dtbib"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"
)

// Global represents configuration stored in ~/.config/dtbib/config.yml.
type Global struct {
	JSONPath     string `yaml:"json_path,omitempty"`
	BibPath      string `yaml:"bib_path,omitempty"`
	DocstorePath string `yaml:"docstore_path,omitempty"`
}

// globalCache caches the loaded global config.
var globalCache *Global

// GlobalPath returns the path to the global config file. Respects
// XDG_CONFIG_HOME, defaults to ~/.config/dtbib/config.yml.
func GlobalPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobal loads the global configuration file. Returns an empty config
// (not an error) if the file doesn't exist.
func LoadGlobal() (*Global, error) {
	if globalCache != nil {
		return globalCache, nil
	}

	path := GlobalPath()
	if path == "" {
		return &Global{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Global{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg Global
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	cfg.JSONPath = ExpandTilde(cfg.JSONPath)
	cfg.BibPath = ExpandTilde(cfg.BibPath)
	cfg.DocstorePath = ExpandTilde(cfg.DocstorePath)

	globalCache = &cfg
	return &cfg, nil
}

// ResetGlobalCache clears the cached global config. Useful for testing.
func ResetGlobalCache() {
	globalCache = nil
}

// JSONPath returns the configured structured-export path, or "" when not
// configured.
func JSONPath() string {
	if p := os.Getenv(EnvJSONPath); p != "" {
		return ExpandTilde(p)
	}
	cfg, _ := LoadGlobal()
	if cfg == nil {
		return ""
	}
	return cfg.JSONPath
}

// BibPath returns the configured text-export path, or "" when not
// configured.
func BibPath() string {
	if p := os.Getenv(EnvBibPath); p != "" {
		return ExpandTilde(p)
	}
	cfg, _ := LoadGlobal()
	if cfg == nil {
		return ""
	}
	return cfg.BibPath
}

// DocstorePath returns the configured document-store index path, or ""
// when not configured.
func DocstorePath() string {
	if p := os.Getenv(EnvDocstorePath); p != "" {
		return ExpandTilde(p)
	}
	cfg, _ := LoadGlobal()
	if cfg == nil {
		return ""
	}
	return cfg.DocstorePath
}

// ExpandTilde expands a leading ~ to the user's home directory. Returns
// the original path unchanged if it doesn't start with ~.
func ExpandTilde(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}

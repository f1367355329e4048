package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadLightEmUp loads Light 'Em Up configuration.
// Search order: customPath -> ~/.lightemup/configs/lightemup.yaml -> ./configs/lightemup.yaml -> embedded default
// Files only need to name the settings they change.
func LoadLightEmUp(customPath string) (LightEmUpConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(ExpandHome(customPath))
		if err != nil {
			return DefaultLightEmUpConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseLightEmUp(data)
		if err != nil {
			return DefaultLightEmUpConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("lightemup.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseLightEmUp(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/lightemup.yaml"); err == nil {
		if cfg, err := parseLightEmUp(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseLightEmUp(defaultLightEmUpYAML)
	if err != nil {
		return DefaultLightEmUpConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parseLightEmUp overlays data on the hardcoded defaults and validates the result.
func parseLightEmUp(data []byte) (LightEmUpConfig, error) {
	cfg := DefaultLightEmUpConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".lightemup", "configs", filename)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadNebula loads the rules configuration.
// Search order: customPath -> ~/.arcade/configs/nebula.yaml -> ./configs/nebula.yaml -> embedded default.
// Only an explicit customPath that cannot be read or parsed is an error.
func LoadNebula(customPath string) (NebulaConfig, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultNebulaConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultNebulaConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("nebula.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "nebula.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultNebulaYAML)
	if err != nil {
		return DefaultNebulaConfig(), nil
	}
	return cfg, nil
}

// Parse decodes YAML on top of the defaults, so omitted keys keep their
// default values, and validates the result.
func Parse(data []byte) (NebulaConfig, error) {
	cfg := DefaultNebulaConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultNebulaConfig(), err
	}
	if err := cfg.Validate(); err != nil {
		return DefaultNebulaConfig(), err
	}
	return cfg, nil
}

// Marshal encodes a configuration as YAML.
func Marshal(cfg NebulaConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// Package settings is the operator preference store. Preferences live
// in a YAML file under the user config dir and are read at startup and
// written on change; nothing touches them ambiently.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = "settings.yaml"

type Settings struct {
	Theme       string `yaml:"theme"`
	Locale      string `yaml:"locale"`
	DefaultCIDR string `yaml:"default_cidr,omitempty"`
}

func Defaults() Settings {
	return Settings{
		Theme:  "light",
		Locale: "en",
	}
}

// DefaultPath is <user config dir>/ipamctl/settings.yaml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "ipamctl", fileName), nil
}

// Load reads settings from path. A missing file yields the defaults;
// fields absent from the file keep their default value.
func Load(path string) (Settings, error) {
	out := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return out, nil
		}
		return out, fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &out); err != nil {
		return Defaults(), fmt.Errorf("parse settings: %w", err)
	}
	return out, nil
}

// Save writes settings to path, creating parent directories as needed.
func Save(path string, s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

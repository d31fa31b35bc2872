package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// decodeFile overlays the keys present in the file onto cfg.
func decodeFile(path string, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		_, err := toml.DecodeFile(path, cfg)
		return err
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config file extension %q", ext)
	}
}

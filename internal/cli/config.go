package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Config struct {
	GatewayURL string
	// Origin used when rendering invite links; defaults to the gateway URL.
	Origin string
	// InsecureSkipVerify accepts the self-signed certificate a local
	// gateway serves.
	InsecureSkipVerify bool
	StatePath          string
}

type fileConfig struct {
	GatewayURL         string `toml:"gateway_url"`
	Origin             string `toml:"origin"`
	InsecureSkipVerify bool   `toml:"insecure_skip_verify"`
	StatePath          string `toml:"state_path"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		GatewayURL: "https://localhost:3001",
		StatePath:  defaultStatePath(),
	}

	if configPath := configFilePath(); configPath != "" {
		var fc fileConfig
		if _, err := toml.DecodeFile(configPath, &fc); err == nil {
			if fc.GatewayURL != "" {
				cfg.GatewayURL = fc.GatewayURL
			}
			if fc.Origin != "" {
				cfg.Origin = fc.Origin
			}
			if fc.StatePath != "" {
				cfg.StatePath = fc.StatePath
			}
			cfg.InsecureSkipVerify = fc.InsecureSkipVerify
		}
	}

	applyEnvOverrides(cfg)

	if cfg.Origin == "" {
		cfg.Origin = cfg.GatewayURL
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WEBINARCTL_GATEWAY_URL"); v != "" {
		cfg.GatewayURL = v
	}
	if v := os.Getenv("WEBINARCTL_ORIGIN"); v != "" {
		cfg.Origin = v
	}
	if v := os.Getenv("WEBINARCTL_STATE_PATH"); v != "" {
		cfg.StatePath = v
	}
	if os.Getenv("WEBINARCTL_INSECURE") == "1" {
		cfg.InsecureSkipVerify = true
	}
}

func configFilePath() string {
	var configDir string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		configDir = filepath.Join(xdg, "webinarctl")
	} else if home, err := os.UserHomeDir(); err == nil {
		configDir = filepath.Join(home, ".config", "webinarctl")
	} else {
		return ""
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "webinarctl-state.json"
	}
	return filepath.Join(home, ".config", "webinarctl", "state.json")
}

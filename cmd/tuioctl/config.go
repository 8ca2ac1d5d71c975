package main

import (
	"fmt"

	"github.com/danmuck/tuioctl/internal/config"
)

type flags struct {
	configPath string
	port       int
	filter     bool
	adminAddr  string
	explicit   map[string]bool
}

func (f *flags) set(name string) {
	if f.explicit == nil {
		f.explicit = make(map[string]bool)
	}
	f.explicit[name] = true
}

// loadConfig reads the config file when given, then applies flags the user
// set explicitly on top.
func loadConfig(fl flags) (config.Config, error) {
	cfg := config.Default()
	if fl.configPath != "" {
		loaded, err := config.Load(fl.configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if fl.explicit["port"] {
		cfg.Port = fl.port
	}
	if fl.explicit["filter"] {
		cfg.ProfileFiltering = fl.filter
	}
	if fl.explicit["admin"] {
		cfg.AdminAddr = fl.adminAddr
	}
	if err := config.Validate(cfg); err != nil {
		return config.Config{}, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

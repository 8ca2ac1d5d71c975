package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "tuioctl", "client":
		return clientTemplate, nil
	case "admin":
		return adminTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const clientTemplate = `port = 3333
profile_filtering = false
late_frame_tolerance = 100
unsequenced_refresh_ms = 100
path_history = 128
`

const adminTemplate = `port = 3333
profile_filtering = true
late_frame_tolerance = 100
unsequenced_refresh_ms = 100
path_history = 128
admin_addr = "127.0.0.1:9333"
cors_origins = ["http://localhost:3000"]
stream_buffer = 64
bind_attempts = 5
bind_retry_ms = 250
`

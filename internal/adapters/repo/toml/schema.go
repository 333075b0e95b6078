package toml

import "fmt"

const currentSchemaVersion = 1

type fileSchema struct {
	Version int           `toml:"version"`
	Session sessionSchema `toml:"session"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported session schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

type sessionSchema struct {
	Username      string            `toml:"username"`
	UserID        string            `toml:"user_id"`
	Authorization string            `toml:"authorization"`
	DeviceID      string            `toml:"device_id,omitempty"`
	UUID          string            `toml:"uuid,omitempty"`
	SavedAt       string            `toml:"saved_at,omitempty"`
	Cookies       map[string]string `toml:"cookies,omitempty"`
}

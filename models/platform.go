package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// Platform identifies an external ad platform a campaign is generated for
type Platform string

const (
	PlatformReddit Platform = "reddit"
	PlatformGoogle Platform = "google"
	PlatformMeta   Platform = "meta"
)

// String returns the string representation of the platform
func (p Platform) String() string {
	return string(p)
}

// Normalize lower-cases and trims the platform identifier
func (p Platform) Normalize() Platform {
	return Platform(strings.ToLower(strings.TrimSpace(string(p))))
}

// Scan implements the sql.Scanner interface for Platform
func (p *Platform) Scan(value any) error {
	if value == nil {
		*p = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*p = Platform(v)
	case []byte:
		*p = Platform(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Platform", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for Platform
func (p Platform) Value() (driver.Value, error) {
	if p == "" {
		return nil, fmt.Errorf("empty Platform")
	}
	return string(p), nil
}

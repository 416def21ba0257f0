package domain

import (
	"strings"
	"time"
)

type Construction struct {
	ID         string
	Name       string
	Address    string
	PostalCode string
	City       string
	District   string
	OwnerID    string
	Progress   float64
	Version    int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Validate checks the caller-supplied fields of a construction.
func (c *Construction) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return invalidf("construction name is required")
	}
	return nil
}

// DisplayID returns the first 8 characters of the id.
func (c *Construction) DisplayID() string {
	return shortID(c.ID)
}

func shortID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

package domain

import (
	"strings"
	"time"
)

// DefaultPhaseName names phases created from a template without an
// explicit name.
const DefaultPhaseName = "New Phase"

type Phase struct {
	ID             string
	ConstructionID string
	Name           string
	Progress       float64
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (p *Phase) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalidf("phase name is required")
	}
	return ValidateID("construction", p.ConstructionID)
}

func (p *Phase) DisplayID() string { return shortID(p.ID) }

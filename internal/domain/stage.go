package domain

import (
	"strings"
	"time"
)

type Stage struct {
	ID        string
	PhaseID   string
	Name      string
	Progress  float64
	Skipped   bool
	Version   int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (s *Stage) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return invalidf("stage name is required")
	}
	return ValidateID("phase", s.PhaseID)
}

func (s *Stage) DisplayID() string { return shortID(s.ID) }

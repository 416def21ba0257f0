package domain

import "github.com/google/uuid"

// NewID returns a fresh entity identifier.
func NewID() string {
	return uuid.New().String()
}

// ValidateID rejects identifiers that are not UUIDs.
func ValidateID(entity, id string) error {
	if id == "" {
		return invalidf("%s id is required", entity)
	}
	if _, err := uuid.Parse(id); err != nil {
		return invalidf("%s id %q is malformed", entity, id)
	}
	return nil
}

package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// RunID identifies one batch generation run.
	RunID ID

	// GroupID identifies a component group in the defect taxonomy.
	// The empty GroupID means "ungrouped" — the defect is treated individually.
	GroupID string
)

func (id RunID) String() string  { return ID(id).String() }
func (g GroupID) String() string { return string(g) }

// IsZero reports whether the group ID is the ungrouped sentinel.
func (g GroupID) IsZero() bool { return g == "" }

// ParseRunID parses a string into RunID
func ParseRunID(s string) (RunID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("run ID cannot be empty")
	}
	return RunID(s), nil
}

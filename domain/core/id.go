package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a random, collision-free identifier rendered as 32 lowercase hex chars.
type ID string

// NewID creates a new unique identifier from a random (v4) UUID with the dashes removed
func NewID() ID {
	id := uuid.New()
	return ID(strings.ReplaceAll(id.String(), "-", ""))
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// ParseID validates that s is a 32-char hex identifier
func ParseID(s string) (ID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("ID cannot be empty")
	}
	if len(s) != 32 {
		return "", fmt.Errorf("ID must be 32 hex characters, got %d", len(s))
	}
	if _, err := uuid.Parse(s); err != nil {
		return "", fmt.Errorf("ID is not hex: %w", err)
	}
	return ID(strings.ToLower(s)), nil
}

// PairKey joins two column names into the key used by pairwise results
func PairKey(col1, col2 string) string {
	return col1 + "_" + col2
}

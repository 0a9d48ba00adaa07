package core

import (
	"testing"
)

// TestNewIDUniqueness tests that NewID generates unique identifiers
func TestNewIDUniqueness(t *testing.T) {
	const numIDs = 10000

	ids := make(map[ID]bool, numIDs)
	for i := 0; i < numIDs; i++ {
		id := NewID()
		if id.IsEmpty() {
			t.Errorf("Generated empty ID at iteration %d", i)
		}
		if ids[id] {
			t.Errorf("Generated duplicate ID: %s", id)
		}
		ids[id] = true
	}

	if len(ids) != numIDs {
		t.Errorf("Expected %d unique IDs, got %d", numIDs, len(ids))
	}
}

// TestNewIDShape tests that identifiers are 32 lowercase hex characters
func TestNewIDShape(t *testing.T) {
	id := NewID().String()
	if len(id) != 32 {
		t.Fatalf("Expected 32 characters, got %d (%s)", len(id), id)
	}
	for _, r := range id {
		if !((r >= '0' && r <= '9') || (r >= 'a' && r <= 'f')) {
			t.Fatalf("Unexpected character %q in %s", r, id)
		}
	}
}

// TestParseID tests ID parsing
func TestParseID(t *testing.T) {
	tests := []struct {
		input    string
		expected ID
		hasError bool
	}{
		{"0123456789abcdef0123456789ABCDEF", ID("0123456789abcdef0123456789abcdef"), false},
		{"", "", true},
		{"   ", "", true},
		{"abc", "", true},
		{"zz23456789abcdef0123456789abcdef", "", true},
	}

	for _, test := range tests {
		result, err := ParseID(test.input)
		if test.hasError && err == nil {
			t.Errorf("Expected error for input '%s', but got none", test.input)
		}
		if !test.hasError && err != nil {
			t.Errorf("Unexpected error for input '%s': %v", test.input, err)
		}
		if result != test.expected {
			t.Errorf("Expected %s, got %s", test.expected, result)
		}
	}
}

func TestPairKey(t *testing.T) {
	if got := PairKey("height", "weight"); got != "height_weight" {
		t.Errorf("Expected height_weight, got %s", got)
	}
}

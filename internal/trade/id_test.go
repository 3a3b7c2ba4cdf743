package trade

import (
	"strings"
	"testing"
)

func TestNewID_Format(t *testing.T) {
	id := NewID()
	parts := strings.Split(id, "_")
	if len(parts) != 3 || parts[0] != "trade" {
		t.Fatalf("unexpected id shape: %q", id)
	}
	if len(parts[2]) != 12 {
		t.Errorf("random suffix %q should be 12 hex chars", parts[2])
	}
	for _, r := range parts[2] {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Errorf("random suffix %q contains non-hex char %q", parts[2], r)
		}
	}
}

func TestNewID_NoCollisionsInBurst(t *testing.T) {
	// Many IDs generated within the same second must still be distinct. With
	// 48 bits of suffix the chance of any collision in a burst this size is
	// below one in a billion, so a duplicate here means a real regression.
	seen := make(map[string]bool)
	for i := 0; i < 5000; i++ {
		id := NewID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

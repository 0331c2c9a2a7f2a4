package postgres

import (
	"sort"
	"testing"
)

func TestULIDGeneratorOrderedAndUnique(t *testing.T) {
	gen := NewULIDGenerator()

	const n = 1000
	ids := make([]string, n)
	seen := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		id := gen.Generate()
		if len(id) != 26 {
			t.Fatalf("unexpected ULID length for %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate ID %s", id)
		}
		seen[id] = true
		ids[i] = id
	}

	if !sort.StringsAreSorted(ids) {
		t.Error("IDs generated in sequence must sort in generation order")
	}
}

package testutil

import (
	"testing"

	"github.com/mombot/mom/internal/items"
)

// Dictionary returns a small item dictionary used across packages'
// tests. Ids are chosen so the ascending-id canonical order is stable
// and easy to assert on.
func Dictionary(t *testing.T) *items.Dictionary {
	t.Helper()
	d, err := items.NewDictionary(map[string]int64{
		"LOBSTER":      379,
		"COAL":         453,
		"BONES":        526,
		"BLUEPARTYHAT": 742,
		"ROPE":         954,
		"BUCKET":       1925,
		"CABBAGE":      1965,
	})
	if err != nil {
		t.Fatalf("build fixture dictionary: %v", err)
	}
	return d
}

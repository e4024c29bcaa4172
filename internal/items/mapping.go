package items

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mombot/mom/internal/text"
)

// wikiItem is one entry of the OSRS wiki item mapping dump
// (https://prices.runescape.wiki/api/v1/osrs/mapping). Only the fields we
// keep are decoded; the dump carries many more.
type wikiItem struct {
	Name string `json:"name"`
	ID   int64  `json:"id"`
}

// ParseWikiMapping converts the wiki mapping dump (a JSON array of item
// records) into a normalized name→id map suitable for NewDictionary.
//
// Later entries win on a normalized-name collision; the dump contains
// cosmetic variants that normalize to the same key and any of their ids is
// an acceptable sort key.
func ParseWikiMapping(r io.Reader) (map[string]int64, error) {
	var entries []wikiItem
	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("parse wiki mapping: %w", err)
	}

	ids := make(map[string]int64, len(entries))
	for _, entry := range entries {
		key := text.Normalize(entry.Name)
		if key == "" {
			continue
		}
		ids[key] = entry.ID
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("parse wiki mapping: no usable items found")
	}
	return ids, nil
}

// WriteItemsFile writes a name→id map as an items.json dictionary file.
// Keys are emitted sorted (encoding/json sorts map keys), so the output is
// deterministic and diffs cleanly between imports.
func WriteItemsFile(path string, ids map[string]int64) error {
	data, err := json.MarshalIndent(ids, "", "  ")
	if err != nil {
		return fmt.Errorf("write items file: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write items file: %w", err)
	}
	return nil
}

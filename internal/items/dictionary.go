package items

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/mombot/mom/internal/text"
)

// Dictionary maps canonical item names to their numeric ids.
//
// Keys are stored in normalized form (see text.Normalize), so lookups are
// insensitive to spacing, case, and punctuation. The dictionary is read-only
// after construction and safe for concurrent use.
type Dictionary struct {
	ids map[string]int64
}

// NewDictionary builds a dictionary from a name→id map.
// Names are normalized on the way in; a name that normalizes to empty is
// rejected rather than silently dropped.
func NewDictionary(ids map[string]int64) (*Dictionary, error) {
	normalized := make(map[string]int64, len(ids))
	for name, id := range ids {
		key := text.Normalize(name)
		if key == "" {
			return nil, fmt.Errorf("item name %q normalizes to empty", name)
		}
		normalized[key] = id
	}
	return &Dictionary{ids: normalized}, nil
}

// LoadDictionary reads an items.json file: a single JSON object mapping
// canonical item names to ids. Ids may be JSON numbers or numeric strings
// (the wiki import historically wrote strings).
func LoadDictionary(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load item dictionary: %w", err)
	}
	defer f.Close()

	var raw map[string]json.Number
	dec := json.NewDecoder(f)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("load item dictionary %s: %w", path, err)
	}

	ids := make(map[string]int64, len(raw))
	for name, num := range raw {
		id, err := strconv.ParseInt(num.String(), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("load item dictionary %s: item %q has non-numeric id %q", path, name, num)
		}
		ids[name] = id
	}

	return NewDictionary(ids)
}

// Resolve looks up an item name and returns the dictionary key it matched
// along with its numeric id.
//
// The name is normalized first. If the exact form is absent, a singular
// fallback retries with one trailing S stripped, so "ropes" resolves to
// "ROPE" when only the singular is listed. The returned key is the stored
// form, not the supplied one, so every spelling of an item renders the
// same canonical clause.
func (d *Dictionary) Resolve(name string) (string, int64, bool) {
	key := text.Normalize(name)
	if key == "" {
		return "", 0, false
	}

	if id, ok := d.ids[key]; ok {
		return key, id, true
	}

	// Singular fallback.
	if strings.HasSuffix(key, "S") {
		singular := key[:len(key)-1]
		if id, ok := d.ids[singular]; ok {
			return singular, id, true
		}
	}

	return "", 0, false
}

// Len returns the number of entries, for startup logging.
func (d *Dictionary) Len() int {
	return len(d.ids)
}

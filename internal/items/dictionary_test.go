package items

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDictionary_Resolve(t *testing.T) {
	d, err := NewDictionary(map[string]int64{"ROPE": 954, "COAL": 453})
	require.NoError(t, err)

	testCases := []struct {
		name    string
		in      string
		wantKey string
		wantID  int64
		wantOK  bool
	}{
		{"exact", "ROPE", "ROPE", 954, true},
		{"case insensitive", "rope", "ROPE", 954, true},
		{"spacing insensitive", " r o p e ", "ROPE", 954, true},
		{"singular fallback", "ropes", "ROPE", 954, true},
		{"missing", "dragon claw", "", 0, false},
		{"empty", "", "", 0, false},
		{"double plural does not chain", "ropess", "", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			key, id, ok := d.Resolve(tc.in)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.wantKey, key, "Resolve returns the stored key, not the supplied form")
			assert.Equal(t, tc.wantID, id)
		})
	}
}

func TestNewDictionary_RejectsEmptyName(t *testing.T) {
	_, err := NewDictionary(map[string]int64{"?!": 1})
	assert.Error(t, err)
}

func TestLoadDictionary(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")

	// Ids as strings, matching what historical imports wrote.
	require.NoError(t, os.WriteFile(path, []byte(`{"ROPE": "954", "COAL": 453}`), 0o644))

	d, err := LoadDictionary(path)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Len())

	_, id, ok := d.Resolve("rope")
	assert.True(t, ok)
	assert.Equal(t, int64(954), id)
}

func TestLoadDictionary_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadDictionary(filepath.Join(dir, "absent.json"))
		assert.Error(t, err)
	})

	t.Run("non-numeric id", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"ROPE": "lots"}`), 0o644))
		_, err := LoadDictionary(path)
		assert.Error(t, err)
	})
}

func TestParseWikiMapping(t *testing.T) {
	mapping := `[
		{"id": 954, "name": "Rope", "members": false, "value": 18},
		{"id": 453, "name": "Coal", "members": false, "value": 45},
		{"id": 0, "name": "???"}
	]`

	ids, err := ParseWikiMapping(strings.NewReader(mapping))
	require.NoError(t, err)

	// The unparseable name is skipped, the rest are normalized.
	assert.Equal(t, map[string]int64{"ROPE": 954, "COAL": 453}, ids)
}

func TestParseWikiMapping_Empty(t *testing.T) {
	_, err := ParseWikiMapping(strings.NewReader(`[]`))
	assert.Error(t, err)
}

func TestWriteItemsFile_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.json")

	require.NoError(t, WriteItemsFile(path, map[string]int64{"ROPE": 954}))

	d, err := LoadDictionary(path)
	require.NoError(t, err)

	_, id, ok := d.Resolve("rope")
	assert.True(t, ok)
	assert.Equal(t, int64(954), id)
}

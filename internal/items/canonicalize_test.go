package items

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDictionary is a small fixture slice of an items.json; the ids fix
// the canonical sort order the assertions below rely on.
func testDictionary(t *testing.T) *Dictionary {
	t.Helper()
	d, err := NewDictionary(map[string]int64{
		"COAL":         453,
		"ROPE":         954,
		"BLUEPARTYHAT": 742,
		"BUCKET":       1925,
		"LOBSTER":      379,
		"BONES":        526,
		"CABBAGE":      1965,
	})
	require.NoError(t, err)
	return d
}

func TestCanonicalize_SpecExample(t *testing.T) {
	d := testDictionary(t)

	res := d.Canonicalize("2 coal, 8 blue partyhats, rope, diango", ",")
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "2COAL-8BLUEPARTYHAT-1ROPE--DIANGO", res.Canonical)
}

func TestCanonicalize_PermutationInvariant(t *testing.T) {
	d := testDictionary(t)

	a := d.Canonicalize("2 coal, 8 blue partyhats, rope, diango", ",")
	b := d.Canonicalize("rope, 8 blue partyhats, 2 coal, diango", ",")

	require.Equal(t, StatusOK, a.Status)
	require.Equal(t, StatusOK, b.Status)
	assert.Equal(t, a.Canonical, b.Canonical)
	assert.Equal(t, "2COAL-8BLUEPARTYHAT-1ROPE--DIANGO", a.Canonical)
}

func TestCanonicalize_WordQuantities(t *testing.T) {
	d := testDictionary(t)

	res := d.Canonicalize("two coal, one rope, diango", ",")
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "2COAL-1ROPE--DIANGO", res.Canonical)
}

func TestCanonicalize_DefaultQuantity(t *testing.T) {
	d := testDictionary(t)

	// "blue partyhats" has no leading quantity; the whole clause is the
	// item name with quantity 1.
	res := d.Canonicalize("blue partyhats, diango", ",")
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "1BLUEPARTYHAT--DIANGO", res.Canonical)
}

func TestCanonicalize_SingularFallback(t *testing.T) {
	d := testDictionary(t)

	// "ropes" is not listed; "ROPE" is.
	res := d.Canonicalize("3 ropes, diango", ",")
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "3ROPE--DIANGO", res.Canonical)

	// "BONES" is itself a dictionary entry; exact match wins before the
	// fallback would look for "BONE".
	res = d.Canonicalize("2 bones, diango", ",")
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "2BONES--DIANGO", res.Canonical)
}

func TestCanonicalize_RendersDictionaryKey(t *testing.T) {
	d := testDictionary(t)

	// The canonical clause carries the stored singular key even when the
	// input is plural, so both spellings fingerprint identically.
	plural := d.Canonicalize("8 blue partyhats, diango", ",")
	singular := d.Canonicalize("8 blue partyhat, diango", ",")

	require.Equal(t, StatusOK, plural.Status)
	require.Equal(t, StatusOK, singular.Status)
	assert.Equal(t, "8BLUEPARTYHAT--DIANGO", plural.Canonical)
	assert.Equal(t, plural.Canonical, singular.Canonical)
}

func TestCanonicalize_Ambiguous(t *testing.T) {
	d := testDictionary(t)

	res := d.Canonicalize("2 coal, 5 dragon claws, diango", ",")
	assert.Equal(t, StatusAmbiguous, res.Status)
	assert.Equal(t, []string{"dragon claws"}, res.Unknown)
	assert.Empty(t, res.Canonical)
}

func TestCanonicalize_NoItems(t *testing.T) {
	d := testDictionary(t)

	testCases := []struct {
		name string
		in   string
	}{
		{"nothing resolves", "5 dragon claws, twisted bow, diango"},
		{"handin only", "diango"},
		{"empty text", ""},
		{"only delimiters", ",,,"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			res := d.Canonicalize(tc.in, ",")
			assert.Equal(t, StatusNoItems, res.Status)
			assert.Empty(t, res.Canonical)
		})
	}
}

func TestCanonicalize_MessyWhitespace(t *testing.T) {
	d := testDictionary(t)

	res := d.Canonicalize("  2   coal ,, 8  blue   partyhats ,rope,  diango ", ",")
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "2COAL-8BLUEPARTYHAT-1ROPE--DIANGO", res.Canonical)
}

func TestCanonicalize_SortsByItemID(t *testing.T) {
	d := testDictionary(t)

	// Lobster (379) < coal (453) < bones (526) regardless of input order.
	res := d.Canonicalize("bones, coal, lobster, bob", ",")
	require.Equal(t, StatusOK, res.Status)
	assert.Equal(t, "1LOBSTER-1COAL-1BONES--BOB", res.Canonical)
}

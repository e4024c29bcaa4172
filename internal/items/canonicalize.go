package items

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mombot/mom/internal/text"
)

// Status classifies the outcome of canonicalizing an item list.
// The caller branches on Status explicitly; canonicalization never uses
// errors for control flow.
type Status string

const (
	// StatusOK means every clause resolved and Canonical is populated.
	StatusOK Status = "OK"

	// StatusNoItems means no clause resolved against the dictionary.
	// The text yields no candidate; at guess time this is simply "no
	// match possible", at registration time the caller rejects it.
	StatusNoItems Status = "NO_ITEMS"

	// StatusAmbiguous means some clauses resolved and some did not.
	// At guess time the submitter should be asked to clarify; at
	// registration time this is a hard failure. The unresolved names are
	// listed in Unknown; callers must only ever echo them back to the
	// submitter themselves, never to observers, or a partially correct
	// guess would leak which items a puzzle recognizes.
	StatusAmbiguous Status = "AMBIGUOUS"
)

// Result is the typed outcome of Canonicalize.
type Result struct {
	Status    Status
	Canonical string   // set when Status == StatusOK
	Unknown   []string // unresolved item names, in input order
}

// wordQuantities maps spelled-out quantity tokens to their value.
// Matched against the normalized leading token of a clause.
var wordQuantities = map[string]int64{
	"ONE": 1, "TWO": 2, "THREE": 3, "FOUR": 4, "FIVE": 5,
	"SIX": 6, "SEVEN": 7, "EIGHT": 8, "NINE": 9, "TEN": 10,
	"ELEVEN": 11, "TWELVE": 12, "THIRTEEN": 13, "FOURTEEN": 14,
	"FIFTEEN": 15, "SIXTEEN": 16, "SEVENTEEN": 17, "EIGHTEEN": 18,
	"NINETEEN": 19, "TWENTY": 20,
}

// resolvedClause is one parsed and dictionary-resolved item clause.
type resolvedClause struct {
	quantity int64
	name     string // dictionary key the clause resolved to
	itemID   int64
}

// Canonicalize parses a delimited item-list answer into its unique
// canonical form.
//
// The text is split on delimiter; the last element is the hand-in token
// (destination or NPC), every other element is a "quantity + item name"
// clause. Clauses with no recognizable leading quantity default to 1.
// Resolved clauses are sorted ascending by item id (dictionary ids are
// unique, so no tie-break is needed) and rendered as
// "<qty><ITEMNAME>" joined with "-", followed by "--" and the hand-in.
// The rendered name is the dictionary key the clause resolved to, so a
// plural spelling and the stored singular yield an identical canonical.
//
//	Canonicalize("2 coal, 8 blue partyhats, rope, diango", ",")
//	→ "2COAL-8BLUEPARTYHAT-1ROPE--DIANGO"
//
// Clause order never affects the result.
func (d *Dictionary) Canonicalize(raw, delimiter string) Result {
	elements := splitClauses(raw, delimiter)
	if len(elements) < 2 {
		// Need at least one item clause plus the hand-in token.
		return Result{Status: StatusNoItems}
	}

	handin := text.Normalize(elements[len(elements)-1])
	clauses := elements[:len(elements)-1]

	var (
		found   []resolvedClause
		unknown []string
	)
	for _, clause := range clauses {
		quantity, name := parseClause(clause)

		key, id, ok := d.Resolve(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}

		found = append(found, resolvedClause{
			quantity: quantity,
			name:     key,
			itemID:   id,
		})
	}

	if len(found) == 0 {
		return Result{Status: StatusNoItems, Unknown: unknown}
	}
	if len(unknown) > 0 {
		return Result{Status: StatusAmbiguous, Unknown: unknown}
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].itemID < found[j].itemID
	})

	parts := make([]string, len(found))
	for i, c := range found {
		parts[i] = fmt.Sprintf("%d%s", c.quantity, c.name)
	}

	return Result{
		Status:    StatusOK,
		Canonical: strings.Join(parts, "-") + "--" + handin,
	}
}

// splitClauses splits raw text on the delimiter, collapses internal
// whitespace in each element, and drops elements that are empty after
// collapsing.
func splitClauses(raw, delimiter string) []string {
	var out []string
	for _, element := range strings.Split(raw, delimiter) {
		element = text.CollapseSpaces(element)
		if element != "" {
			out = append(out, element)
		}
	}
	return out
}

// parseClause splits a clause on the first space into (leading token,
// rest). If the leading token reads as a numeric or word-form quantity,
// it is the quantity and the rest is the item name; otherwise the whole
// clause is the item name with quantity 1.
func parseClause(clause string) (quantity int64, name string) {
	leading, rest, ok := strings.Cut(clause, " ")
	if !ok {
		return 1, clause
	}

	if n, err := strconv.ParseInt(leading, 10, 64); err == nil && n > 0 {
		return n, rest
	}
	if n, ok := wordQuantities[text.Normalize(leading)]; ok {
		return n, rest
	}

	return 1, clause
}

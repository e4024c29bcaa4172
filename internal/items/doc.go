// Package items implements item-list answer canonicalization.
//
// An item-list answer is free text like
//
//	"2 coal, 8 blue partyhats, rope, diango"
//
// which canonicalizes to "2COAL-8BLUEPARTYHAT-1ROPE--DIANGO": each clause
// resolved against a read-only item dictionary, sorted by numeric item id so
// clause order never matters, with the trailing hand-in token appended after
// a double dash.
//
// The dictionary is injected, loaded once before first use, and never
// mutated by this package.
package items

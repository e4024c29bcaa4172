// Package engine is the collaborator-facing surface of the puzzle system:
// the typed request handlers a chat front end calls to register puzzles,
// submit guesses, list, and delete.
//
// The engine wires the canonicalizers, the vault, and the registry
// together and owns the business rules the registry deliberately leaves to
// its caller: input validation, duplicate-answer detection versus
// authorized same-author updates, and self-solve rejection.
//
// Every failure is a typed *Error carrying a code the front end can branch
// on; nothing is swallowed and nothing is used as control flow past the
// call boundary where it originates.
package engine

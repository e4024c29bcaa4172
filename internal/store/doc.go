// Package store provides the SQLite-backed audit log for engine outcomes.
//
// The audit log is an append-only record of what the engine decided:
// registrations, updates, deletions, solves, and rejected or unmatched
// guesses. It is purely observational: the registry's JSON snapshot remains
// the single source of truth for puzzle state, and nothing is ever replayed
// from here.
//
// Privacy: the log never stores puzzle names, answer text, or reward text.
// Puzzles are referenced by the one-way fingerprint of their name, which is
// deterministic (rows for the same puzzle correlate) without being
// reversible.
//
// Database configuration follows the usual single-writer SQLite setup:
// WAL mode, NORMAL synchronous, busy timeout, one open connection.
package store

package puzzle

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mombot/mom/internal/text"
	"github.com/mombot/mom/internal/vault"
)

// Form selects which answer slot of a puzzle an operation targets.
type Form string

const (
	// FormAnswer is the ordered-string answer slot ("onion man").
	FormAnswer Form = "answer"

	// FormItems is the canonical item-list answer slot
	// ("2COAL-1ROPE--DIANGO").
	FormItems Form = "items"
)

// SolveRecord captures who first solved a puzzle and when.
// All fields are set together by MarkSolved and never change afterwards.
type SolveRecord struct {
	SolverName string
	SolverID   string
	SolvedAt   time.Time
}

// ThreadMeta links a puzzle to an external discussion thread.
// Optional; when present, both fields are set.
type ThreadMeta struct {
	ChannelID string
	ThreadID  string
}

// Puzzle is a registered treasure hunt.
//
// Name is plaintext in memory; the snapshot codec obscures it on the way to
// disk. The fingerprint and secret slots are both always populated: one
// from the real answer, the other from a random filler the author never saw.
type Puzzle struct {
	Name       string
	AuthorID   string
	AuthorName string

	AnswerFingerprint string
	ItemFingerprint   string
	SecretForAnswer   string
	SecretForItems    string

	Solve  *SolveRecord
	Thread *ThreadMeta
}

// New creates a puzzle from registration input.
//
// Exactly one of answerText and itemCanonical must be non-empty: a puzzle
// has a single real answer, and the other slot is filled with a random
// string so the stored record does not reveal which mode is active.
// itemCanonical must already be in canonical item-list form (the engine
// canonicalizes before constructing).
func New(name, authorID, authorName, answerText, itemCanonical, rewardText string) (*Puzzle, error) {
	if name == "" {
		return nil, fmt.Errorf("new puzzle: name is empty")
	}
	if (answerText == "") == (itemCanonical == "") {
		return nil, fmt.Errorf("new puzzle: exactly one answer form must be supplied")
	}

	if answerText != "" && text.Normalize(answerText) == "" {
		return nil, fmt.Errorf("new puzzle: answer text normalizes to empty")
	}

	// Filler slots get a fresh random string. It is hashed and used as an
	// encryption key exactly like a real answer, so the two cases are
	// indistinguishable in the stored record.
	if answerText == "" {
		answerText = uuid.NewString()
	}
	if itemCanonical == "" {
		itemCanonical = uuid.NewString()
	}

	// The answer secret is sealed under the NORMALIZED answer so that any
	// guess whose fingerprint matches also carries the decryption key.
	// The items secret uses the canonical string verbatim; guess-side
	// canonicalization reproduces it exactly.
	secretForAnswer, err := vault.Encrypt(rewardText, text.Normalize(answerText))
	if err != nil {
		return nil, fmt.Errorf("new puzzle: seal answer secret: %w", err)
	}
	secretForItems, err := vault.Encrypt(rewardText, itemCanonical)
	if err != nil {
		return nil, fmt.Errorf("new puzzle: seal items secret: %w", err)
	}

	return &Puzzle{
		Name:              name,
		AuthorID:          authorID,
		AuthorName:        authorName,
		AnswerFingerprint: text.Fingerprint(answerText),
		ItemFingerprint:   text.Fingerprint(itemCanonical),
		SecretForAnswer:   secretForAnswer,
		SecretForItems:    secretForItems,
	}, nil
}

// CheckSolution reports whether a candidate fingerprint matches the slot
// selected by form. Fingerprint equality is the sole admissible match test.
func (p *Puzzle) CheckSolution(fingerprint string, form Form) bool {
	if fingerprint == "" {
		return false
	}
	if form == FormAnswer {
		return fingerprint == p.AnswerFingerprint
	}
	return fingerprint == p.ItemFingerprint
}

// SameSolution reports whether two puzzles share either fingerprint slot,
// which would make guesses ambiguous between them.
//
// Either puzzle having an unpopulated fingerprint slot violates the entity
// invariant and is reported as an error rather than compared; this should
// be unreachable for puzzles built through New or the snapshot decoder.
func (p *Puzzle) SameSolution(other *Puzzle) (bool, error) {
	if !p.wellFormed() || !other.wellFormed() {
		return false, fmt.Errorf("same solution: puzzle with unpopulated fingerprint slot")
	}
	return p.AnswerFingerprint == other.AnswerFingerprint ||
		p.ItemFingerprint == other.ItemFingerprint, nil
}

// RevealReward decrypts the reward secret for the given slot using the
// candidate text as key, and splits it into the lines to deliver.
//
// For the answer slot the key is normalized first, mirroring how New seals
// it, so any candidate whose fingerprint matched carries the right key. For
// the items slot the key is the canonical string verbatim.
//
// The caller only invokes this after a fingerprint match proved the key;
// vault.ErrWrongKey here means the stored record is inconsistent.
func (p *Puzzle) RevealReward(key string, form Form) ([]string, error) {
	secret := p.SecretForAnswer
	if form == FormAnswer {
		key = text.Normalize(key)
	} else {
		secret = p.SecretForItems
	}

	reward, err := vault.Decrypt(secret, key)
	if err != nil {
		return nil, fmt.Errorf("reveal reward for %q: %w", p.Name, err)
	}
	return strings.Split(reward, "\n"), nil
}

// MarkSolved stamps the solve record. The first solver wins: a record that
// is already set is never overwritten, and the call reports whether it
// stamped.
func (p *Puzzle) MarkSolved(solverName, solverID string, at time.Time) bool {
	if p.Solve != nil {
		return false
	}
	p.Solve = &SolveRecord{
		SolverName: solverName,
		SolverID:   solverID,
		SolvedAt:   at,
	}
	return true
}

// Solved reports whether the puzzle has been solved.
func (p *Puzzle) Solved() bool {
	return p.Solve != nil
}

// SolveStatus renders the human-readable solve state shown in listings.
func (p *Puzzle) SolveStatus() string {
	if p.Solve == nil {
		return "Unsolved"
	}
	return fmt.Sprintf("First solved by: %s", p.Solve.SolverName)
}

// CarrySolveFrom copies the solve record of an earlier revision onto this
// puzzle. Used by registry update so re-registering under the same
// author+name does not erase solve history.
func (p *Puzzle) CarrySolveFrom(old *Puzzle) {
	if old != nil && old.Solve != nil {
		record := *old.Solve
		p.Solve = &record
	}
}

// wellFormed reports whether both fingerprint slots are populated.
func (p *Puzzle) wellFormed() bool {
	return p != nil && p.AnswerFingerprint != "" && p.ItemFingerprint != ""
}

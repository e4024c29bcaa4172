package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mombot/mom/internal/puzzle"
	"github.com/mombot/mom/internal/text"
	"github.com/mombot/mom/internal/vault"
)

// Registry holds the two disjoint puzzle partitions and persists them as a
// whole snapshot after every mutation.
type Registry struct {
	mu       sync.RWMutex
	path     string
	obscurer *vault.NameObscurer

	active []*puzzle.Puzzle
	solved []*puzzle.Puzzle
}

// Open loads a registry from the snapshot at path, or creates an empty one
// if no snapshot exists yet. The obscurer must hold the same system key the
// snapshot was written under.
func Open(path string, obscurer *vault.NameObscurer) (*Registry, error) {
	r := &Registry{path: path, obscurer: obscurer}

	active, solved, err := loadSnapshot(path, obscurer)
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	r.active = active
	r.solved = solved

	return r, nil
}

// Register appends a puzzle to the active partition and returns its
// position. The fingerprint-collision check is the caller's job: whether a
// collision is a duplicate or an authorized update of the same author+name
// depends on caller intent.
func (r *Registry) Register(p *puzzle.Puzzle) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	prev := slices.Clone(r.active)
	r.active = append(r.active, p)

	if err := r.persistLocked(); err != nil {
		r.active = prev
		return 0, err
	}
	return len(r.active) - 1, nil
}

// CheckMatchingFingerprints reports whether any active puzzle shares either
// fingerprint slot with the candidate. Used to reject duplicate-answer
// registrations before Register is called.
func (r *Registry) CheckMatchingFingerprints(candidate *puzzle.Puzzle) (bool, error) {
	collision, err := r.FindCollision(candidate)
	return collision != nil, err
}

// FindCollision returns the first active puzzle sharing either fingerprint
// slot with the candidate, or nil. The caller decides whether a collision
// is a duplicate or an authorized update of the same author+name.
func (r *Registry) FindCollision(candidate *puzzle.Puzzle) (*puzzle.Puzzle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.active {
		same, err := p.SameSolution(candidate)
		if err != nil {
			return nil, err
		}
		if same {
			return p, nil
		}
	}
	return nil, nil
}

// AuthorPuzzles returns the puzzles owned by authorID across both
// partitions, solved first, each partition in insertion order. When
// nameFilter is non-empty only puzzles whose name matches it
// case-insensitively are returned.
func (r *Registry) AuthorPuzzles(authorID, nameFilter string) []*puzzle.Puzzle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*puzzle.Puzzle
	for _, p := range append(slices.Clone(r.solved), r.active...) {
		if p.AuthorID != authorID {
			continue
		}
		if nameFilter != "" && !strings.EqualFold(nameFilter, p.Name) {
			continue
		}
		matches = append(matches, p)
	}
	return matches
}

// Update replaces old with new in place within the active partition,
// carrying old's solve record forward so re-registering under the same
// author+name does not erase solve history.
//
// Update matches the active partition only; solved puzzles are immutable
// history.
func (r *Registry) Update(old, updated *puzzle.Puzzle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.Index(r.active, old)
	if idx < 0 {
		return fmt.Errorf("update: puzzle %q not in active partition", old.Name)
	}

	updated.CarrySolveFrom(old)

	r.active[idx] = updated
	if err := r.persistLocked(); err != nil {
		r.active[idx] = old
		return err
	}
	return nil
}

// Delete removes a puzzle from the active partition. Returns false without
// mutating anything if the puzzle is not active; solved puzzles cannot be
// deleted.
func (r *Registry) Delete(p *puzzle.Puzzle) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.Index(r.active, p)
	if idx < 0 {
		return false, nil
	}

	prev := slices.Clone(r.active)
	r.active = slices.Delete(r.active, idx, idx+1)

	if err := r.persistLocked(); err != nil {
		r.active = prev
		return false, err
	}
	return true, nil
}

// SolutionMatch fingerprints the candidate text and scans for a puzzle
// whose selected slot matches, returning the first hit in insertion order.
//
// The active partition is scanned first, then the solved partition: a
// puzzle that has already been solved stays matchable (later solvers still
// get the reward) but its solve record is already taken. Fingerprint
// collisions across distinct valid answers are a registration-time error,
// so no tie-break beyond insertion order is needed.
func (r *Registry) SolutionMatch(candidate string, form puzzle.Form) *puzzle.Puzzle {
	fingerprint := text.Fingerprint(candidate)
	if fingerprint == "" {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.active {
		if p.CheckSolution(fingerprint, form) {
			return p
		}
	}
	for _, p := range r.solved {
		if p.CheckSolution(fingerprint, form) {
			return p
		}
	}
	return nil
}

// MarkSolved stamps the solve record and moves the puzzle from active to
// solved. The caller must already have excluded the puzzle's own author as
// solver; self-solve is rejected above the registry, never recorded here.
//
// A puzzle that is not in the active partition is reported as an error:
// the solved partition is terminal and its records never restamp.
func (r *Registry) MarkSolved(p *puzzle.Puzzle, solverName, solverID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := slices.Index(r.active, p)
	if idx < 0 {
		return fmt.Errorf("mark solved: puzzle %q not in active partition", p.Name)
	}

	if !p.MarkSolved(solverName, solverID, at) {
		return fmt.Errorf("mark solved: puzzle %q already has a solve record", p.Name)
	}

	prevActive := slices.Clone(r.active)
	prevSolved := slices.Clone(r.solved)
	r.active = slices.Delete(r.active, idx, idx+1)
	r.solved = append(r.solved, p)

	if err := r.persistLocked(); err != nil {
		r.active = prevActive
		r.solved = prevSolved
		p.Solve = nil
		return err
	}
	return nil
}

// IsActive reports whether the puzzle is in the active partition.
func (r *Registry) IsActive(p *puzzle.Puzzle) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Index(r.active, p) >= 0
}

// Counts returns the partition sizes, for startup logging and listings.
func (r *Registry) Counts() (active, solved int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.active), len(r.solved)
}

// Import seeds an empty registry with pre-built puzzles and persists once.
// Refuses to run on a registry that already holds any puzzle; it exists for
// one-shot migration of a legacy store into a fresh snapshot.
func (r *Registry) Import(active, solved []*puzzle.Puzzle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.active) > 0 || len(r.solved) > 0 {
		return fmt.Errorf("import: registry is not empty (%d active, %d solved)", len(r.active), len(r.solved))
	}

	r.active = slices.Clone(active)
	r.solved = slices.Clone(solved)
	if err := r.persistLocked(); err != nil {
		r.active, r.solved = nil, nil
		return err
	}
	return nil
}

// persistLocked writes the full snapshot. Callers hold the write lock.
func (r *Registry) persistLocked() error {
	if err := writeSnapshot(r.path, r.obscurer, r.active, r.solved); err != nil {
		return fmt.Errorf("persist registry: %w", err)
	}
	return nil
}

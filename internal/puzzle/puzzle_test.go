package puzzle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mombot/mom/internal/text"
)

func mustNew(t *testing.T, name, answerText, itemCanonical string) *Puzzle {
	t.Helper()
	p, err := New(name, "author-1", "Alice", answerText, itemCanonical, "GZ")
	require.NoError(t, err)
	return p
}

func TestNew_RequiresExactlyOneForm(t *testing.T) {
	_, err := New("Onion", "a", "Alice", "", "", "GZ")
	assert.Error(t, err, "no answer form")

	_, err = New("Onion", "a", "Alice", "onion man", "2COAL--DIANGO", "GZ")
	assert.Error(t, err, "both answer forms")

	_, err = New("", "a", "Alice", "onion man", "", "GZ")
	assert.Error(t, err, "empty name")
}

func TestNew_FillsBothSlots(t *testing.T) {
	p := mustNew(t, "Onion", "onion man", "")

	// The unused item slot still holds a well-formed fingerprint and
	// secret, indistinguishable from a real one.
	assert.Len(t, p.AnswerFingerprint, 64)
	assert.Len(t, p.ItemFingerprint, 64)
	assert.NotEqual(t, p.AnswerFingerprint, p.ItemFingerprint)
	assert.NotEmpty(t, p.SecretForAnswer)
	assert.NotEmpty(t, p.SecretForItems)
}

func TestCheckSolution(t *testing.T) {
	p := mustNew(t, "Onion", "onion man", "")

	assert.True(t, p.CheckSolution(text.Fingerprint("ONIONMAN"), FormAnswer))
	assert.True(t, p.CheckSolution(text.Fingerprint("  onion   man "), FormAnswer))
	assert.False(t, p.CheckSolution(text.Fingerprint("onion men"), FormAnswer))
	assert.False(t, p.CheckSolution(text.Fingerprint("onion man"), FormItems),
		"answer fingerprint must not match the items slot")
	assert.False(t, p.CheckSolution("", FormAnswer), "empty candidate never matches")
}

func TestRevealReward(t *testing.T) {
	p, err := New("Onion", "a", "Alice", "onion man", "", "GZ\nwell done")
	require.NoError(t, err)

	lines, err := p.RevealReward("onion man", FormAnswer)
	require.NoError(t, err)
	assert.Equal(t, []string{"GZ", "well done"}, lines)

	// Any guess that fingerprints equal carries the decryption key.
	lines, err = p.RevealReward("  ONION-man!! ", FormAnswer)
	require.NoError(t, err)
	assert.Equal(t, []string{"GZ", "well done"}, lines)

	_, err = p.RevealReward("wrong guess", FormAnswer)
	assert.Error(t, err)
}

func TestRevealReward_ItemForm(t *testing.T) {
	canonical := "2COAL-1ROPE--DIANGO"
	p := mustNew(t, "Hunt", "", canonical)

	lines, err := p.RevealReward(canonical, FormItems)
	require.NoError(t, err)
	assert.Equal(t, []string{"GZ"}, lines)
}

func TestSameSolution(t *testing.T) {
	a := mustNew(t, "Onion", "onion man", "")
	b := mustNew(t, "Allium", "onion man", "")
	c := mustNew(t, "Other", "garlic man", "")

	same, err := a.SameSolution(b)
	require.NoError(t, err)
	assert.True(t, same)

	same, err = a.SameSolution(c)
	require.NoError(t, err)
	assert.False(t, same)
}

func TestSameSolution_MalformedPuzzle(t *testing.T) {
	a := mustNew(t, "Onion", "onion man", "")
	malformed := &Puzzle{Name: "Broken"}

	_, err := a.SameSolution(malformed)
	assert.Error(t, err)
}

func TestMarkSolved_FirstSolverWins(t *testing.T) {
	p := mustNew(t, "Onion", "onion man", "")
	assert.Equal(t, "Unsolved", p.SolveStatus())

	t1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	assert.True(t, p.MarkSolved("Bob", "solver-1", t1))
	require.NotNil(t, p.Solve)
	assert.Equal(t, "Bob", p.Solve.SolverName)
	assert.Equal(t, "solver-1", p.Solve.SolverID)
	assert.Equal(t, t1, p.Solve.SolvedAt)
	assert.Equal(t, "First solved by: Bob", p.SolveStatus())

	// Second solver does not overwrite.
	assert.False(t, p.MarkSolved("Carol", "solver-2", t1.Add(time.Hour)))
	assert.Equal(t, "Bob", p.Solve.SolverName)
}

func TestCarrySolveFrom(t *testing.T) {
	old := mustNew(t, "Onion", "onion man", "")
	old.MarkSolved("Bob", "solver-1", time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	updated := mustNew(t, "Onion", "onion woman", "")
	updated.CarrySolveFrom(old)

	require.NotNil(t, updated.Solve)
	assert.Equal(t, "Bob", updated.Solve.SolverName)

	// The carried record is a copy, not an alias.
	old.Solve.SolverName = "mutated"
	assert.Equal(t, "Bob", updated.Solve.SolverName)
}

func TestCarrySolveFrom_NoRecord(t *testing.T) {
	old := mustNew(t, "Onion", "onion man", "")
	updated := mustNew(t, "Onion", "onion woman", "")
	updated.CarrySolveFrom(old)
	assert.Nil(t, updated.Solve)
}

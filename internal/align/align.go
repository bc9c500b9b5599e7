// Package align pairs a target phoneme sequence with a spoken one using
// classic edit distance (substitution, insertion and deletion all cost 1).
// Phonetic-similarity weighting is an extension point, not part of the base
// cost model.
package align

import (
	"fmt"

	"github.com/coreyprator/super-flashcards-server/domain/entities"
	"github.com/coreyprator/super-flashcards-server/internal/phoneme"
)

// InputError reports a violated phonemizer invariant (a placeholder or empty
// symbol inside a sequence). It signals an internal-consistency fault, not a
// user-facing condition.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid alignment input: %s", e.Reason)
}

// Sequences aligns the target and spoken phoneme sequences and returns the
// aligned pairs in beginning-to-end order of the phrase.
//
// When several minimum-cost alignments exist, the diagonal move wins:
// match/substitution is preferred over insertion/deletion, which keeps the
// alignment positional and therefore more useful for coaching. An empty
// spoken sequence yields one deletion pair per target phoneme; an empty
// target yields one insertion pair per spoken phoneme.
func Sequences(target, spoken phoneme.Sequence) (entities.AlignmentResult, error) {
	if err := checkSymbols("target", target); err != nil {
		return entities.AlignmentResult{}, err
	}
	if err := checkSymbols("spoken", spoken); err != nil {
		return entities.AlignmentResult{}, err
	}

	m, n := len(target), len(spoken)

	// d[i][j] is the edit cost of aligning target[:i] with spoken[:j].
	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			diag := d[i-1][j-1]
			if target[i-1] != spoken[j-1] {
				diag++
			}
			del := d[i-1][j] + 1
			ins := d[i][j-1] + 1
			d[i][j] = minOf(diag, del, ins)
		}
	}

	// Backtrack from the bottom-right corner, taking the diagonal whenever
	// it is on a minimum-cost path.
	pairs := make([]entities.AlignedPair, 0, maxOf(m, n))
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && d[i][j] == d[i-1][j-1]+substCost(target[i-1], spoken[j-1]):
			op := entities.OpSubstitution
			if target[i-1] == spoken[j-1] {
				op = entities.OpMatch
			}
			pairs = append(pairs, entities.AlignedPair{
				Target: string(target[i-1]),
				Spoken: string(spoken[j-1]),
				Op:     op,
			})
			i--
			j--
		case i > 0 && d[i][j] == d[i-1][j]+1:
			pairs = append(pairs, entities.AlignedPair{
				Target: string(target[i-1]),
				Op:     entities.OpDeletion,
			})
			i--
		default:
			pairs = append(pairs, entities.AlignedPair{
				Spoken: string(spoken[j-1]),
				Op:     entities.OpInsertion,
			})
			j--
		}
	}

	// Backtracking produced the pairs right-to-left.
	for l, r := 0, len(pairs)-1; l < r; l, r = l+1, r-1 {
		pairs[l], pairs[r] = pairs[r], pairs[l]
	}

	return entities.AlignmentResult{Pairs: pairs, EditCost: d[m][n]}, nil
}

func checkSymbols(name string, seq phoneme.Sequence) error {
	for i, p := range seq {
		if p == "" {
			return &InputError{Reason: fmt.Sprintf("%s sequence has empty symbol at index %d", name, i)}
		}
	}
	return nil
}

func substCost(a, b phoneme.Phoneme) int {
	if a == b {
		return 0
	}
	return 1
}

func minOf(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}

func maxOf(a, b int) int {
	if a > b {
		return a
	}
	return b
}

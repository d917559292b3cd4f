package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeRecCover/WeRecCover/internal/cover"
)

func TestTrimmer_ShrinksOverlappingStrips(t *testing.T) {
	// The two maximal strips overlap in the bottom-left quadrant; trimming
	// shrinks the first rectangle away from the shared area.
	initial := cover.Cover{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
	}
	runtime := env()
	c, err := NewTrimmer(&stubProvider{cover: initial}).CoverFor(lShape(), unitCosts(), runtime)
	require.NoError(t, err)

	assert.ElementsMatch(t, cover.Cover{
		rect(t, 0, 2, 2, 4),
		rect(t, 0, 0, 4, 2),
	}, c)
	assert.True(t, cover.IsValidCover(c, lShape()))
	assert.True(t, runtime.PixelInvalidated)
}

func TestTrimmer_LeavesDisjointCoverAlone(t *testing.T) {
	initial := cover.Cover{
		rect(t, 0, 2, 2, 4),
		rect(t, 0, 0, 4, 2),
	}
	c, err := NewTrimmer(&stubProvider{cover: initial}).CoverFor(lShape(), unitCosts(), env())
	require.NoError(t, err)
	assert.ElementsMatch(t, initial, c)
}

func TestTrimmer_IsIdempotent(t *testing.T) {
	initial := cover.Cover{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
	}
	runtime := env()
	once, err := NewTrimmer(&stubProvider{cover: initial}).CoverFor(lShape(), unitCosts(), runtime)
	require.NoError(t, err)
	twice, err := NewTrimmer(&stubProvider{cover: once}).CoverFor(lShape(), unitCosts(), runtime)
	require.NoError(t, err)
	assert.ElementsMatch(t, once, twice)
}

func TestTrimmer_CostNeverIncreases(t *testing.T) {
	costs := cover.Costs{Creation: 3, Area: 7}
	initial := cover.Cover{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
	}
	c, err := NewTrimmer(&stubProvider{cover: initial}).CoverFor(lShape(), costs, env())
	require.NoError(t, err)
	assert.LessOrEqual(t, cover.TotalCoverCost(c, costs), cover.TotalCoverCost(initial, costs))
	assert.True(t, cover.IsValidCover(c, lShape()))
}

func TestTrimmer_AfterPrune(t *testing.T) {
	initial := cover.Cover{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
		rect(t, 0, 0, 2, 2),
	}
	chain := NewTrimmer(NewPruner(&stubProvider{cover: initial}))
	c, err := chain.CoverFor(lShape(), unitCosts(), env())
	require.NoError(t, err)

	assert.Len(t, c, 2)
	assert.True(t, cover.IsValidCover(c, lShape()))
	assertDisjoint(t, c)
}

package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeRecCover/WeRecCover/internal/cover"
)

func TestPruner_RemovesRedundantRectangle(t *testing.T) {
	// Both strips plus a rectangle that only covers area the strips already
	// cover.
	initial := cover.Cover{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
		rect(t, 0, 0, 2, 2),
	}
	pruner := NewPruner(&stubProvider{cover: initial})

	runtime := env()
	c, err := pruner.CoverFor(lShape(), unitCosts(), runtime)
	require.NoError(t, err)

	assert.ElementsMatch(t, cover.Cover{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
	}, c)
	assert.True(t, cover.IsValidCover(c, lShape()))
	assert.True(t, runtime.PixelInvalidated)

	for _, count := range runtime.CoverageCounts {
		assert.GreaterOrEqual(t, count, 1, "every base rectangle stays covered")
	}
}

func TestPruner_RemovesRedundantRegardlessOfOrder(t *testing.T) {
	initial := cover.Cover{
		rect(t, 0, 0, 2, 2), // redundant, added first this time
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
	}
	c, err := NewPruner(&stubProvider{cover: initial}).CoverFor(lShape(), unitCosts(), env())
	require.NoError(t, err)
	assert.Len(t, c, 2)
	assert.NotContains(t, c, rect(t, 0, 0, 2, 2))
}

func TestPruner_KeepsNecessaryRectangles(t *testing.T) {
	initial := cover.Cover{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
	}
	c, err := NewPruner(&stubProvider{cover: initial}).CoverFor(lShape(), unitCosts(), env())
	require.NoError(t, err)
	assert.ElementsMatch(t, initial, c)
}

func TestPruner_IsIdempotent(t *testing.T) {
	initial := cover.Cover{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
		rect(t, 0, 0, 2, 2),
	}
	runtime := env()
	once, err := NewPruner(&stubProvider{cover: initial}).CoverFor(lShape(), unitCosts(), runtime)
	require.NoError(t, err)

	twice, err := NewPruner(&stubProvider{cover: once}).CoverFor(lShape(), unitCosts(), runtime)
	require.NoError(t, err)
	assert.ElementsMatch(t, once, twice)
}

func TestPruner_CostNeverIncreases(t *testing.T) {
	costs := cover.Costs{Creation: 5, Area: 2}
	initial := cover.Cover{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
		rect(t, 0, 0, 2, 2),
	}
	c, err := NewPruner(&stubProvider{cover: initial}).CoverFor(lShape(), costs, env())
	require.NoError(t, err)
	assert.LessOrEqual(t, cover.TotalCoverCost(c, costs), cover.TotalCoverCost(initial, costs))
}

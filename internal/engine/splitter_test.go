package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/WeRecCover/WeRecCover/internal/cover"
)

func TestBBoxSplitter_ShrinksToUniquelyCoveredArea(t *testing.T) {
	// The first strip uniquely covers only the arm tip; its bounding box is
	// half the size and replaces it.
	initial := cover.Cover{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
	}
	runtime := env()
	c, err := NewBBoxSplitter(&stubProvider{cover: initial}).CoverFor(lShape(), unitCosts(), runtime)
	require.NoError(t, err)

	assert.ElementsMatch(t, cover.Cover{
		rect(t, 0, 2, 2, 4),
		rect(t, 0, 0, 4, 2),
	}, c)
	assert.True(t, cover.IsValidCover(c, lShape()))
	assert.True(t, runtime.PixelInvalidated)
}

func TestBBoxSplitter_KeepsCheapestCover(t *testing.T) {
	// A disjoint partition has nothing to shrink.
	initial := cover.Cover{
		rect(t, 0, 2, 2, 4),
		rect(t, 0, 0, 4, 2),
	}
	c, err := NewBBoxSplitter(&stubProvider{cover: initial}).CoverFor(lShape(), unitCosts(), env())
	require.NoError(t, err)
	assert.ElementsMatch(t, initial, c)
}

func TestBBoxSplitter_CostNeverIncreases(t *testing.T) {
	costs := cover.Costs{Creation: 2, Area: 3}
	initial := cover.Cover{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
	}
	c, err := NewBBoxSplitter(&stubProvider{cover: initial}).CoverFor(lShape(), costs, env())
	require.NoError(t, err)
	assert.LessOrEqual(t, cover.TotalCoverCost(c, costs), cover.TotalCoverCost(initial, costs))
}

func TestPartitionSplitter_SplitsIntoDisjointPieces(t *testing.T) {
	initial := cover.Cover{
		rect(t, 0, 0, 2, 4),
		rect(t, 0, 0, 4, 2),
	}
	runtime := env()
	c, err := NewPartitionSplitter(&stubProvider{cover: initial}).CoverFor(lShape(), unitCosts(), runtime)
	require.NoError(t, err)

	assert.True(t, cover.IsValidCover(c, lShape()))
	assert.LessOrEqual(t, cover.TotalCoverCost(c, unitCosts()), cover.TotalCoverCost(initial, unitCosts()))
}

func TestPartitionSplitter_HoledSquareCover(t *testing.T) {
	polygon := holedSquare()
	runtime := env()
	base, err := NewStrip().CoverFor(polygon, unitCosts(), runtime)
	require.NoError(t, err)

	c, err := NewPartitionSplitter(&stubProvider{cover: base}).CoverFor(polygon, unitCosts(), runtime)
	require.NoError(t, err)
	assert.True(t, cover.IsValidCover(c, polygon))
}

func TestSplitters_ChainAfterAlgorithm(t *testing.T) {
	// The full chain the CLI builds for "strip+prune+bbox-split".
	provider := NewBBoxSplitter(NewPruner(NewStrip()))
	runtime := env()
	c, err := provider.CoverFor(lShape(), unitCosts(), runtime)
	require.NoError(t, err)
	assert.True(t, cover.IsValidCover(c, lShape()))
}

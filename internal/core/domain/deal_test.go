package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWeightedValueCents(t *testing.T) {
	d := Deal{ValueCents: 100000, Probability: 50}
	assert.Equal(t, int64(50000), d.WeightedValueCents())

	// Truncation, not rounding: 999 * 33 / 100 = 329.67 -> 329
	d = Deal{ValueCents: 999, Probability: 33}
	assert.Equal(t, int64(329), d.WeightedValueCents())

	d = Deal{ValueCents: 100000, Probability: 0}
	assert.Equal(t, int64(0), d.WeightedValueCents())

	d = Deal{ValueCents: 100000, Probability: 100}
	assert.Equal(t, int64(100000), d.WeightedValueCents())
}

func TestDealStage(t *testing.T) {
	assert.True(t, StageClosedWon.IsTerminal())
	assert.True(t, StageClosedLost.IsTerminal())
	assert.False(t, StageProspecting.IsTerminal())
	assert.False(t, StageNegotiation.IsTerminal())

	assert.True(t, StageProposal.Valid())
	assert.False(t, DealStage("archived").Valid())
	assert.False(t, DealStage("").Valid())
}

func TestCountsTowardPipeline(t *testing.T) {
	open := Deal{Stage: StageNegotiation}
	assert.True(t, open.CountsTowardPipeline())

	won := Deal{Stage: StageClosedWon}
	assert.False(t, won.CountsTowardPipeline())
	lost := Deal{Stage: StageClosedLost}
	assert.False(t, lost.CountsTowardPipeline())
}

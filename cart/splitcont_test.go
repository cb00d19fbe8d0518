package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBestContinuousSplitStepFunction covers scenario A: a single
// continuous predictor with an obvious step function in the response
// should split right at the step.
func TestBestContinuousSplitStepFunction(t *testing.T) {
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	y := make([]float64, 10)
	for i, v := range x {
		if v <= 5 {
			y[i] = 0
		} else {
			y[i] = 10
		}
	}
	w := make([]float64, 10)
	for i := range w {
		w[i] = 1
	}
	ds := &Dataset{X: x, N: 10, P: 1, Y: y, W: w, Levels: []int{0}}
	members := make([]int, 10)
	for i := range members {
		members[i] = i
	}
	cfg := NewConfig(MinCut(1))

	_, nodeYval, _ := fillinRegression(ds, members)
	cand, err := bestContinuousSplit(ds, members, 0, &cfg, nil, nodeYval, false)
	assert.NoError(t, err)
	assert.True(t, cand.ok)
	assert.InDelta(t, 5.5, cand.threshold, 1e-9)
}

func TestBestContinuousSplitRespectsMinCut(t *testing.T) {
	x := []float64{1, 2, 3, 10, 11, 12}
	y := []float64{0, 0, 0, 10, 10, 10}
	w := []float64{1, 1, 1, 1, 1, 1}
	ds := &Dataset{X: x, N: 6, P: 1, Y: y, W: w, Levels: []int{0}}
	members := []int{0, 1, 2, 3, 4, 5}
	cfg := NewConfig(MinCut(4))

	_, nodeYval, _ := fillinRegression(ds, members)
	cand, err := bestContinuousSplit(ds, members, 0, &cfg, nil, nodeYval, false)
	assert.NoError(t, err)
	assert.False(t, cand.ok, "a mincut of 4 on 6 rows leaves no valid 3/3-or-better split position")
}

// TestBestContinuousSplitMissingAddsConstantSdev covers scenario D:
// missing-valued rows add a fixed term to every candidate's loss but never
// change which threshold wins.
func TestBestContinuousSplitMissingAddsConstantSdev(t *testing.T) {
	nan := math.NaN()
	x := []float64{1, 2, 3, 4, 5, 6, 7, 8, nan, nan}
	y := []float64{0, 0, 0, 0, 10, 10, 10, 10, 3, 7}
	w := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}
	ds := &Dataset{X: x, N: 10, P: 1, Y: y, W: w, Levels: []int{0}}
	members := make([]int, 10)
	for i := range members {
		members[i] = i
	}
	cfg := NewConfig(MinCut(1))
	_, nodeYval, _ := fillinRegression(ds, members)

	withMissing, err := bestContinuousSplit(ds, members, 0, &cfg, nil, nodeYval, false)
	assert.NoError(t, err)
	assert.True(t, withMissing.ok)
	assert.InDelta(t, 4.5, withMissing.threshold, 1e-9)

	// Drop the missing rows entirely: same threshold, lower (non-sdev) loss.
	present := members[:8]
	noMissing, err := bestContinuousSplit(ds, present, 0, &cfg, nil, nodeYval, false)
	assert.NoError(t, err)
	assert.InDelta(t, withMissing.threshold, noMissing.threshold, 1e-9)
	assert.Less(t, noMissing.loss, withMissing.loss)
}

func TestBestContinuousSplitGiniRejectsMissing(t *testing.T) {
	nan := math.NaN()
	x := []float64{1, 2, nan, 4}
	y := []float64{1, 1, 2, 2}
	w := []float64{1, 1, 1, 1}
	ds := &Dataset{X: x, N: 4, P: 1, Y: y, W: w, Levels: []int{0}, Classes: 2}
	members := []int{0, 1, 2, 3}
	cfg := NewConfig(UseCriterion(GiniCriterion), MinCut(1))
	yprob := []float64{0.5, 0.5}

	_, err := bestContinuousSplit(ds, members, 0, &cfg, yprob, 1, true)
	assert.ErrorIs(t, err, ErrGiniWithMissing)
}

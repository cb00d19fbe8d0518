package cart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stepRegressionTree(t *testing.T) *Tree {
	t.Helper()
	n := 20
	x := make([]float64, n)
	y := make([]float64, n)
	w := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i + 1)
		if i < 10 {
			y[i] = 0
		} else {
			y[i] = 10
		}
		w[i] = 1
	}
	ds := &Dataset{X: x, N: n, P: 1, Y: y, W: w, Levels: []int{0}}
	cfg := NewConfig(MinSize(2), MinCut(1), MinDev(0.001))
	tree, err := Grow(cfg, ds, nil)
	if err != nil {
		t.Fatal(err)
	}
	return tree
}

func TestPredictRoutesDeterministically(t *testing.T) {
	tree := stepRegressionTree(t)

	yval, _, err := tree.Predict([]float64{3})
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, yval, 1e-9)

	yval, _, err = tree.Predict([]float64{17})
	assert.NoError(t, err)
	assert.InDelta(t, 10.0, yval, 1e-9)
}

func TestPredictFreezesOnMissing(t *testing.T) {
	tree := stepRegressionTree(t)
	root := tree.Nodes[0]

	yval, _, err := tree.Predict([]float64{math.NaN()})
	assert.NoError(t, err)
	assert.InDelta(t, root.YVal, yval, 1e-9)
}

// TestPredictProbBlendsChildrenOnMissing covers scenario F: a missing
// split variable sends probability mass down both children in proportion
// to their training weight.
func TestPredictProbBlendsChildrenOnMissing(t *testing.T) {
	tree := stepRegressionTree(t)
	root := tree.Nodes[0]
	left := tree.Nodes[root.Left]
	right := tree.Nodes[root.Right]

	yval, _, err := tree.PredictProb([]float64{math.NaN()})
	assert.NoError(t, err)

	pLeft := left.N / (left.N + right.N)
	want := pLeft*left.YVal + (1-pLeft)*right.YVal
	assert.InDelta(t, want, yval, 1e-9)
	// with an even 10/10 split this should land exactly halfway between
	// the two leaf values.
	assert.InDelta(t, 5.0, yval, 1e-9)
}

func TestPredictCorruptTree(t *testing.T) {
	tree := &Tree{Nodes: []Node{{Var: 1, Left: 5, Right: 6, CutLeft: "<1"}}, Levels: []int{0}}
	_, _, err := tree.Predict([]float64{0})
	assert.ErrorIs(t, err, ErrCorruptTree)
}

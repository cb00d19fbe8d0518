package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalDevianceSumsLeavesOnly(t *testing.T) {
	tree := threeLeafTree()
	assert.InDelta(t, 0.0, tree.TotalDeviance(), 1e-9, "all three leaves in the fixture are pure")
}

// TestDeviance1LossMatrix covers VR_dev1: a 0/1 loss matrix should recover
// the weighted misclassification count at every node, accumulated from
// leaves up to the root.
func TestDeviance1LossMatrix(t *testing.T) {
	tree := &Tree{
		Classes: 2,
		Where:   []int{1, 1, 2, 2},
		Nodes: []Node{
			{ID: 1, Var: 1, N: 4, Left: 1, Right: 2},
			{ID: 2, N: 2, YVal: 1, Left: -1, Right: -1},
			{ID: 3, N: 2, YVal: 2, Left: -1, Right: -1},
		},
	}
	ds := &Dataset{
		N: 4, P: 1, Classes: 2, Levels: []int{0},
		X: []float64{1, 2, 3, 4},
		Y: []float64{1, 1, 2, 1},
		W: []float64{1, 1, 1, 1},
	}
	loss := []float64{0, 1, 1, 0}

	err := tree.Deviance1(ds, loss)
	assert.NoError(t, err)
	assert.InDelta(t, 0.0, tree.Nodes[1].Dev, 1e-9, "leaf 1's two rows are both correctly predicted")
	assert.InDelta(t, 1.0, tree.Nodes[2].Dev, 1e-9, "leaf 2 misclassifies one row")
	assert.InDelta(t, 1.0, tree.Nodes[0].Dev, 1e-9, "root accumulates every descendant's loss")
}

func TestDeviance1RejectsWrongLossMatrixSize(t *testing.T) {
	tree := &Tree{Classes: 2, Where: []int{1}, Nodes: []Node{{ID: 1, Left: -1, Right: -1}}}
	ds := &Dataset{N: 1, P: 1, Classes: 2, Levels: []int{0}, X: []float64{1}, Y: []float64{1}, W: []float64{1}}
	err := tree.Deviance1(ds, []float64{0, 1})
	assert.Error(t, err)
}

func TestDeviance3MatchesSubtreeStats(t *testing.T) {
	tree := threeLeafTree()
	dev := tree.Deviance3()
	assert.InDelta(t, 0.0, dev[2], 1e-9) // node index 2 is the right-side internal split; both its leaves are pure
	assert.InDelta(t, 0.0, dev[0], 1e-9) // whole tree is pure as currently grown
}

func TestDeviance2ClassificationUsesSafeLog(t *testing.T) {
	tree := &Tree{
		Classes: 2,
		Nodes: []Node{
			{N: 10, YProb: []float64{1, 0}, Left: -1, Right: -1},
		},
	}
	// a zero-probability class must not blow up to -Inf/NaN.
	d := tree.Deviance2(0)
	assert.False(t, d != d, "deviance should not be NaN")
	assert.Greater(t, d, -1.0)
}

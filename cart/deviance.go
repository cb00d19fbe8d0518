package cart

import (
	"math"

	"github.com/pkg/errors"
)

// devEps guards log(0) the way treefix.c's safe_log does: log(x+1e-200).
const devEps = 1e-200

func safeLog(x float64) float64 {
	return math.Log(x + devEps)
}

// TotalDeviance is the tree's total deviance: the sum of each leaf's own
// deviance, over the leaves reachable from the root (records orphaned by
// pruning are not counted).
func (t *Tree) TotalDeviance() float64 {
	if len(t.Nodes) == 0 {
		return 0
	}
	dev, _ := subtreeStats(t)
	return dev[0]
}

// Deviance1 recomputes every node's Dev under an arbitrary C*C
// misclassification-loss matrix, per treefix.c's VR_dev1: loss is a
// flattened, row-major matrix indexed loss[yTrue*C+yPred] (a 0/1 matrix
// with a zero diagonal degenerates to a plain misclassification count).
// Every observation's current routing (t.Where, as left by Grow) adds its
// own loss, at its leaf's predicted class, to that leaf's Dev and to every
// ancestor's Dev - the loss-matrix generalization of Deviance2's plain
// log-loss. ds must carry the same per-row response the tree was grown
// and routed against.
func (t *Tree) Deviance1(ds *Dataset, loss []float64) error {
	if t.Classes == 0 {
		return errors.New("Deviance1 requires a classification tree")
	}
	c := t.Classes
	if len(loss) != c*c {
		return errors.Errorf("loss matrix must have %d entries, got %d", c*c, len(loss))
	}
	if len(t.Where) != ds.N {
		return errors.Wrap(ErrCorruptTree, "Where length does not match dataset")
	}

	parent := make([]int, len(t.Nodes))
	for i := range parent {
		parent[i] = -1
	}
	for i := range t.Nodes {
		if t.Nodes[i].Left >= 0 {
			parent[t.Nodes[i].Left] = i
		}
		if t.Nodes[i].Right >= 0 {
			parent[t.Nodes[i].Right] = i
		}
	}

	for i := range t.Nodes {
		t.Nodes[i].Dev = 0
	}

	for j := 0; j < ds.N; j++ {
		idx := t.Where[j]
		if idx < 0 {
			idx = t.nodeByID(int64(-idx))
			if idx < 0 {
				return ErrCorruptTree
			}
		}
		if idx < 0 || idx >= len(t.Nodes) {
			return ErrCorruptTree
		}
		yTrue := int(ds.Y[j]) - 1
		if yTrue < 0 || yTrue >= c {
			return errors.Errorf("row %d has out-of-range class %v", j, ds.Y[j])
		}
		// yPred is fixed at the row's own terminal node - every ancestor's Dev
		// accumulates the loss actually realized at the leaf, not a
		// re-prediction using the ancestor's own (pre-split) class.
		yPred := int(t.Nodes[idx].YVal) - 1
		if yPred < 0 || yPred >= c {
			return ErrCorruptTree
		}
		l := loss[yTrue*c+yPred]
		for cur := idx; cur != -1; cur = parent[cur] {
			t.Nodes[cur].Dev += ds.W[j] * l
		}
	}
	return nil
}

// Deviance2 recomputes, from scratch via safeLog, the deviance a node
// would have if collapsed to a single leaf - per VR_dev2. Regression
// deviance (RSS) never needs the log guard, so the stored value is used
// directly; classification deviance is rebuilt from the node's class
// proportions so a zero-probability class can't produce -Inf/NaN.
func (t *Tree) Deviance2(idx int) float64 {
	n := &t.Nodes[idx]
	if t.Classes == 0 {
		return n.Dev
	}
	dev := 0.0
	for _, p := range n.YProb {
		dev -= 2 * n.N * p * safeLog(p)
	}
	return dev
}

// Deviance3 returns, per node, the deviance of the subtree rooted there as
// currently grown (the sum of its leaves' deviances) - per VR_dev3. Unlike
// the original's array-of-parent-pointers reconstruction, this walks the
// Left/Right child links already present on Node.
func (t *Tree) Deviance3() []float64 {
	out := make([]float64, len(t.Nodes))
	var rec func(idx int) float64
	rec = func(idx int) float64 {
		n := &t.Nodes[idx]
		if n.IsLeaf() {
			out[idx] = n.Dev
			return n.Dev
		}
		d := rec(n.Left) + rec(n.Right)
		out[idx] = d
		return d
	}
	rec(0)
	return out
}

// subtreeStats computes, for every node, the deviance and leaf count of
// the subtree rooted there.
func subtreeStats(t *Tree) (dev []float64, leaves []int) {
	dev = make([]float64, len(t.Nodes))
	leaves = make([]int, len(t.Nodes))
	var rec func(idx int)
	rec = func(idx int) {
		n := &t.Nodes[idx]
		if n.IsLeaf() {
			dev[idx] = n.Dev
			leaves[idx] = 1
			return
		}
		rec(n.Left)
		rec(n.Right)
		dev[idx] = dev[n.Left] + dev[n.Right]
		leaves[idx] = leaves[n.Left] + leaves[n.Right]
	}
	rec(0)
	return
}

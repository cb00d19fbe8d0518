package cart

// VarImp returns, per predictor column (0-based, length p), the total
// deviance reduction attributed to splits on that variable across the
// whole tree: for every internal node reachable from the root, node.Dev
// minus the sum of its two children's Dev, credited to node.Var. This is
// the single-tree analogue of rpart's variable importance table (which
// additionally credits surrogate splits; this engine has none, so primary
// splits are the whole of it).
func (t *Tree) VarImp(p int) []float64 {
	imp := make([]float64, p)
	var rec func(idx int)
	rec = func(idx int) {
		n := &t.Nodes[idx]
		if n.IsLeaf() {
			return
		}
		improvement := n.Dev - (t.Nodes[n.Left].Dev + t.Nodes[n.Right].Dev)
		imp[n.Var-1] += improvement
		rec(n.Left)
		rec(n.Right)
	}
	if len(t.Nodes) > 0 {
		rec(0)
	}
	return imp
}

package cart

// Predict routes a single row deterministically, per VR_pred1: it walks
// splits top-down and, if the row is missing the split variable at some
// node, freezes there and reports that node's own fitted value - the same
// rule training rows missing a split variable are frozen under (see
// route in grow.go).
func (t *Tree) Predict(x []float64) (yval float64, yprob []float64, err error) {
	idx, err := t.predictRoute(x)
	if err != nil {
		return 0, nil, err
	}
	n := &t.Nodes[idx]
	return n.YVal, n.YProb, nil
}

func (t *Tree) predictRoute(x []float64) (int, error) {
	idx := 0
	for {
		if idx < 0 || idx >= len(t.Nodes) {
			return 0, ErrCorruptTree
		}
		node := &t.Nodes[idx]
		if node.IsLeaf() {
			return idx, nil
		}
		col := node.Var - 1
		if col < 0 || col >= len(x) {
			return 0, ErrCorruptTree
		}
		v := x[col]
		if isMissing(v) {
			return idx, nil
		}
		goLeft, err := t.goesLeft(node, col, v)
		if err != nil {
			return 0, err
		}
		if goLeft {
			idx = node.Left
		} else {
			idx = node.Right
		}
	}
}

// PredictProb routes a row probability-weighted, per VR_pred2/downtree: a
// row missing a split variable is sent down BOTH children, split in
// proportion to each child's training weight, and the resulting value and
// class probabilities are the weighted mixture of what each side would
// have predicted.
func (t *Tree) PredictProb(x []float64) (yval float64, yprob []float64, err error) {
	return t.predictProb(0, x)
}

func (t *Tree) predictProb(idx int, x []float64) (float64, []float64, error) {
	if idx < 0 || idx >= len(t.Nodes) {
		return 0, nil, ErrCorruptTree
	}
	node := &t.Nodes[idx]
	if node.IsLeaf() {
		return node.YVal, node.YProb, nil
	}
	col := node.Var - 1
	if col < 0 || col >= len(x) {
		return 0, nil, ErrCorruptTree
	}
	v := x[col]
	if !isMissing(v) {
		goLeft, err := t.goesLeft(node, col, v)
		if err != nil {
			return 0, nil, err
		}
		if goLeft {
			return t.predictProb(node.Left, x)
		}
		return t.predictProb(node.Right, x)
	}

	left := &t.Nodes[node.Left]
	right := &t.Nodes[node.Right]
	total := left.N + right.N
	if total <= 0 {
		return node.YVal, node.YProb, nil
	}
	pLeft := left.N / total

	lv, lp, err := t.predictProb(node.Left, x)
	if err != nil {
		return 0, nil, err
	}
	rv, rp, err := t.predictProb(node.Right, x)
	if err != nil {
		return 0, nil, err
	}

	yv := pLeft*lv + (1-pLeft)*rv
	var yp []float64
	if lp != nil {
		yp = make([]float64, len(lp))
		for k := range yp {
			yp[k] = pLeft*lp[k] + (1-pLeft)*rp[k]
		}
	}
	return yv, yp, nil
}

func (t *Tree) goesLeft(node *Node, col int, v float64) (bool, error) {
	if col < len(t.Levels) && t.Levels[col] == 0 {
		threshold, err := parseThreshold(node.CutLeft)
		if err != nil {
			return false, err
		}
		return v < threshold, nil
	}
	return containsLevel(node.CutLeft, int(v)-1), nil
}

package cart

// buildNode is a node under construction: an owned, pointer-linked binary
// tree grown by recursion and flattened into a Tree's depth-first table
// once growth finishes. This is the alternative the design notes permit in
// place of growing the flat table in place and shifting it on every split.
type buildNode struct {
	members []int
	id      int64
	depth   int

	n, dev, yval float64
	yprob        []float64

	splitVar          int
	cutLeft, cutRight string
	left, right       *buildNode
}

// Grow builds a single tree from a dataset, recursing top-down and
// splitting nodes greedily by the lowest-loss candidate among every
// predictor, per grow.c's divide_node. ds.Classes > 0 selects
// classification; ds.Classes == 0 selects regression.
//
// When existing is non-nil, Grow re-grows a partially built tree instead
// of starting fresh: every one of existing's leaf positions is visited and
// offered to growNode exactly as a freshly filled-in node would be, per
// grow.c's BDRgrow1 "exists > 1" path (spec.md §4.5 "Re-growth"). Internal
// nodes of existing are kept verbatim; only its leaves are candidates for
// further splitting.
func Grow(cfg Config, ds *Dataset, existing *Tree) (*Tree, error) {
	classification := ds.Classes > 0

	var root *buildNode
	var rootDev float64
	count := 0

	if existing == nil {
		members := make([]int, ds.N)
		for i := range members {
			members[i] = i
		}
		root = &buildNode{members: members, id: 1}
		fillinNode(ds, root, &cfg, classification, -1)
		rootDev = root.dev
		count = 1
		if err := growNode(ds, root, cfg, classification, rootDev, &count); err != nil {
			return nil, err
		}
	} else {
		var err error
		root, count, err = rebuildFromExisting(existing, ds)
		if err != nil {
			return nil, err
		}
		rootDev = existing.Nodes[0].Dev
		if err := regrowLeaves(ds, root, cfg, classification, rootDev, &count); err != nil {
			return nil, err
		}
	}

	tree := &Tree{Classes: ds.Classes, Levels: ds.Levels}
	flatten(root, tree)
	tree.Where = route(ds, tree)
	return tree, nil
}

func fillinNode(ds *Dataset, n *buildNode, cfg *Config, classification bool, parentClass int) {
	if classification {
		n.n, n.yprob, n.yval, n.dev = fillinClassification(ds, n.members, parentClass)
		if cfg.Criterion == GiniCriterion {
			// spec.md §3: "under Gini dev[i] = 2*n[i]*(1 - sum p_k^2)". The
			// C source (grow.c's divide_node) only ever uses this value as
			// a local devtarget/bval and leaves dev[] itself at the
			// log-likelihood value; the node-record invariant in spec.md
			// takes precedence here, so the stored dev is overwritten.
			n.dev = giniDev(n.yprob, n.n)
		}
	} else {
		n.n, n.yval, n.dev = fillinRegression(ds, n.members)
	}
}

// rebuildFromExisting mirrors an already-grown Tree into an owned buildNode
// tree: internal nodes (and their stored fill-in statistics) are copied
// verbatim, and each leaf is reattached to the member rows that reach it,
// recovered from existing.Where, so growNode can consider splitting it
// further.
func rebuildFromExisting(existing *Tree, ds *Dataset) (*buildNode, int, error) {
	count := 0
	var build func(idx int) (*buildNode, error)
	build = func(idx int) (*buildNode, error) {
		if idx < 0 || idx >= len(existing.Nodes) {
			return nil, ErrCorruptTree
		}
		n := existing.Nodes[idx]
		count++
		bn := &buildNode{
			id:       n.ID,
			n:        n.N,
			dev:      n.Dev,
			yval:     n.YVal,
			yprob:    append([]float64(nil), n.YProb...),
			splitVar: n.Var,
			cutLeft:  n.CutLeft,
			cutRight: n.CutRight,
		}
		if n.IsLeaf() {
			for j, leaf := range existing.Where {
				if leaf == idx {
					bn.members = append(bn.members, j)
				}
			}
			return bn, nil
		}
		left, err := build(n.Left)
		if err != nil {
			return nil, err
		}
		right, err := build(n.Right)
		if err != nil {
			return nil, err
		}
		bn.left, bn.right = left, right
		return bn, nil
	}
	root, err := build(0)
	return root, count, err
}

// regrowLeaves walks a mirrored tree and attempts to split every node that
// is still a leaf (no children attached); already-split nodes are left
// untouched and only their subtrees are visited.
func regrowLeaves(ds *Dataset, node *buildNode, cfg Config, classification bool, rootDev float64, count *int) error {
	if node.left == nil && node.right == nil {
		return growNode(ds, node, cfg, classification, rootDev, count)
	}
	if err := regrowLeaves(ds, node.left, cfg, classification, rootDev, count); err != nil {
		return err
	}
	return regrowLeaves(ds, node.right, cfg, classification, rootDev, count)
}

const maxHeapID = 1 << 29

func growNode(ds *Dataset, node *buildNode, cfg Config, classification bool, rootDev float64, count *int) error {
	if node.n < cfg.MinSize {
		return nil
	}
	if node.id > maxHeapID {
		return ErrDepthExceeded
	}

	// devtarget, per grow.c's divide_node: under Gini, the node's own
	// (already Gini-scaled) dev is the acceptance bar outright; otherwise
	// it's the node's dev relaxed by the configured relative improvement.
	// Either way, a candidate must beat devtarget to be worth splitting on,
	// and a node whose devtarget has collapsed to noise is abandoned
	// before even scanning predictors (spec.md §4.5 step 3).
	devtarget := node.dev
	if cfg.Criterion != GiniCriterion {
		devtarget -= cfg.MinDev * rootDev
	}
	if devtarget <= 1e-6*rootDev {
		return nil
	}

	bestLoss := devtarget
	bestCol := -1
	bestIsCont := false
	var bestCont contSplit
	var bestDisc discSplit

	for col := 0; col < ds.P; col++ {
		if ds.Levels[col] == 0 {
			cand, err := bestContinuousSplit(ds, node.members, col, &cfg, node.yprob, node.yval, classification)
			if err != nil {
				return err
			}
			if cand.ok && cand.loss < bestLoss {
				bestLoss, bestCol, bestIsCont, bestCont = cand.loss, col, true, cand
			}
		} else {
			cand, err := bestDiscreteSplit(ds, node.members, col, &cfg, node.yprob, node.yval, classification)
			if err != nil {
				return err
			}
			if cand.ok && cand.loss < bestLoss {
				bestLoss, bestCol, bestIsCont, bestDisc = cand.loss, col, false, cand
			}
		}
	}

	if bestCol < 0 {
		return nil
	}

	var left, right []int
	if bestIsCont {
		for _, j := range node.members {
			v := ds.at(j, bestCol)
			if isMissing(v) {
				continue
			}
			if v < bestCont.threshold {
				left = append(left, j)
			} else {
				right = append(right, j)
			}
		}
	} else {
		inLeft := make([]bool, ds.Levels[bestCol])
		for _, l := range bestDisc.leftLevels {
			inLeft[l] = true
		}
		for _, j := range node.members {
			v := ds.at(j, bestCol)
			if isMissing(v) {
				continue
			}
			lvl := int(v) - 1
			if inLeft[lvl] {
				left = append(left, j)
			} else {
				right = append(right, j)
			}
		}
	}
	if len(left) == 0 || len(right) == 0 {
		return nil
	}
	if node.id >= maxHeapID {
		return ErrDepthExceeded
	}
	if *count+2 > cfg.NMax {
		return ErrCapacityExceeded
	}

	node.splitVar = bestCol + 1
	if bestIsCont {
		node.cutLeft = cutLeftLabel(bestCont.threshold)
		node.cutRight = cutRightLabel(bestCont.threshold)
	} else {
		node.cutLeft = categoricalLabel(bestDisc.leftLevels)
		var rightLevels []int
		inLeft := make([]bool, ds.Levels[bestCol])
		for _, l := range bestDisc.leftLevels {
			inLeft[l] = true
		}
		for l := 0; l < ds.Levels[bestCol]; l++ {
			if !inLeft[l] {
				rightLevels = append(rightLevels, l)
			}
		}
		node.cutRight = categoricalLabel(rightLevels)
	}

	parentClass := -1
	if classification {
		parentClass = int(node.yval) - 1
	}
	node.left = &buildNode{members: left, id: 2 * node.id, depth: node.depth + 1}
	node.right = &buildNode{members: right, id: 2*node.id + 1, depth: node.depth + 1}
	*count += 2
	fillinNode(ds, node.left, &cfg, classification, parentClass)
	fillinNode(ds, node.right, &cfg, classification, parentClass)

	if err := growNode(ds, node.left, cfg, classification, rootDev, count); err != nil {
		return err
	}
	return growNode(ds, node.right, cfg, classification, rootDev, count)
}

// flatten appends n and its subtree to tree.Nodes in depth-first,
// left-before-right order and returns n's table index.
func flatten(n *buildNode, tree *Tree) int {
	idx := len(tree.Nodes)
	tree.Nodes = append(tree.Nodes, Node{
		ID:    n.id,
		N:     n.n,
		Dev:   n.dev,
		YVal:  n.yval,
		YProb: n.yprob,
		Left:  -1,
		Right: -1,
	})
	if n.left != nil {
		tree.Nodes[idx].Var = n.splitVar
		tree.Nodes[idx].CutLeft = n.cutLeft
		tree.Nodes[idx].CutRight = n.cutRight
		li := flatten(n.left, tree)
		tree.Nodes[idx].Left = li
		ri := flatten(n.right, tree)
		tree.Nodes[idx].Right = ri
	}
	return idx
}

// route assigns every training row to the table index of the leaf it
// reaches, or to the negative id of the ancestor it stalls at if it's
// missing a split variable somewhere along the path.
func route(ds *Dataset, tree *Tree) []int {
	where := make([]int, ds.N)
	for i := 0; i < ds.N; i++ {
		where[i] = routeRow(ds, tree, 0, i)
	}
	return where
}

func routeRow(ds *Dataset, tree *Tree, idx, row int) int {
	node := &tree.Nodes[idx]
	if node.IsLeaf() {
		return idx
	}
	col := node.Var - 1
	v := ds.at(row, col)
	if isMissing(v) {
		return -int(node.ID)
	}
	var goLeft bool
	if ds.Levels[col] == 0 {
		threshold, err := parseThreshold(node.CutLeft)
		if err != nil {
			return idx
		}
		goLeft = v < threshold
	} else {
		goLeft = containsLevel(node.CutLeft, int(v)-1)
	}
	if goLeft {
		return routeRow(ds, tree, node.Left, row)
	}
	return routeRow(ds, tree, node.Right, row)
}

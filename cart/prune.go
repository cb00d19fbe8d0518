package cart

import "math"

// pruneEPS is the relative tolerance used to treat two weakest-link
// complexity values as tied, per VR_prune2's handling of near-equal g's:
// without it, floating point noise would make the "collapse every
// currently-weakest node" step collapse only one of several tied nodes at
// a time and the alpha sequence would gain spurious extra steps.
const pruneEPS = 1e-8

// PruneStep is one entry of the nested cost-complexity pruning sequence:
// Tree is the tree after collapsing every weakest link found at this
// step, Alpha is the complexity parameter at which that collapse becomes
// worthwhile, and Leaves is the resulting leaf count. PrunedID lists the
// heap ids collapsed to produce this step (every node whose g tied for
// the minimum is collapsed in the same step). TotalDev is the resulting
// tree's total deviance on the training response; TotalNDev is the same
// total on a companion, held-out response, per spec.md §4.7's ndev/nsdev
// bookkeeping - zero when no companion response is supplied.
type PruneStep struct {
	Alpha     float64
	Tree      *Tree
	Leaves    int
	PrunedID  []int64
	TotalDev  float64
	TotalNDev float64
}

// Prune runs weakest-link cost-complexity pruning with no companion
// response tracked (TotalNDev stays zero on every step). See PruneHoldout.
func Prune(t *Tree) []PruneStep {
	return PruneHoldout(t, nil)
}

// PruneHoldout runs weakest-link cost-complexity pruning, per VR_prune2: at
// each step, find every internal node whose collapse-to-leaf complexity
// increase g(node) = (Deviance2(node) - subtreeDeviance(node)) /
// (subtreeLeaves(node) - 1) is minimal, collapse all of them at once, and
// record the resulting tree under that alpha. The sequence ends when the
// root itself is a leaf.
//
// ndev, when non-nil, gives every node's own deviance as a leaf on a
// second, held-out response (same indexing as t.Nodes - typically built by
// routing a held-out sample through t and scoring each leaf the way Dev is
// scored during growth). Each step's TotalNDev sums ndev over that step's
// kept leaves, the companion to TotalDev. A nil ndev leaves TotalNDev at
// zero on every step.
func PruneHoldout(t *Tree, ndev []float64) []PruneStep {
	cur := cloneTree(t)
	var steps []PruneStep

	for {
		dev, leaves := subtreeStats(cur)
		if leaves[0] <= 1 {
			steps = append(steps, PruneStep{
				Alpha: math.Inf(1), Tree: cloneTree(cur), Leaves: 1,
				TotalDev: dev[0], TotalNDev: holdoutTotal(cur, ndev),
			})
			return steps
		}

		minG := math.Inf(1)
		g := make([]float64, len(cur.Nodes))
		for i := range g {
			g[i] = math.Inf(1)
		}
		for i := range cur.Nodes {
			if cur.Nodes[i].IsLeaf() || leaves[i] == 0 {
				continue
			}
			collapsed := cur.Deviance2(i)
			gi := (collapsed - dev[i]) / float64(leaves[i]-1)
			g[i] = gi
			if gi < minG {
				minG = gi
			}
		}

		tol := pruneEPS * math.Max(1, math.Abs(minG))
		var prunedID []int64
		for i := range cur.Nodes {
			if cur.Nodes[i].IsLeaf() {
				continue
			}
			if g[i] <= minG+tol {
				prunedID = append(prunedID, cur.Nodes[i].ID)
				collapseNode(cur, i)
			}
		}

		newDev, _ := subtreeStats(cur)
		steps = append(steps, PruneStep{
			Alpha: minG, Tree: cloneTree(cur), Leaves: countLeaves(cur),
			PrunedID: prunedID, TotalDev: newDev[0], TotalNDev: holdoutTotal(cur, ndev),
		})
		if cur.Nodes[0].IsLeaf() {
			return steps
		}
	}
}

// holdoutTotal sums a per-node held-out deviance array over cur's current
// leaves; a nil ndev (no companion response supplied) contributes zero.
func holdoutTotal(cur *Tree, ndev []float64) float64 {
	if ndev == nil {
		return 0
	}
	total := 0.0
	var rec func(idx int)
	rec = func(idx int) {
		n := &cur.Nodes[idx]
		if n.IsLeaf() {
			if idx < len(ndev) {
				total += ndev[idx]
			}
			return
		}
		rec(n.Left)
		rec(n.Right)
	}
	rec(0)
	return total
}

// collapseNode turns an internal node into a leaf in place. Its former
// children remain in the node table but are no longer reachable from the
// root, so every traversal that follows Left/Right only through non-leaf
// nodes simply never visits them again.
func collapseNode(t *Tree, idx int) {
	n := &t.Nodes[idx]
	n.Var = 0
	n.CutLeft = ""
	n.CutRight = ""
	n.Left = -1
	n.Right = -1
}

func countLeaves(t *Tree) int {
	count := 0
	var rec func(idx int)
	rec = func(idx int) {
		n := &t.Nodes[idx]
		if n.IsLeaf() {
			count++
			return
		}
		rec(n.Left)
		rec(n.Right)
	}
	rec(0)
	return count
}

// cloneTree deep-copies a Tree's node table so pruning can mutate a
// working copy without disturbing the caller's tree or a previously
// recorded step. Where is not meaningful for a collapsed subtree (it would
// need to be re-derived against the new, shallower shape) so it is left
// unset on anything but the original, fully-grown tree.
func cloneTree(t *Tree) *Tree {
	nodes := make([]Node, len(t.Nodes))
	copy(nodes, t.Nodes)
	for i := range nodes {
		if nodes[i].YProb != nil {
			p := make([]float64, len(nodes[i].YProb))
			copy(p, nodes[i].YProb)
			nodes[i].YProb = p
		}
	}
	out := &Tree{Nodes: nodes, Classes: t.Classes, Levels: t.Levels}
	if t.Where != nil {
		out.Where = append([]int(nil), t.Where...)
	}
	return out
}

package cart

import (
	"encoding/gob"
	"io"
)

// Node is one record of a grown tree's flat, depth-first-ordered table.
type Node struct {
	ID       int64 // 1-based heap index: root=1, children of k are 2k, 2k+1
	Var      int   // 1-based split variable, 0 if leaf
	CutLeft  string
	CutRight string
	N        float64   // sum of weights routed to this node
	Dev      float64   // node deviance
	YVal     float64   // predicted value: majority class id or weighted mean
	YProb    []float64 // class probabilities, len Classes; nil in regression mode
	Left     int       // table index of left child, -1 if leaf
	Right    int       // table index of right child, -1 if leaf
}

// IsLeaf reports whether the node has no split variable.
func (n *Node) IsLeaf() bool { return n.Var == 0 }

// Tree is a finalized, depth-first-ordered node table plus the training
// cases' leaf assignments.
type Tree struct {
	Nodes   []Node
	Where   []int // per observation: >=0 table index of its leaf; <0 => -id of the ancestor it stalled at
	Classes int
	Levels  []int // per predictor column: 0 = continuous, else number of categorical levels; carried so Predict/PredictProb are self-contained
}

// Save serializes the Tree using encoding/gob.
func (t *Tree) Save(w io.Writer) error {
	return gob.NewEncoder(w).Encode(t)
}

// Load deserializes a Tree using encoding/gob.
func (t *Tree) Load(r io.Reader) error {
	return gob.NewDecoder(r).Decode(t)
}

// nodeByID returns the table index of the node with the given heap id, or
// -1 if not present.
func (t *Tree) nodeByID(id int64) int {
	for i := range t.Nodes {
		if t.Nodes[i].ID == id {
			return i
		}
	}
	return -1
}

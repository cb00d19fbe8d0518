package cart

import (
	"bytes"
	"testing"
)

func TestTreeSaveLoadRoundTrip(t *testing.T) {
	tree := threeLeafTree()
	tree.Where = []int{1, 3, 4}

	var buf bytes.Buffer
	if err := tree.Save(&buf); err != nil {
		t.Fatal(err)
	}

	var got Tree
	if err := got.Load(&buf); err != nil {
		t.Fatal(err)
	}
	if len(got.Nodes) != len(tree.Nodes) {
		t.Fatal("expected node count to round-trip, got:", len(got.Nodes))
	}
	for i := range tree.Nodes {
		if got.Nodes[i].YVal != tree.Nodes[i].YVal {
			t.Error("node", i, "expected YVal", tree.Nodes[i].YVal, "got:", got.Nodes[i].YVal)
		}
	}
	if len(got.Where) != len(tree.Where) {
		t.Error("expected Where to round-trip, got:", got.Where)
	}
}

func TestNodeByID(t *testing.T) {
	tree := threeLeafTree()
	if idx := tree.nodeByID(3); idx != 2 {
		t.Error("expected node with id 3 to be at table index 2, got:", idx)
	}
	if idx := tree.nodeByID(999); idx != -1 {
		t.Error("expected -1 for an unknown id, got:", idx)
	}
}

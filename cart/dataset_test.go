package cart

import "testing"

func TestNewDatasetRejectsLevelLimit(t *testing.T) {
	_, err := NewDataset(nil, 0, 1, nil, nil, []int{33}, nil, 2)
	if err == nil {
		t.Error("expected an error for a 33-level factor")
	}
}

func TestNewDatasetAllowsContinuousAndValidFactor(t *testing.T) {
	ds, err := NewDataset([]float64{1, 2, 3, 4}, 2, 2, []float64{1, 2}, []float64{1, 1}, []int{0, 3}, nil, 2)
	if err != nil {
		t.Fatal(err)
	}
	if ds.at(0, 1) != 3 {
		t.Error("expected column-major indexing X[row+N*col], got:", ds.at(0, 1))
	}
	if len(ds.Ordered) != 2 {
		t.Error("expected Ordered to default to len(P), got:", len(ds.Ordered))
	}
}

// Package cart implements a recursive-partitioning classification and
// regression tree engine: growth, weakest-link cost-complexity pruning, and
// prediction over a numerically encoded tabular dataset.
//
// The engine follows B. D. Ripley's tree package (Louppe's thesis inspired
// the sibling ensemble packages in this family, but this core grows a single
// tree; bagging/forests are left to a collaborator). Categorical predictor
// encoding, formula parsing, and result printing are likewise a
// collaborator's responsibility: Dataset only accepts already-encoded
// 1-based integer level codes.
package cart

import "github.com/pkg/errors"

// Dataset is a fixed, read-only tabular dataset: N rows, P predictor
// columns, stored column-major (X[j + N*v] is row j, column v) to match the
// wire layout a native caller would pass across an FFI boundary.
type Dataset struct {
	X      []float64 // column-major, len N*P
	N      int
	P      int
	Y      []float64 // 1-based class code (classification) or real value (regression)
	W      []float64 // per-row weight, len N
	Levels []int     // len P; 0 = continuous, else number of categorical levels (2..32)
	Ordered []bool    // len P; true for categorical predictors with an order
	Classes int       // C; 0 means regression
}

const maxLevels = 32

// NewDataset validates and constructs a Dataset. Levels must be 0
// (continuous) or within [2, maxLevels] (categorical) for every column.
func NewDataset(x []float64, n, p int, y, w []float64, levels []int, ordered []bool, classes int) (*Dataset, error) {
	for _, l := range levels {
		if l != 0 && (l < 2 || l > maxLevels) {
			return nil, errors.Wrapf(ErrLevelLimit, "got %d levels", l)
		}
	}
	if ordered == nil {
		ordered = make([]bool, p)
	}
	return &Dataset{
		X: x, N: n, P: p, Y: y, W: w, Levels: levels, Ordered: ordered, Classes: classes,
	}, nil
}

// at returns X[row, col].
func (d *Dataset) at(row, col int) float64 {
	return d.X[row+d.N*col]
}

func isMissing(x float64) bool {
	return x != x // NaN
}

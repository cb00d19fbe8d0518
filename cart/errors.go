package cart

import "github.com/pkg/errors"

// Sentinel error kinds, per the error model: the engine fails fast and
// surfaces the condition to the caller rather than recovering internally.
var (
	// ErrCapacityExceeded is returned when growth would need more node
	// records than the table's capacity (NMax) allows.
	ErrCapacityExceeded = errors.New("tree is too big")
	// ErrDepthExceeded is returned when a node's heap id would reach 2^30.
	ErrDepthExceeded = errors.New("maximum depth reached")
	// ErrGiniWithMissing is returned when the Gini criterion is requested
	// for a candidate predictor that has missing values at a node.
	ErrGiniWithMissing = errors.New("cannot use Gini with missing values")
	// ErrLevelLimit is returned when a categorical predictor declares more
	// than 32 levels.
	ErrLevelLimit = errors.New("factor predictors must have at most 32 levels")
	// ErrCorruptTree is returned by the predictor when it encounters a
	// missing child id or an index beyond the node table.
	ErrCorruptTree = errors.New("corrupt tree")
)

package cart

// Criterion selects the impurity measure used to evaluate candidate splits.
type Criterion int

const (
	// DevianceCriterion uses -2*log-likelihood (classification) or sum of
	// squared error (regression).
	DevianceCriterion Criterion = iota
	// GiniCriterion uses Gini impurity; it is incompatible with missing
	// predictor values at a candidate split.
	GiniCriterion
)

// Config holds the tuning parameters for Grow, set via the functional
// options below. The zero value is not valid; use NewConfig.
type Config struct {
	MinSize   float64 // node weight below which a node is never split
	MinCut    float64 // minimum weight required in either child of a split
	MinDev    float64 // minimum relative deviance improvement, scaled by root deviance
	Criterion Criterion
	Ordered   []bool // per-variable: treat categorical predictor as ordered
	NMax      int    // maximum number of node records
}

type configer interface {
	setMinSize(float64)
	setMinCut(float64)
	setMinDev(float64)
	setCriterion(Criterion)
	setOrdered([]bool)
	setNMax(int)
}

func (c *Config) setMinSize(n float64)     { c.MinSize = n }
func (c *Config) setMinCut(n float64)      { c.MinCut = n }
func (c *Config) setMinDev(n float64)      { c.MinDev = n }
func (c *Config) setCriterion(v Criterion) { c.Criterion = v }
func (c *Config) setOrdered(v []bool)      { c.Ordered = v }
func (c *Config) setNMax(n int)            { c.NMax = n }

// Option configures a Config; pass one or more to NewConfig.
type Option func(configer)

// MinSize sets the minimum node weight for a node to be considered for
// splitting.
func MinSize(n float64) Option {
	return func(c configer) { c.setMinSize(n) }
}

// MinCut sets the minimum weight required in either child of an accepted
// split.
func MinCut(n float64) Option {
	return func(c configer) { c.setMinCut(n) }
}

// MinDev sets the minimum relative deviance improvement (scaled by root
// deviance) required to accept a split.
func MinDev(n float64) Option {
	return func(c configer) { c.setMinDev(n) }
}

// UseCriterion sets the impurity criterion used to evaluate splits.
func UseCriterion(v Criterion) Option {
	return func(c configer) { c.setCriterion(v) }
}

// Ordered declares, per predictor column, whether a categorical predictor
// should be treated as ordered (only order-preserving bipartitions are
// considered).
func Ordered(v []bool) Option {
	return func(c configer) { c.setOrdered(v) }
}

// NMax sets the maximum number of node records the grown tree may occupy.
func NMax(n int) Option {
	return func(c configer) { c.setNMax(n) }
}

// NewConfig returns a Config equivalent to the tree package's historical
// defaults (mincut=5, minsize=10, mindev=0.01) when no options are passed.
func NewConfig(options ...Option) Config {
	c := Config{
		MinSize:   10,
		MinCut:    5,
		MinDev:    0.01,
		Criterion: DevianceCriterion,
		NMax:      200,
	}
	for _, opt := range options {
		opt(&c)
	}
	return c
}

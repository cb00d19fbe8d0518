package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFillinClassificationTieBreak covers scenario B: when two classes
// tie exactly on weighted proportion, the node's predicted class should
// match the parent's, not whichever class happens to be scanned first.
func TestFillinClassificationTieBreak(t *testing.T) {
	ds := &Dataset{
		N: 4, P: 1, Classes: 2,
		Y: []float64{1, 1, 2, 2},
		W: []float64{1, 1, 1, 1},
	}
	members := []int{0, 1, 2, 3}

	n, yprob, yval, dev := fillinClassification(ds, members, 1) // parent predicted class 2 (0-based 1)
	assert.Equal(t, 4.0, n)
	assert.InDelta(t, 0.5, yprob[0], 1e-9)
	assert.InDelta(t, 0.5, yprob[1], 1e-9)
	assert.Equal(t, 2.0, yval, "tie should resolve toward the parent's class")
	assert.Greater(t, dev, 0.0)

	_, _, yval2, _ := fillinClassification(ds, members, 0) // parent predicted class 1
	assert.Equal(t, 1.0, yval2)
}

func TestFillinClassificationUnanimous(t *testing.T) {
	ds := &Dataset{
		N: 3, P: 1, Classes: 2,
		Y: []float64{1, 1, 1},
		W: []float64{1, 1, 1},
	}
	n, yprob, yval, dev := fillinClassification(ds, []int{0, 1, 2}, -1)
	assert.Equal(t, 3.0, n)
	assert.InDelta(t, 1.0, yprob[0], 1e-9)
	assert.InDelta(t, 0.0, yprob[1], 1e-9)
	assert.Equal(t, 1.0, yval)
	assert.InDelta(t, 0.0, dev, 1e-9)
}

func TestFillinRegressionMeanAndDeviance(t *testing.T) {
	ds := &Dataset{
		N: 4, P: 1,
		Y: []float64{1, 2, 3, 4},
		W: []float64{1, 1, 1, 1},
	}
	n, yval, dev := fillinRegression(ds, []int{0, 1, 2, 3})
	assert.Equal(t, 4.0, n)
	assert.InDelta(t, 2.5, yval, 1e-9)
	assert.InDelta(t, 5.0, dev, 1e-9) // sum((y-2.5)^2) = 2.25+0.25+0.25+2.25
}

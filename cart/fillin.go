package cart

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// fillinClassification computes n, class probabilities, predicted class and
// deviance for a node whose members are given by index into the dataset.
// Ties in the predicted class are broken toward parentClass (0-based class
// index, or -1 at the root / when the parent's class isn't known), so that
// splits which don't change the majority class keep a stable label.
func fillinClassification(ds *Dataset, members []int, parentClass int) (n float64, yprob []float64, yval float64, dev float64) {
	c := ds.Classes
	counts := make([]float64, c)
	ws := make([]float64, len(members))
	for i, j := range members {
		k := int(ds.Y[j]) - 1
		counts[k] += ds.W[j]
		ws[i] = ds.W[j]
	}
	n = floats.Sum(ws)

	yprob = make([]float64, c)
	if n > 0 {
		for k := range counts {
			yprob[k] = counts[k] / n
		}
	} else {
		for k := range yprob {
			yprob[k] = 1.0 / float64(c)
		}
	}

	best := 0
	bestP := -1.0
	for k := 0; k < c; k++ {
		if yprob[k] >= bestP {
			if yprob[k] == bestP {
				if k == parentClass {
					best = k
				}
			} else {
				best = k
				bestP = yprob[k]
			}
		}
	}
	yval = float64(best + 1)

	dev = 0
	for _, j := range members {
		k := int(ds.Y[j]) - 1
		dev -= 2 * ds.W[j] * math.Log(yprob[k])
	}
	return
}

// fillinRegression computes n, predicted value (weighted mean) and
// deviance (weighted sum of squared residuals) for a node.
func fillinRegression(ds *Dataset, members []int) (n, yval, dev float64) {
	ws := make([]float64, len(members))
	ys := make([]float64, len(members))
	for i, j := range members {
		ws[i] = ds.W[j]
		ys[i] = ds.Y[j]
	}
	n = floats.Sum(ws)
	// stat.Variance applies Bessel's correction (divides by sumWeights-1,
	// undefined at n=1), which is wrong for the raw weighted SSE the
	// deviance needs, so the mean comes from stat.Mean but the sum of
	// squares is accumulated directly.
	yval = stat.Mean(ys, ws)

	wd2 := make([]float64, len(members))
	for i, j := range members {
		d := ds.Y[j] - yval
		wd2[i] = ds.W[j] * d * d
	}
	dev = floats.Sum(wd2)
	return
}

func xlogx(x float64) float64 {
	if x > 0 {
		return x * math.Log(x)
	}
	return 0
}

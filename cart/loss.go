package cart

import "math"

// devLoss is the classification deviance of a set of class weight totals:
// 2*(n*log(n) - sum(c*log(c))), the -2*log-likelihood under a multinomial
// fit to the observed class proportions. Computed via the xlogx identity to
// avoid forming the proportions explicitly.
func devLoss(counts []float64, n float64) float64 {
	if n <= 0 {
		return 0
	}
	s := 0.0
	for _, c := range counts {
		s += xlogx(c)
	}
	return 2 * (n*math.Log(n) - s)
}

// giniLoss is twice the Gini impurity of a set of class weight totals,
// scaled by n: 2*n*(1 - sum(p_k^2)) = 2*(n - sum(c_k^2)/n), matching
// grow.c's "bval *= 2.0" so it sits on the same scale as devLoss and as
// giniDev's whole-node baseline.
func giniLoss(counts []float64, n float64) float64 {
	if n <= 0 {
		return 0
	}
	s := 0.0
	for _, c := range counts {
		s += c * c
	}
	return 2 * (n - s/n)
}

// giniDev is a node's own Gini deviance from its already-normalized class
// probabilities: 2*n*(1 - sum(p_k^2)), per spec.md §3's dev[i] definition
// under the Gini criterion and grow.c's divide_node devtarget computation.
func giniDev(yprob []float64, n float64) float64 {
	s := 0.0
	for _, p := range yprob {
		s += p * p
	}
	return 2 * n * (1 - s)
}

// classLoss dispatches to devLoss or giniLoss per the configured criterion.
func classLoss(crit Criterion, counts []float64, n float64) float64 {
	if crit == GiniCriterion {
		return giniLoss(counts, n)
	}
	return devLoss(counts, n)
}

// regLoss is the weighted residual sum of squares of a set given its
// weighted sum and weighted sum-of-squares: sumSq - sum*sum/n.
func regLoss(sum, sumSq, n float64) float64 {
	if n <= 0 {
		return 0
	}
	return sumSq - sum*sum/n
}

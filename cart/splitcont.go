package cart

import "math"

// contSplit describes the best bipartition found for one continuous
// predictor at one node.
type contSplit struct {
	col       int
	threshold float64
	loss      float64
	ok        bool
}

// bestContinuousSplit scans every candidate threshold of one continuous
// predictor column, ported from grow.c's split_cont: present-value rows are
// shell-sorted once, then swept left to right accumulating running class
// counts (classification) or sum/sum-of-squares (regression) so each
// candidate threshold is evaluated in O(1) off the previous one. Rows
// missing this predictor never move into either child; they stay at the
// node and contribute a fixed additive term (sdev) to every candidate, so
// that thresholds are still compared fairly against predictors with a
// different missing-value pattern.
//
// mincut bounds the split as an INDEX bound on the sorted present rows
// (lo = MinCut-1, hi = ns-MinCut-1), not a weight threshold; grow.c applies
// the two differently between split_cont and split_disc and this keeps
// that distinction rather than unifying it.
func bestContinuousSplit(ds *Dataset, members []int, col int, cfg *Config, nodeYprob []float64, nodeYval float64, classification bool) (contSplit, error) {
	var present, missing []int
	for _, j := range members {
		if isMissing(ds.at(j, col)) {
			missing = append(missing, j)
		} else {
			present = append(present, j)
		}
	}
	ns := len(present)
	if ns < 2 {
		return contSplit{col: col}, nil
	}
	if cfg.Criterion == GiniCriterion && len(missing) > 0 {
		return contSplit{}, ErrGiniWithMissing
	}

	x := make([]float64, ns)
	for i, j := range present {
		x[i] = ds.at(j, col)
	}

	sdev := 0.0
	for _, j := range missing {
		if classification {
			k := int(ds.Y[j]) - 1
			sdev -= 2 * ds.W[j] * math.Log(nodeYprob[k])
		} else {
			d := ds.Y[j] - nodeYval
			sdev += ds.W[j] * d * d
		}
	}

	lo := int(cfg.MinCut) - 1
	hi := ns - int(cfg.MinCut) - 1
	if lo < 0 {
		lo = 0
	}
	if hi > ns-2 {
		hi = ns - 2
	}

	best := contSplit{col: col, loss: math.Inf(1)}

	if classification {
		cls := make([]int, ns)
		w := make([]float64, ns)
		for i, j := range present {
			cls[i] = int(ds.Y[j]) - 1
			w[i] = ds.W[j]
		}
		shellSortInt(x, cls, w)

		c := ds.Classes
		total := make([]float64, c)
		for i := range cls {
			total[cls[i]] += w[i]
		}
		left := make([]float64, c)
		right := make([]float64, c)
		leftN, totalN := 0.0, 0.0
		for _, v := range total {
			totalN += v
		}

		for i := 0; i < ns; i++ {
			left[cls[i]] += w[i]
			leftN += w[i]
			if i < lo || i > hi {
				continue
			}
			if x[i+1] == x[i] {
				continue
			}
			rightN := totalN - leftN
			for k := 0; k < c; k++ {
				right[k] = total[k] - left[k]
			}
			loss := classLoss(cfg.Criterion, left, leftN) + classLoss(cfg.Criterion, right, rightN) + sdev
			if loss < best.loss {
				best.loss = loss
				best.threshold = (x[i] + x[i+1]) / 2
				best.ok = true
			}
		}
		return best, nil
	}

	y := make([]float64, ns)
	w := make([]float64, ns)
	for i, j := range present {
		y[i] = ds.Y[j]
		w[i] = ds.W[j]
	}
	shellSortFloat(x, y, w)

	totalSum, totalSumSq, totalN := 0.0, 0.0, 0.0
	for i := 0; i < ns; i++ {
		totalSum += w[i] * y[i]
		totalSumSq += w[i] * y[i] * y[i]
		totalN += w[i]
	}
	leftSum, leftSumSq, leftN := 0.0, 0.0, 0.0
	for i := 0; i < ns; i++ {
		leftSum += w[i] * y[i]
		leftSumSq += w[i] * y[i] * y[i]
		leftN += w[i]
		if i < lo || i > hi {
			continue
		}
		if x[i+1] == x[i] {
			continue
		}
		rightN := totalN - leftN
		rightSum := totalSum - leftSum
		rightSumSq := totalSumSq - leftSumSq
		loss := regLoss(leftSum, leftSumSq, leftN) + regLoss(rightSum, rightSumSq, rightN) + sdev
		if loss < best.loss {
			best.loss = loss
			best.threshold = (x[i] + x[i+1]) / 2
			best.ok = true
		}
	}
	return best, nil
}

package cart

import (
	"math"
	"sort"
)

// discSplit describes the best bipartition found for one categorical
// predictor at one node: the 0-based levels sent left, everything else
// goes right.
type discSplit struct {
	col        int
	leftLevels []int
	loss       float64
	ok         bool
}

// bestDiscreteSplit finds the best bipartition of a categorical predictor's
// levels, ported from grow.c's split_disc. Three regimes, matching the
// source:
//
//   - an ordered factor (Ordered[col] set) only considers the L-1 prefix
//     splits that respect the levels' given order - never permutes them.
//   - regression and 2-class classification use the Fisher/Breiman
//     shortcut: sort levels by their mean response (regression) or class-0
//     proportion (binary classification), then scan the L-1 ordered prefix
//     splits of THAT order. This is provably optimal for those two cases,
//     so no exhaustive search is needed.
//   - unordered categorical predictors in multiclass classification fall
//     back to exhaustive search over all 2^(L-1)-1 bipartitions (one level
//     is fixed on the right to avoid considering the same bipartition
//     twice).
func bestDiscreteSplit(ds *Dataset, members []int, col int, cfg *Config, nodeYprob []float64, nodeYval float64, classification bool) (discSplit, error) {
	nLevels := ds.Levels[col]
	var present, missing []int
	for _, j := range members {
		if isMissing(ds.at(j, col)) {
			missing = append(missing, j)
		} else {
			present = append(present, j)
		}
	}
	if cfg.Criterion == GiniCriterion && len(missing) > 0 {
		return discSplit{}, ErrGiniWithMissing
	}

	c := ds.Classes
	levelW := make([]float64, nLevels)
	var levelCounts [][]float64
	var levelSum, levelSumSq []float64
	if classification {
		levelCounts = make([][]float64, nLevels)
		for l := range levelCounts {
			levelCounts[l] = make([]float64, c)
		}
	} else {
		levelSum = make([]float64, nLevels)
		levelSumSq = make([]float64, nLevels)
	}
	for _, j := range present {
		l := int(ds.at(j, col)) - 1
		levelW[l] += ds.W[j]
		if classification {
			k := int(ds.Y[j]) - 1
			levelCounts[l][k] += ds.W[j]
		} else {
			levelSum[l] += ds.W[j] * ds.Y[j]
			levelSumSq[l] += ds.W[j] * ds.Y[j] * ds.Y[j]
		}
	}

	var presentLevels []int
	for l := 0; l < nLevels; l++ {
		if levelW[l] > 0 {
			presentLevels = append(presentLevels, l)
		}
	}
	L := len(presentLevels)
	best := discSplit{col: col, loss: math.Inf(1)}
	if L < 2 {
		return best, nil
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

	ordered := col < len(cfg.Ordered) && cfg.Ordered[col]
	shortcut := !classification || c == 2

	if ordered || shortcut {
		order := presentLevels
		if !ordered {
			keys := make([]float64, L)
			for i, l := range presentLevels {
				if classification {
					keys[i] = levelCounts[l][0] / levelW[l]
				} else {
					keys[i] = levelSum[l] / levelW[l]
				}
			}
			idx := make([]int, L)
			for i := range idx {
				idx[i] = i
			}
			sort.Slice(idx, func(a, b int) bool { return keys[idx[a]] < keys[idx[b]] })
			order = make([]int, L)
			for i, ii := range idx {
				order[i] = presentLevels[ii]
			}
		}

		if classification {
			total := make([]float64, c)
			totalN := 0.0
			for _, l := range presentLevels {
				for k := 0; k < c; k++ {
					total[k] += levelCounts[l][k]
				}
				totalN += levelW[l]
			}
			left := make([]float64, c)
			leftN := 0.0
			for i := 0; i < L-1; i++ {
				l := order[i]
				for k := 0; k < c; k++ {
					left[k] += levelCounts[l][k]
				}
				leftN += levelW[l]
				rightN := totalN - leftN
				if leftN < cfg.MinCut || rightN < cfg.MinCut {
					continue
				}
				right := make([]float64, c)
				for k := 0; k < c; k++ {
					right[k] = total[k] - left[k]
				}
				loss := classLoss(cfg.Criterion, left, leftN) + classLoss(cfg.Criterion, right, rightN) + sdev
				if loss < best.loss {
					best.loss = loss
					best.ok = true
					best.leftLevels = append([]int(nil), order[:i+1]...)
				}
			}
			return best, nil
		}

		totalSum, totalSumSq, totalN := 0.0, 0.0, 0.0
		for _, l := range presentLevels {
			totalSum += levelSum[l]
			totalSumSq += levelSumSq[l]
			totalN += levelW[l]
		}
		leftSum, leftSumSq, leftN := 0.0, 0.0, 0.0
		for i := 0; i < L-1; i++ {
			l := order[i]
			leftSum += levelSum[l]
			leftSumSq += levelSumSq[l]
			leftN += levelW[l]
			rightN := totalN - leftN
			if leftN < cfg.MinCut || rightN < cfg.MinCut {
				continue
			}
			rightSum := totalSum - leftSum
			rightSumSq := totalSumSq - leftSumSq
			loss := regLoss(leftSum, leftSumSq, leftN) + regLoss(rightSum, rightSumSq, rightN) + sdev
			if loss < best.loss {
				best.loss = loss
				best.ok = true
				best.leftLevels = append([]int(nil), order[:i+1]...)
			}
		}
		return best, nil
	}

	// Exhaustive: fix presentLevels[0] on the right, enumerate every
	// non-empty subset of the rest as the left side.
	fixed := presentLevels[0]
	rest := presentLevels[1:]
	m := len(rest)
	totalCounts := make([]float64, c)
	totalN := 0.0
	for _, l := range presentLevels {
		for k := 0; k < c; k++ {
			totalCounts[k] += levelCounts[l][k]
		}
		totalN += levelW[l]
	}
	_ = fixed
	for mask := 1; mask < (1 << uint(m)); mask++ {
		left := make([]float64, c)
		leftN := 0.0
		var leftLevels []int
		for i := 0; i < m; i++ {
			if mask&(1<<uint(i)) != 0 {
				l := rest[i]
				leftLevels = append(leftLevels, l)
				leftN += levelW[l]
				for k := 0; k < c; k++ {
					left[k] += levelCounts[l][k]
				}
			}
		}
		rightN := totalN - leftN
		if leftN < cfg.MinCut || rightN < cfg.MinCut {
			continue
		}
		right := make([]float64, c)
		for k := 0; k < c; k++ {
			right[k] = totalCounts[k] - left[k]
		}
		loss := classLoss(cfg.Criterion, left, leftN) + classLoss(cfg.Criterion, right, rightN) + sdev
		if loss < best.loss {
			best.loss = loss
			best.ok = true
			best.leftLevels = leftLevels
		}
	}
	return best, nil
}

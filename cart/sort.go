package cart

// Shell sort primitives: in-place, allocation-free, ascending sort of a key
// array carrying two parallel payload arrays (a secondary key and a
// weight). Stability is not required. The gap sequence is the classic
// 3h+1 sequence truncated by N/9, the same one grow.c's shellsort/shelldsort
// use; hand-rolled rather than sort.Sort for the same reason the teacher's
// tree/sort.go gives for specializing its own sort: this is the hot path of
// every candidate split scan, and a generic interface-based sort would
// allocate and add indirection on every comparison.

// shellSortInt sorts a ascending, carrying int payload b and weight payload
// w in lock-step. Used to sort (x, class id, weight) triples.
func shellSortInt(a []float64, b []int, w []float64) {
	n := len(a)
	h := 1
	for h <= n/9 {
		h = 3*h + 1
	}
	for ; h > 0; h /= 3 {
		for i := h; i < n; i++ {
			v, bt, wt := a[i], b[i], w[i]
			j := i
			for j >= h && a[j-h] > v {
				a[j] = a[j-h]
				b[j] = b[j-h]
				w[j] = w[j-h]
				j -= h
			}
			a[j] = v
			b[j] = bt
			w[j] = wt
		}
	}
}

// shellSortFloat sorts a ascending, carrying float64 payload b and weight
// payload w in lock-step. Used to sort (x, response, weight) triples for
// the regression splitter.
func shellSortFloat(a []float64, b []float64, w []float64) {
	n := len(a)
	h := 1
	for h <= n/9 {
		h = 3*h + 1
	}
	for ; h > 0; h /= 3 {
		for i := h; i < n; i++ {
			v, bt, wt := a[i], b[i], w[i]
			j := i
			for j >= h && a[j-h] > v {
				a[j] = a[j-h]
				b[j] = b[j-h]
				w[j] = w[j-h]
				j -= h
			}
			a[j] = v
			b[j] = bt
			w[j] = wt
		}
	}
}

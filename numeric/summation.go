package numeric

// PairwiseSum sums xs in a fixed, input-order-dependent but thread-count
// independent tree order: it recursively halves the slice rather than
// accumulating left to right, which keeps rounding error low without the
// per-term overhead of Kahan summation. §5 requires this kind of fixed-order
// reduction so that scaling and fom produce identical results whether run
// with one worker or many.
func PairwiseSum(xs []float64) float64 {
	n := len(xs)
	switch {
	case n == 0:
		return 0
	case n == 1:
		return xs[0]
	case n <= 8:
		var sum float64
		for _, x := range xs {
			sum += x
		}
		return sum
	default:
		mid := n / 2
		return PairwiseSum(xs[:mid]) + PairwiseSum(xs[mid:])
	}
}

// KahanSum sums xs left to right with a running compensation term, trading
// the tree-shaped parallelism friendliness of PairwiseSum for a tighter
// error bound on long, ill-conditioned sequences (e.g. fom's per-shell
// accumulation over many reflections at similar magnitude).
func KahanSum(xs []float64) float64 {
	var sum, c float64
	for _, x := range xs {
		t := sum + x
		if absF(sum) >= absF(x) {
			c += (sum - t) + x
		} else {
			c += (x - t) + sum
		}
		sum = t
	}
	return sum + c
}

func absF(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}

package renderer

// LIS returns the indices of one longest strictly increasing subsequence
// of seq, in ascending order. Negative entries never take part; the keyed
// patcher uses -1 to mark nodes with no predecessor in the old list.
//
//	LIS([]int{3, 0, 1, 2}) == []int{1, 2, 3}
//
// It runs in O(n log n).
func LIS(seq []int) []int {
	prev := make([]int, len(seq))
	// tails[k] is the index of the smallest tail of an increasing run of
	// length k+1.
	var tails []int

	for i, v := range seq {
		if v < 0 {
			continue
		}
		n := len(tails)
		if n == 0 || seq[tails[n-1]] < v {
			if n > 0 {
				prev[i] = tails[n-1]
			}
			tails = append(tails, i)
			continue
		}

		lo, hi := 0, n-1
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if v < seq[tails[lo]] {
			if lo > 0 {
				prev[i] = tails[lo-1]
			}
			tails[lo] = i
		}
	}

	n := len(tails)
	if n == 0 {
		return nil
	}
	out := make([]int, n)
	last := tails[n-1]
	for k := n - 1; k >= 0; k-- {
		out[k] = last
		last = prev[last]
	}
	return out
}

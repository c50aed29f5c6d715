package deal

import (
	rand "math/rand/v2"
)

// binomial returns C(n, k) for the small arguments used when dealing.
func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	if k > n-k {
		k = n - k
	}
	out := 1
	for i := 1; i <= k; i++ {
		out = out * (n - k + i) / i
	}
	return out
}

// unrank writes the k-combination of {0..n-1} with lexicographic index rank
// into out, ascending.
func unrank(rank, n, k int, out []int) {
	x := 0
	for i := 0; i < k; i++ {
		for {
			c := binomial(n-x-1, k-i-1)
			if rank < c {
				break
			}
			rank -= c
			x++
		}
		out[i] = x
		x++
	}
}

// sampleRanks draws min(limit, total) distinct values from [0, total)
// uniformly without replacement, in random order. Above the cap it uses
// Floyd's algorithm so the full space is never materialised.
func sampleRanks(total, limit int, rng *rand.Rand) []int {
	if total <= 0 || limit <= 0 {
		return nil
	}
	var out []int
	if total <= limit {
		out = make([]int, total)
		for i := range out {
			out[i] = i
		}
	} else {
		out = make([]int, 0, limit)
		seen := make(map[int]struct{}, limit)
		for j := total - limit; j < total; j++ {
			t := rng.IntN(j + 1)
			if _, dup := seen[t]; dup {
				t = j
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

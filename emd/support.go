package emd

// Support returns the ascending indices i with v[i] != 0.
// Complexity: O(n).
func Support(v []float64) []int {
	out := make([]int, 0, len(v))
	for i, x := range v {
		if x != 0 {
			out = append(out, i)
		}
	}

	return out
}

// Union merges two ascending index sets into a new ascending set without
// duplicates.
// Complexity: O(len(a) + len(b)).
func Union(a, b []int) []int {
	out := make([]int, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)

	return out
}

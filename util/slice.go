package util

// DedupFunc removes later duplicates of each element, keeping order
func DedupFunc[T any](arr []T, eq func(a, b T) bool) []T {
	out := arr[:0:0]
	for _, v := range arr {
		dup := false
		for _, w := range out {
			if eq(v, w) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, v)
		}
	}
	return out
}

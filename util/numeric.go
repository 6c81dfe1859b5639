package util

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Clamp restricts x to the range [lo, hi]
func Clamp[T Numeric](x, lo, hi T) T {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Unbounded reports whether a maximum count means "no limit"
func Unbounded[T Numeric](x T) bool {
	return x < 0
}

package richtext

// ToEnd as a length argument selects all characters after the start position.
const ToEnd = -1

// End as a position argument selects the default position of an operation,
// which is the end of the buffer for insertions and the last character for
// removals.
const End = -1

// span is a half-open range [l, r) of buffer indices.
type span struct {
	l int
	r int
}

// toSpan creates a span from a start position and a length, restricted to a
// buffer of n characters. Invalid values are clamped silently.
func toSpan(start, length, n int) span {
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if length < 0 || length > n-start {
		length = n - start
	}
	return span{start, start + length}
}

func (spn span) void() bool {
	return spn.r <= spn.l
}

func (spn span) len() int {
	if spn.void() {
		return 0
	}
	return spn.r - spn.l
}

package buf

import "math"

// Slice returns the sub-slice [off:off+n] if it fits within len(b),
// guarding against integer overflow of off+n.
func Slice(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	if n > math.MaxInt-off || off+n > len(b) {
		return nil, false
	}
	return b[off : off+n], true
}

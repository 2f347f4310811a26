package cbridge

// copyString writes s into dst as a NUL terminated string, truncating to fit,
// and returns len(s) so callers can detect truncation.
func copyString(dst []byte, s string) int {
	if len(dst) == 0 {
		return len(s)
	}
	n := copy(dst[:len(dst)-1], s)
	dst[n] = 0
	return len(s)
}

// nonNegative clamps a host supplied count before it sizes an allocation.
func nonNegative(n int32) int {
	if n < 0 {
		return 0
	}
	return int(n)
}

func boolInt(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

func tableCell(table [][]string, row, col int) (string, bool) {
	if row < 0 || row >= len(table) || col < 0 || col >= len(table[row]) {
		return "", false
	}
	return table[row][col], true
}

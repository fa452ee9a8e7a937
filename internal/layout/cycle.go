package layout

// Cycle steps from current by direction through count zones with wraparound.
// The result is always in [0,count), for negative sums and for steps larger
// than count. Callers must treat count == 0 as "no layout"; Cycle returns 0
// in that case instead of dividing by zero.
func Cycle(current, direction, count int) int {
	if count <= 0 {
		return 0
	}
	return ((current+direction)%count + count) % count
}

// ClampIndex is the canonical zone-index clamp: any index outside
// [0,count) becomes 0.
func ClampIndex(index, count int) int {
	if index < 0 || index >= count {
		return 0
	}
	return index
}

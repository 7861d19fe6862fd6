package frames

// SampleIndices returns the 0-based frame positions to analyze. A target of
// zero or one at least as large as total selects every frame; otherwise
// target positions are spread uniformly as floor(i*total/target).
func SampleIndices(total, target int) []int {
	if total <= 0 {
		return nil
	}
	count := total
	if target > 0 && target < total {
		count = target
	}
	indices := make([]int, count)
	if count == total {
		for i := range indices {
			indices[i] = i
		}
		return indices
	}
	step := float64(total) / float64(count)
	for i := range indices {
		indices[i] = int(float64(i) * step)
	}
	return indices
}

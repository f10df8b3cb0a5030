package pe

import "math"

// CalculateEntropy calculates Shannon entropy for a given data block.
// Entropy value ranges from 0 (completely uniform) to 8 (completely random).
// High entropy (>7.0) often indicates encryption or compression.
func CalculateEntropy(data []byte) float64 {
	if len(data) == 0 {
		return 0.0
	}

	var freq [256]int
	for _, b := range data {
		freq[b]++
	}

	// H = -Σ(p(x) * log2(p(x)))
	var entropy float64
	dataLen := float64(len(data))

	for _, count := range freq {
		if count == 0 {
			continue
		}
		p := float64(count) / dataLen
		entropy -= p * math.Log2(p)
	}

	return entropy
}

// sectionData returns the raw bytes of a section, clipped to the buffer.
func sectionData(buf []byte, offset, size uint32) []byte {
	start := uint64(offset)
	end := start + uint64(size)
	if start >= uint64(len(buf)) {
		return nil
	}
	end = min(end, uint64(len(buf)))
	return buf[start:end:end]
}

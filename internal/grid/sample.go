package grid

import "math"

// Sample is a flat, row-major grid with a per-cell invalid flag.
// Invalid cells keep their source value; they are only flagged.
type Sample struct {
	Values  []float64
	Invalid []bool
}

// NewSample flags every value strictly below threshold as invalid.
func NewSample(values []float64, threshold float64) *Sample {
	invalid := make([]bool, len(values))
	for i, v := range values {
		invalid[i] = v < threshold
	}
	return &Sample{Values: values, Invalid: invalid}
}

// Len returns the number of cells.
func (s *Sample) Len() int {
	return len(s.Values)
}

// Valid reports whether cell i is unmasked.
func (s *Sample) Valid(i int) bool {
	return !s.Invalid[i]
}

// InvalidCount returns the number of masked cells.
func (s *Sample) InvalidCount() int {
	n := 0
	for _, inv := range s.Invalid {
		if inv {
			n++
		}
	}
	return n
}

// MaskIndices returns the flat indices of the masked cells in ascending order.
func (s *Sample) MaskIndices() []int {
	mask := []int{}
	for i, inv := range s.Invalid {
		if inv {
			mask = append(mask, i)
		}
	}
	return mask
}

// Filled returns a copy of the values with masked cells replaced by v.
func (s *Sample) Filled(v float64) []float64 {
	out := make([]float64, len(s.Values))
	for i, val := range s.Values {
		if s.Invalid[i] {
			out[i] = v
			continue
		}
		out[i] = val
	}
	return out
}

// Compressed returns only the valid values, in order.
func (s *Sample) Compressed() []float64 {
	out := make([]float64, 0, len(s.Values)-s.InvalidCount())
	for i, val := range s.Values {
		if !s.Invalid[i] {
			out = append(out, val)
		}
	}
	return out
}

// MinMax returns the range of the valid values. ok is false when every cell is masked.
func (s *Sample) MinMax() (min, max float64, ok bool) {
	min, max = math.Inf(1), math.Inf(-1)
	for i, val := range s.Values {
		if s.Invalid[i] {
			continue
		}
		ok = true
		min = math.Min(min, val)
		max = math.Max(max, val)
	}
	if !ok {
		return 0, 0, false
	}
	return min, max, true
}

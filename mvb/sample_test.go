package mvb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextPowerOfTwo(t *testing.T) {
	tests := []struct {
		input    int
		expected int
	}{
		{-4, 1},
		{0, 1},
		{1, 1},
		{2, 2},
		{3, 4},
		{17, 32},
		{1024, 1024},
		{1 << 40, 1 << 40},
		{1<<40 + 1, 1 << 41},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, nextPowerOfTwo(tt.input), "nextPowerOfTwo(%d)", tt.input)
	}
}

func TestSampleStep(t *testing.T) {
	tests := []struct {
		name     string
		count    int
		lg       uint
		expected int
	}{
		{"fits", 4, 2, 1},
		{"below minimum exponent", 4, 0, 1},
		{"minimum exponent applies", 5, 0, 2},
		{"exact multiple", 64, 4, 4},
		{"rounded up", 65, 4, 8},
		{"huge exponent", 1000, 200, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sampleStep(tt.count, tt.lg))
		})
	}
}

func TestSampleStepNests(t *testing.T) {
	for _, count := range []int{1, 7, 100, 216, 999, 12345} {
		for lg := uint(0); lg < 20; lg++ {
			coarse := sampleStep(count, lg)
			fine := sampleStep(count, lg+1)

			assert.LessOrEqual(t, fine, coarse)
			assert.Zero(t, coarse%fine, "count=%d lg=%d", count, lg)

			samples := (count + coarse - 1) / coarse
			assert.LessOrEqual(t, samples, 1<<max(lg, MinLgMaxSample))
		}
	}
}

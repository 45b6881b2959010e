package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadPoints(t *testing.T) {
	flat := []float32{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name     string
		count    int
		flat     []float32
		expected PointCloud
	}{
		{"all points", 2, flat, PointCloud{{1, 2, 3}, {4, 5, 6}}},
		{"fewer than available", 1, flat, PointCloud{{1, 2, 3}}},
		{"clamped to complete triples", 10, flat, PointCloud{{1, 2, 3}, {4, 5, 6}}},
		{"zero count", 0, flat, PointCloud{}},
		{"negative count", -1, flat, PointCloud{}},
		{"nil buffer", 3, nil, PointCloud{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, LoadPoints(tt.count, tt.flat))
		})
	}
}

func TestFlatten(t *testing.T) {
	points := PointCloud{{1, 2, 3}, {-4, 0.5, 6}}

	flat := points.Flatten()

	assert.Equal(t, []float32{1, 2, 3, -4, 0.5, 6}, flat)
	assert.Equal(t, points, LoadPoints(len(points), flat))
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, Point3{}, PointCloud(nil).Centroid())
	assert.Equal(t, Point3{1, 1, 1}, PointCloud{{0, 0, 0}, {2, 2, 2}}.Centroid())
}

func TestIsFinite(t *testing.T) {
	tests := []struct {
		name     string
		points   PointCloud
		expected bool
	}{
		{"empty", nil, true},
		{"finite", PointCloud{{1, 2, 3}, {-4, 5, 1e300}}, true},
		{"NaN", PointCloud{{1, 2, 3}, {math.NaN(), 0, 0}}, false},
		{"positive infinity", PointCloud{{0, math.Inf(1), 0}}, false},
		{"negative infinity", PointCloud{{0, 0, math.Inf(-1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.points.IsFinite())
		})
	}
}

package analytics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{name: "empty", values: nil, want: 0},
		{name: "single", values: []float64{7}, want: 7},
		{name: "odd count", values: []float64{5, 1, 3}, want: 3},
		{name: "even count averages middle pair", values: []float64{4, 1, 3, 2}, want: 2.5},
		{name: "symmetric around zero", values: []float64{20, -20}, want: 0},
		{name: "negatives", values: []float64{-5, -1, -3}, want: -3},
		{name: "duplicates", values: []float64{2, 2, 2, 9}, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Median(tt.values))
		})
	}
}

func TestMedian_DoesNotModifyInput(t *testing.T) {
	values := []float64{3, 1, 2}
	Median(values)
	assert.Equal(t, []float64{3, 1, 2}, values)
}

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 5.0, Mean([]float64{10, 0}))
	assert.Equal(t, -1.0, Mean([]float64{-3, 1}))
}

func TestMinMaxScale(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   []float64
	}{
		{name: "empty", values: nil, want: []float64{}},
		{name: "spread", values: []float64{0, 50, 200}, want: []float64{0, 25, 100}},
		{name: "all equal positive", values: []float64{4, 4}, want: []float64{100, 100}},
		{name: "all equal zero", values: []float64{0, 0, 0}, want: []float64{0, 0, 0}},
		{name: "single zero", values: []float64{0}, want: []float64{0}},
		{name: "single positive", values: []float64{12}, want: []float64{100}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MinMaxScale(tt.values)
			assert.Equal(t, tt.want, got)
			for _, v := range got {
				assert.False(t, math.IsNaN(v) || math.IsInf(v, 0))
			}
		})
	}
}

func TestMinMaxScale_SentinelMaximum(t *testing.T) {
	got := MinMaxScale([]float64{0, math.MaxFloat64, 100})

	assert.Equal(t, 0.0, got[0])
	assert.Equal(t, 100.0, got[1])
	assert.InDelta(t, 0, got[2], 1e-300)
	assert.False(t, math.IsInf(got[2], 0))
}

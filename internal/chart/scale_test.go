package chart

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinear_Map(t *testing.T) {
	tests := []struct {
		name  string
		scale Linear
		in    float64
		want  float64
	}{
		{"start", NewLinear(2000, 2010, RangeStart, RangeEnd), 2000, 50},
		{"middle", NewLinear(2000, 2010, RangeStart, RangeEnd), 2005, 250},
		{"end", NewLinear(2000, 2010, RangeStart, RangeEnd), 2010, 450},
		{"inverted max", NewLinear(46, 45, RangeStart, RangeEnd), 46, 50},
		{"inverted min", NewLinear(46, 45, RangeStart, RangeEnd), 45, 450},
		{"degenerate", NewLinear(5, 5, RangeStart, RangeEnd), 5, 250},
		{"outside domain", NewLinear(0, 10, RangeStart, RangeEnd), 20, 850},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.scale.Map(tt.in), 1e-9)
		})
	}
}

func TestLinear_MapNaN(t *testing.T) {
	s := NewLinear(0, 1, RangeStart, RangeEnd)
	assert.True(t, math.IsNaN(s.Map(math.NaN())))
}

func TestLinear_TicksYears(t *testing.T) {
	s := NewLinear(2000, 2010, RangeStart, RangeEnd)

	got := s.Ticks(DefaultTickCount)
	require.Len(t, got, 11)
	assert.Equal(t, 2000.0, got[0])
	assert.Equal(t, 2010.0, got[10])
	assert.Equal(t, 1.0, s.TickStep(DefaultTickCount))
}

func TestLinear_TicksFractional(t *testing.T) {
	s := NewLinear(45, 46, RangeStart, RangeEnd)

	got := s.Ticks(DefaultTickCount)
	require.Len(t, got, 11)
	assert.Equal(t, 45.0, got[0])
	assert.InDelta(t, 45.3, got[3], 1e-12)
	assert.Equal(t, 46.0, got[10])
	assert.InDelta(t, 0.1, s.TickStep(DefaultTickCount), 1e-12)
}

func TestLinear_TicksFollowDomainOrder(t *testing.T) {
	got := NewLinear(46, 45, RangeStart, RangeEnd).Ticks(DefaultTickCount)
	require.NotEmpty(t, got)
	assert.Equal(t, 46.0, got[0])
	assert.Equal(t, 45.0, got[len(got)-1])
}

func TestLinear_TicksDegenerate(t *testing.T) {
	assert.Equal(t, []float64{7}, NewLinear(7, 7, RangeStart, RangeEnd).Ticks(DefaultTickCount))
	assert.Nil(t, NewLinear(0, 1, RangeStart, RangeEnd).Ticks(0))
}

func TestLinear_TicksWideRange(t *testing.T) {
	got := NewLinear(0, 95, RangeStart, RangeEnd).Ticks(DefaultTickCount)
	assert.Equal(t, []float64{0, 10, 20, 30, 40, 50, 60, 70, 80, 90}, got)
}

func TestTickFormatter(t *testing.T) {
	tests := []struct {
		step float64
		in   float64
		want string
	}{
		{1, 2000, "2,000"},
		{10, 50, "50"},
		{0.1, 45.3, "45.3"},
		{0.5, 2, "2.0"},
		{0.25, 1.5, "1.50"},
		{0, 3, "3"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TickFormatter(tt.step)(tt.in), "step=%v in=%v", tt.step, tt.in)
	}
}

func TestCoord(t *testing.T) {
	assert.Equal(t, "50", coord(50))
	assert.Equal(t, "50.5", coord(50.5))
	assert.Equal(t, "33.333", coord(100.0/3))
	assert.Equal(t, "translate(0,450)", translate(0, 450))
}

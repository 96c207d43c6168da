package categorical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanIntersect(t *testing.T) {
	tests := []struct {
		id   int
		x    Span
		y    Span
		want Span
	}{
		{1, Span{2, 9}, Span{3, 5}, Span{3, 5}},
		{2, Span{3, 5}, Span{2, 9}, Span{3, 5}},
		{3, Span{2, 9}, Span{1, 7}, Span{2, 7}},
		{4, Span{1, 7}, Span{2, 9}, Span{2, 7}},
	}
	for _, tt := range tests {
		got, ok := tt.x.Intersect(tt.y)
		require.True(t, ok, "test %d: expected an intersection", tt.id)
		assert.Equal(t, tt.want, got, "test %d", tt.id)
	}
	x := Span{1, 4}
	y := Span{4, 9}
	_, ok := x.Intersect(y)
	assert.False(t, ok, "half-open spans touching at 4 must not intersect")
	_, ok = y.Intersect(x)
	assert.False(t, ok)
}

func TestSpanContains(t *testing.T) {
	x := Span{2, 5}
	assert.False(t, x.Contains(1))
	assert.True(t, x.Contains(2))
	assert.True(t, x.Contains(4))
	assert.False(t, x.Contains(5))
	assert.Equal(t, 3, x.Len())
}

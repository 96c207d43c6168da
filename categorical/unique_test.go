package categorical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniqueInOrder(t *testing.T) {
	tests := []struct {
		name        string
		elements    []Value
		wantUnique  []Value
		wantInverse []int
	}{
		{
			name:        "strings with repeats",
			elements:    []Value{String("b"), String("a"), String("b"), String("c"), String("a")},
			wantUnique:  []Value{String("b"), String("a"), String("c")},
			wantInverse: []int{0, 1, 0, 2, 1},
		},
		{
			name:        "all identical",
			elements:    []Value{Int(7), Int(7), Int(7)},
			wantUnique:  []Value{Int(7)},
			wantInverse: []int{0, 0, 0},
		},
		{
			name:        "arrays deduplicate by content",
			elements:    []Value{Array(Int(1), Int(2)), Array(Int(1), Int(2)), Array(Int(2), Int(1))},
			wantUnique:  []Value{Array(Int(1), Int(2)), Array(Int(2), Int(1))},
			wantInverse: []int{0, 0, 1},
		},
		{
			name:        "mixed kinds stay distinct",
			elements:    []Value{Int(1), Float(1), Int(1)},
			wantUnique:  []Value{Int(1), Float(1)},
			wantInverse: []int{0, 1, 0},
		},
		{
			name:        "empty input",
			elements:    nil,
			wantUnique:  nil,
			wantInverse: []int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unique, inverse := UniqueInOrder(tt.elements)
			assert.Equal(t, tt.wantUnique, unique)
			assert.Equal(t, tt.wantInverse, inverse)
			// The inverse must reconstruct the original sequence.
			for i, element := range tt.elements {
				require.True(t, unique[inverse[i]].Equal(element))
			}
		})
	}
}

package categorical

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendJSON(t *testing.T) {
	tests := []struct {
		name   string
		values []Value
		events []int
		want   string
	}{
		{
			name:   "strings",
			values: strValues("a", "b"),
			events: []int{0, 2, 5},
			want:   `[{"start":0,"end":2,"value":"a"},{"start":2,"end":5,"value":"b"}]`,
		},
		{
			name:   "mixed scalars",
			values: []Value{Int(42), Float(2.5), Bool(true), Null()},
			events: []int{0, 1, 2, 3, 4},
			want:   `[{"start":0,"end":1,"value":42},{"start":1,"end":2,"value":2.5},{"start":2,"end":3,"value":true},{"start":3,"end":4,"value":null}]`,
		},
		{
			name:   "array value",
			values: []Value{Array(Int(1), String("x"))},
			events: []int{0, 3},
			want:   `[{"start":0,"end":3,"value":[1,"x"]}]`,
		},
		{
			name:   "empty series",
			values: nil,
			events: []int{0},
			want:   `[]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := mustData(t, tt.values, tt.events)
			assert.Equal(t, tt.want, string(d.AppendJSON(nil)))
			// The output must be valid JSON.
			assert.True(t, json.Valid(d.AppendJSON(nil)))
		})
	}
}

func TestMarshalJSON(t *testing.T) {
	d := mustData(t, strValues("a"), []int{0, 2})
	got, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `[{"start":0,"end":2,"value":"a"}]`, string(got))
}

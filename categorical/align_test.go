package categorical

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddUnmatched(t *testing.T) {
	d := mustData(t, strValues("a", "b"), []int{0, 5, 10})
	d.AddUnmatched([]int{0, 3, 6, 10}, 1)
	// Boundary 3 is unmatched (distance 2 from event 5) and inserted as a
	// duplicate of the value active at dump 3; boundary 6 matches event 5
	// within tolerance and is left alone.
	assert.Equal(t, []int{0, 3, 5, 10}, d.Events())
	assert.Equal(t, []int{0, 0, 1}, d.Indices())
	got, err := d.Get(4)
	require.NoError(t, err)
	assert.Equal(t, String("a"), got)
}

func TestAddUnmatchedSkipsOutOfRange(t *testing.T) {
	d := mustData(t, strValues("a", "b"), []int{0, 5, 10})
	d.AddUnmatched([]int{3, 13, 20}, 1)
	assert.Equal(t, []int{0, 3, 5, 10}, d.Events())
}

func TestAlign(t *testing.T) {
	d := mustData(t, strValues("a", "b", "c"), []int{0, 2, 5, 7})
	d.Align([]int{0, 3, 7})
	// Events 2 and 5 both snap to boundary 3; only the last one survives.
	assert.Equal(t, []int{0, 3, 7}, d.Events())
	assert.Equal(t, strValues("a", "c"), d.UniqueValues())
	got, err := d.GetMany([]int{0, 3, 6})
	require.NoError(t, err)
	assert.Equal(t, strValues("a", "c", "c"), got)
}

func TestAlignEventSetIsSubsetOfBoundaries(t *testing.T) {
	d := mustData(t, strValues("a", "b", "c", "d"), []int{0, 2, 3, 8, 12})
	boundaries := []int{0, 4, 9, 12}
	d.Align(boundaries)
	allowed := make(map[int]bool, len(boundaries))
	for _, b := range boundaries {
		allowed[b] = true
	}
	for _, e := range d.Events() {
		assert.True(t, allowed[e], "event %d is not a boundary", e)
	}
	assert.LessOrEqual(t, d.Len(), len(boundaries)-1)
}

func TestAlignTieBreak(t *testing.T) {
	// Event 5 is equidistant between boundaries 3 and 7: the earlier
	// boundary wins.
	d := mustData(t, strValues("a", "b"), []int{0, 5, 7})
	d.Align([]int{0, 3, 7})
	assert.Equal(t, []int{0, 3, 7}, d.Events())
	got, err := d.Get(3)
	require.NoError(t, err)
	assert.Equal(t, String("b"), got)
}

func TestAlignPrunesOrphanedValues(t *testing.T) {
	d := mustData(t, strValues("a", "b", "c"), []int{0, 2, 3, 9})
	// Events 2 and 3 collapse onto boundary 2, dropping the b segment
	// entirely; its vocabulary entry must be pruned.
	d.Align([]int{0, 2, 9})
	assert.Equal(t, strValues("a", "c"), d.UniqueValues())
	assert.Equal(t, []int{0, 2, 9}, d.Events())
}

func TestPartition(t *testing.T) {
	d := mustData(t, strValues("a", "b", "c"), []int{0, 2, 5, 7})
	split := d.Partition([]int{0, 3, 7})
	require.Len(t, split, 2)

	assert.Equal(t, []int{0, 2, 3}, split[0].Events())
	got, err := split[0].GetMany([]int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, strValues("a", "b"), got)

	// Window 1 starts inside the b segment: its value is carried forward as
	// an explicit initial event.
	assert.Equal(t, []int{0, 2, 4}, split[1].Events())
	got, err = split[1].GetMany([]int{0, 2})
	require.NoError(t, err)
	assert.Equal(t, strValues("b", "c"), got)
}

func TestPartitionCopyOnWrite(t *testing.T) {
	d := mustData(t, strValues("a", "b", "c"), []int{0, 2, 5, 7})
	split := d.Partition([]int{0, 3, 7})
	v := String("z")
	require.NoError(t, split[0].Add(1, &v))
	// Vocabulary growth in one sibling must not be observable in the others
	// or in the source series.
	assert.Equal(t, strValues("a", "b", "c", "z"), split[0].UniqueValues())
	assert.Equal(t, strValues("a", "b", "c"), split[1].UniqueValues())
	assert.Equal(t, strValues("a", "b", "c"), d.UniqueValues())

	w := String("y")
	require.NoError(t, d.Add(6, &w))
	assert.Equal(t, strValues("a", "b", "c"), split[1].UniqueValues())
}

func TestConcatenateSingleElementIsIdentity(t *testing.T) {
	d := mustData(t, strValues("a", "b"), []int{0, 2, 5})
	got, err := Concatenate([]*Data{d}, false)
	require.NoError(t, err)
	assert.Same(t, d, got)
}

func TestConcatenateEmptyInput(t *testing.T) {
	_, err := Concatenate(nil, false)
	require.Error(t, err)
}

func TestConcatenate(t *testing.T) {
	a := mustData(t, strValues("x", "y"), []int{0, 2, 4})
	b := mustData(t, strValues("y", "z"), []int{0, 1, 3})
	got, err := Concatenate([]*Data{a, b}, false)
	require.NoError(t, err)
	assert.Equal(t, 7, got.Events()[len(got.Events())-1])
	assert.Equal(t, strValues("x", "y", "z"), got.UniqueValues())
	// The y segment spanning the join point is merged into one.
	assert.Equal(t, []int{0, 2, 5, 7}, got.Events())
	for dump := 0; dump < 4; dump++ {
		want, err := a.Get(dump)
		require.NoError(t, err)
		have, err := got.Get(dump)
		require.NoError(t, err)
		assert.Equal(t, want, have, "dump %d", dump)
	}
	for dump := 4; dump < 7; dump++ {
		want, err := b.Get(dump - 4)
		require.NoError(t, err)
		have, err := got.Get(dump)
		require.NoError(t, err)
		assert.Equal(t, want, have, "dump %d", dump)
	}
}

func TestConcatenateAllowRepeats(t *testing.T) {
	a := mustData(t, strValues("x"), []int{0, 2})
	b := mustData(t, strValues("x"), []int{0, 3})
	got, err := Concatenate([]*Data{a, b}, true)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 5}, got.Events())
	got, err = Concatenate([]*Data{a, b}, false)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 5}, got.Events())
}

func TestPartitionConcatenateRoundTrip(t *testing.T) {
	d := mustData(t, strValues("a", "b", "a", "c"), []int{0, 2, 5, 8, 11})
	boundaries := []int{0, 3, 7, 11}
	split := d.Partition(boundaries)
	joined, err := Concatenate(split, true)
	require.NoError(t, err)
	for dump := 0; dump < 11; dump++ {
		want, err := d.Get(dump)
		require.NoError(t, err)
		have, err := joined.Get(dump)
		require.NoError(t, err)
		assert.Equal(t, want, have, "dump %d", dump)
	}
}

package categorical

import (
	"fmt"
	"iter"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"
)

// Operator represents a comparison operator for per-dump comparisons.
type Operator string

const (
	// OpEqual represents the equality operator.
	OpEqual Operator = "eq"
	// OpNotEqual represents the inequality operator.
	OpNotEqual Operator = "ne"
	// OpGreaterThan represents the greater than operator.
	OpGreaterThan Operator = "gt"
	// OpGreaterEqual represents the greater than or equal operator.
	OpGreaterEqual Operator = "gte"
	// OpLessThan represents the less than operator.
	OpLessThan Operator = "lt"
	// OpLessEqual represents the less than or equal operator.
	OpLessEqual Operator = "lte"
)

// A Data represents a time series of categorical sensor values as a list of
// discrete events. The data is stored as a vocabulary of distinct values, a
// non-decreasing sequence of event positions and one vocabulary index per
// segment:
//
//   - uniqueValues holds one copy of each distinct value, in first-seen order
//   - events holds the dumps where each value came into effect; the last
//     element is one past the last covered dump, not a real event
//   - indices links each segment to its entry in uniqueValues
//
// Lookups return the value of the last event at or before the requested
// dump, in effect doing a zeroth-order interpolation. Events can be added,
// removed and realigned, and the series can be split along the time axis.
//
// A Data must not be mutated concurrently from multiple goroutines.
type Data struct {
	uniqueValues []Value
	indices      []int
	events       []int

	// shared marks the vocabulary as referenced by other series (partition
	// siblings). Mutations that change the vocabulary copy it first.
	shared bool
}

// NewData creates a Data from a sequence of sensor values and the
// corresponding monotonic sequence of dumps where each value came into
// effect. events must be exactly one longer than values; its last element is
// the total number of dumps covered by the series. Duplicate values are
// deduplicated into a shared vocabulary, preserving first-seen order.
func NewData(values []Value, events []int) (*Data, error) {
	if len(events) != len(values)+1 {
		return nil, &ShapeError{What: "events", Expected: len(values) + 1, Actual: len(events)}
	}
	unique, inverse := UniqueInOrder(values)
	return &Data{
		uniqueValues: unique,
		indices:      inverse,
		events:       slices.Clone(events),
	}, nil
}

// Len returns the number of segments (events) in the series.
func (d *Data) Len() int {
	return len(d.indices)
}

// UniqueValues returns a copy of the series vocabulary, in first-seen order.
func (d *Data) UniqueValues() []Value {
	return slices.Clone(d.uniqueValues)
}

// Events returns a copy of the event positions, including the trailing
// element one past the last covered dump.
func (d *Data) Events() []int {
	return slices.Clone(d.events)
}

// Indices returns a copy of the per-segment vocabulary indices.
func (d *Data) Indices() []int {
	return slices.Clone(d.indices)
}

// Kind returns the common scalar kind of the vocabulary, or KindObject when
// the vocabulary is empty, mixed or contains compound values.
func (d *Data) Kind() Kind {
	if len(d.uniqueValues) == 0 {
		return KindObject
	}
	k := d.uniqueValues[0].Kind
	if !d.uniqueValues[0].IsScalar() {
		return KindObject
	}
	for _, v := range d.uniqueValues[1:] {
		if v.Kind != k {
			return KindObject
		}
	}
	return k
}

// extent returns the covered dump range [events[0], events[len-1]).
func (d *Data) extent() Span {
	return Span{Start: d.events[0], End: d.events[len(d.events)-1]}
}

// lookup returns the vocabulary index active at the specified dump, i.e. the
// index of the last event at or before it.
func (d *Data) lookup(dump int) (int, error) {
	i := sort.SearchInts(d.events, dump+1) - 1
	if i < 0 || i >= len(d.indices) {
		extent := d.extent()
		return 0, &OutOfRangeError{Dump: dump, Min: extent.Start, Max: extent.End}
	}
	return d.indices[i], nil
}

// Get returns the sensor value active at the specified dump.
func (d *Data) Get(dump int) (Value, error) {
	i, err := d.lookup(dump)
	if err != nil {
		return Value{}, err
	}
	return d.uniqueValues[i], nil
}

// GetMany returns the sensor values active at each of the specified dumps.
func (d *Data) GetMany(dumps []int) ([]Value, error) {
	values := make([]Value, len(dumps))
	for k, dump := range dumps {
		i, err := d.lookup(dump)
		if err != nil {
			return nil, err
		}
		values[k] = d.uniqueValues[i]
	}
	return values, nil
}

// GetSlice returns the sensor values over the dumps denoted by the slice
// [start:stop:step] of the timeline. start and stop are clamped to the
// timeline [0, Events()[len-1]) and step must be positive. Dumps before the
// first event are an OutOfRangeError, just as with Get.
func (d *Data) GetSlice(start, stop, step int) ([]Value, error) {
	if step < 1 {
		return nil, fmt.Errorf("categorical: slice step must be positive, got %d", step)
	}
	n := d.events[len(d.events)-1]
	start = max(start, 0)
	stop = min(stop, n)
	var dumps []int
	for dump := start; dump < stop; dump += step {
		dumps = append(dumps, dump)
	}
	return d.GetMany(dumps)
}

// GetMask returns the sensor values at every dump for which the mask is
// true. The mask must have one element per dump of the timeline.
func (d *Data) GetMask(mask []bool) ([]Value, error) {
	n := d.events[len(d.events)-1]
	if len(mask) != n {
		return nil, &ShapeError{What: "mask", Expected: n, Actual: len(mask)}
	}
	var dumps []int
	for dump, set := range mask {
		if set {
			dumps = append(dumps, dump)
		}
	}
	return d.GetMany(dumps)
}

// GetBitmap returns the sensor values at every dump contained in the bitmap,
// in ascending dump order.
func (d *Data) GetBitmap(bm *roaring.Bitmap) ([]Value, error) {
	values := make([]Value, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		i, err := d.lookup(int(it.Next()))
		if err != nil {
			return nil, err
		}
		values = append(values, d.uniqueValues[i])
	}
	return values, nil
}

// Segments returns an iterator over the segments of the series, yielding the
// half-open dump range and the value of each segment in chronological order.
func (d *Data) Segments() iter.Seq2[Span, Value] {
	return func(yield func(Span, Value) bool) {
		for k, idx := range d.indices {
			if !yield(Span{Start: d.events[k], End: d.events[k+1]}, d.uniqueValues[idx]) {
				return
			}
		}
	}
}

// comparePerValue evaluates op against other for each vocabulary entry.
func (d *Data) comparePerValue(op Operator, other Value) ([]bool, error) {
	perValue := make([]bool, len(d.uniqueValues))
	for i, v := range d.uniqueValues {
		switch op {
		case OpEqual:
			perValue[i] = v.Equal(other)
		case OpNotEqual:
			perValue[i] = !v.Equal(other)
		case OpGreaterThan, OpGreaterEqual, OpLessThan, OpLessEqual:
			c, err := Cmp(v, other)
			if err != nil {
				return nil, err
			}
			switch op {
			case OpGreaterThan:
				perValue[i] = c > 0
			case OpGreaterEqual:
				perValue[i] = c >= 0
			case OpLessThan:
				perValue[i] = c < 0
			case OpLessEqual:
				perValue[i] = c <= 0
			}
		default:
			return nil, fmt.Errorf("categorical: unknown operator %q", op)
		}
	}
	return perValue, nil
}

// Compare evaluates op against other at every dump of the timeline,
// broadcasting each segment's result over its covered dump range. Equality
// and inequality work for values of any kind; ordering operators require
// orderable values and return an UnorderableError otherwise.
func (d *Data) Compare(op Operator, other Value) ([]bool, error) {
	perValue, err := d.comparePerValue(op, other)
	if err != nil {
		return nil, err
	}
	out := make([]bool, d.events[len(d.events)-1])
	for k, idx := range d.indices {
		for dump := d.events[k]; dump < d.events[k+1]; dump++ {
			out[dump] = perValue[idx]
		}
	}
	return out, nil
}

// Where evaluates op against other and returns the set of matching dumps as
// a bitmap.
func (d *Data) Where(op Operator, other Value) (*roaring.Bitmap, error) {
	perValue, err := d.comparePerValue(op, other)
	if err != nil {
		return nil, err
	}
	bm := roaring.New()
	for k, idx := range d.indices {
		if perValue[idx] && d.events[k] < d.events[k+1] {
			bm.AddRange(uint64(d.events[k]), uint64(d.events[k+1]))
		}
	}
	return bm, nil
}

// findValue returns the vocabulary index of value, or -1 if absent.
func (d *Data) findValue(value Value) int {
	for i, v := range d.uniqueValues {
		if v.Equal(value) {
			return i
		}
	}
	return -1
}

// detach copies the vocabulary if it is shared with sibling series, so that
// the pending mutation cannot be observed through them.
func (d *Data) detach() {
	if d.shared {
		d.uniqueValues = slices.Clone(d.uniqueValues)
		d.shared = false
	}
}

// Add adds or overrides a sensor event. A nil value duplicates the value
// currently active at the event dump; a value not yet in the vocabulary is
// appended to it. If the new event coincides with an existing one, it
// overrides the value at that dump, otherwise it is inserted at its sorted
// position. The event must fall inside the covered dump range.
func (d *Data) Add(event int, value *Value) error {
	extent := d.extent()
	if !extent.Contains(event) {
		return &OutOfRangeError{Dump: event, Min: extent.Start, Max: extent.End}
	}
	var valueIndex int
	if value != nil {
		valueIndex = d.findValue(*value)
		if valueIndex < 0 {
			d.detach()
			valueIndex = len(d.uniqueValues)
			d.uniqueValues = append(d.uniqueValues, *value)
		}
	} else {
		var err error
		valueIndex, err = d.lookup(event)
		if err != nil {
			return err
		}
	}
	i := sort.SearchInts(d.events, event)
	if d.events[i] == event {
		d.indices[i] = valueIndex
		return nil
	}
	d.indices = slices.Insert(d.indices, i, valueIndex)
	d.events = slices.Insert(d.events, i, event)
	return nil
}

// Remove removes a sensor value, remapping indices and merging segments in
// the process: the boundary of every segment that referenced the value is
// dropped, extending its neighbouring segment over the vacated dumps. If the
// value does not exist, Remove does nothing.
func (d *Data) Remove(value Value) {
	index := d.findValue(value)
	if index < 0 {
		return
	}
	d.detach()
	indices := d.indices[:0:0]
	events := d.events[:0:0]
	for k, ix := range d.indices {
		if ix == index {
			continue
		}
		if ix > index {
			ix--
		}
		indices = append(indices, ix)
		events = append(events, d.events[k])
	}
	events = append(events, d.events[len(d.events)-1])
	d.uniqueValues = slices.Delete(d.uniqueValues, index, index+1)
	d.indices = indices
	d.events = events
}

// RemoveRepeats removes events that re-assert the value of the immediately
// preceding segment, collapsing the two segments into one. It is idempotent.
func (d *Data) RemoveRepeats() {
	if len(d.indices) == 0 {
		return
	}
	indices := d.indices[:0:0]
	events := d.events[:0:0]
	for k, ix := range d.indices {
		if k > 0 && ix == d.indices[k-1] {
			continue
		}
		indices = append(indices, ix)
		events = append(events, d.events[k])
	}
	events = append(events, d.events[len(d.events)-1])
	d.indices = indices
	d.events = events
}

// Range returns the sub-series covering the intersection of [start, end)
// with the series extent, with event positions relative to the intersection
// start. The method returns an error if the ranges do not overlap.
func (d *Data) Range(start, end int) (*Data, error) {
	extent := d.extent()
	win, ok := (Span{Start: start, End: end}).Intersect(extent)
	if !ok {
		return nil, &OutOfRangeError{Dump: start, Min: extent.Start, Max: extent.End}
	}
	sub := d.windowed(win.Start, win.End)
	d.shared = true
	return sub, nil
}

// windowed extracts the sub-series covering [start, end) with event
// positions relative to start. The sub-series shares the vocabulary of d and
// is marked for copy-on-write. Callers must also mark d itself as shared.
func (d *Data) windowed(start, end int) *Data {
	events := d.events[:len(d.events)-1]
	// Dumps before the first event adopt its value, ditto for ones past the last.
	i := sort.SearchInts(events, start+1) - 1
	initial := d.indices[min(max(i, 0), len(events)-1)]
	child := &Data{uniqueValues: d.uniqueValues, shared: true}
	for k, e := range events {
		if e >= start && e < end {
			child.indices = append(child.indices, d.indices[k])
			child.events = append(child.events, e-start)
		}
	}
	if len(child.events) == 0 || child.events[0] != 0 {
		child.indices = slices.Insert(child.indices, 0, initial)
		child.events = slices.Insert(child.events, 0, 0)
	}
	child.events = append(child.events, end-start)
	return child
}

// clone returns a deep copy of d with a private vocabulary.
func (d *Data) clone() *Data {
	return &Data{
		uniqueValues: slices.Clone(d.uniqueValues),
		indices:      slices.Clone(d.indices),
		events:       slices.Clone(d.events),
	}
}

// String returns a human-friendly rendering of the segment ranges and their
// values, one line per segment (diagnostics only).
func (d *Data) String() string {
	width := strconv.Itoa(len(strconv.Itoa(d.events[len(d.events)-1] - 1)))
	format := "%" + width + "d - %" + width + "d: %s"
	lines := make([]string, 0, len(d.indices))
	for span, value := range d.Segments() {
		lines = append(lines, fmt.Sprintf(format, span.Start, span.End-1, value))
	}
	return strings.Join(lines, "\n")
}

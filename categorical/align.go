package categorical

import (
	"errors"
	"slices"
	"sort"
)

// AddUnmatched adds duplicate events for segment starts that do not match
// existing sensor events. Each element of boundaries is matched to the
// nearest event dump; any boundary farther than tolerance from every event
// is added as a duplicate of the value active at that dump. Boundaries that
// fall outside the covered dump range are silently skipped. boundaries must
// be monotonically increasing and include an extra element at the end that
// is one past the end of the last segment.
func (d *Data) AddUnmatched(boundaries []int, tolerance int) {
	for _, boundary := range boundaries {
		if d.nearestEventDistance(boundary) <= tolerance {
			continue
		}
		// Add without a value only fails when the boundary is out of range,
		// which is exactly the case to skip.
		_ = d.Add(boundary, nil)
	}
}

// nearestEventDistance returns the distance from dump to the closest event.
func (d *Data) nearestEventDistance(dump int) int {
	i := sort.SearchInts(d.events, dump)
	best := -1
	if i < len(d.events) {
		best = d.events[i] - dump
	}
	if i > 0 {
		if left := dump - d.events[i-1]; best < 0 || left < best {
			best = left
		}
	}
	return best
}

// Align moves every event onto the nearest element of boundaries, possibly
// discarding events: when more than one event ends up on the same boundary,
// only the last one is kept. An event equidistant between two boundaries
// snaps to the earlier one. The vocabulary is re-deduplicated afterwards so
// that values no longer referenced by any segment are pruned, preserving the
// relative order of the survivors.
//
// The end result is that the event dumps become a subset of boundaries and
// there cannot be more segments than boundaries. boundaries must be
// monotonically increasing and include an extra element at the end that is
// one past the end of the last segment.
func (d *Data) Align(boundaries []int) {
	snapped := make([]int, len(d.events))
	for k, e := range d.events {
		snapped[k] = nearestBoundary(boundaries, e)
	}
	// Keep the final event of every run that collapsed onto one boundary.
	var keep []int
	for n := 0; n+1 < len(snapped); n++ {
		if snapped[n+1] > snapped[n] {
			keep = append(keep, n)
		}
	}
	kept := make([]int, len(keep))
	for i, n := range keep {
		kept[i] = d.indices[n]
	}
	subset := slices.Clone(kept)
	slices.Sort(subset)
	subset = slices.Compact(subset)
	remap := make(map[int]int, len(subset))
	values := make([]Value, len(subset))
	for newIndex, oldIndex := range subset {
		remap[oldIndex] = newIndex
		values[newIndex] = d.uniqueValues[oldIndex]
	}
	events := make([]int, 0, len(keep)+1)
	indices := make([]int, 0, len(keep))
	for i, n := range keep {
		indices = append(indices, remap[kept[i]])
		events = append(events, snapped[n])
	}
	events = append(events, snapped[len(snapped)-1])
	// The rebuilt vocabulary is private, so any earlier sharing ends here.
	d.uniqueValues = values
	d.shared = false
	d.indices = indices
	d.events = events
}

// nearestBoundary returns the element of boundaries closest to dump,
// breaking ties toward the earlier boundary.
func nearestBoundary(boundaries []int, dump int) int {
	i := sort.SearchInts(boundaries, dump)
	if i == 0 {
		return boundaries[0]
	}
	if i == len(boundaries) {
		return boundaries[len(boundaries)-1]
	}
	if dump-boundaries[i-1] <= boundaries[i]-dump {
		return boundaries[i-1]
	}
	return boundaries[i]
}

// Partition splits the series into multiple series along the time axis, one
// per window [boundaries[k], boundaries[k+1]). Each resulting series
// contains only the events occurring within its window, with event dumps
// relative to the window start and an explicit initial event carried forward
// when the window starts inside a segment. The resulting series share the
// vocabulary of d; any subsequent mutation of the vocabulary through one of
// them copies it first, so siblings never observe each other's edits.
func (d *Data) Partition(boundaries []int) []*Data {
	split := make([]*Data, 0, max(len(boundaries)-1, 0))
	for k := 0; k+1 < len(boundaries); k++ {
		split = append(split, d.windowed(boundaries[k], boundaries[k+1]))
	}
	d.shared = true
	return split
}

// Concatenate joins a sequence of series end-to-end along the time axis, by
// forming a common vocabulary in first-seen order across all inputs,
// remapping each input's indices to it and offsetting each input's events by
// the total length of all preceding series. Unless allowRepeats is true,
// events that repeat the value across a join point are removed afterwards.
// A single-element input is returned unchanged.
func Concatenate(series []*Data, allowRepeats bool) (*Data, error) {
	if len(series) == 0 {
		return nil, errors.New("categorical: no series to concatenate")
	}
	if len(series) == 1 {
		return series[0], nil
	}
	var all []Value
	splits := make([]int, 0, len(series)+1)
	offsets := make([]int, 0, len(series)+1)
	splits = append(splits, 0)
	offsets = append(offsets, 0)
	for _, s := range series {
		all = append(all, s.uniqueValues...)
		splits = append(splits, len(all))
		offsets = append(offsets, offsets[len(offsets)-1]+s.events[len(s.events)-1])
	}
	merged, inverse := UniqueInOrder(all)
	out := &Data{uniqueValues: merged}
	for n, s := range series {
		remap := inverse[splits[n]:splits[n+1]]
		for _, ix := range s.indices {
			out.indices = append(out.indices, remap[ix])
		}
		for _, e := range s.events[:len(s.events)-1] {
			out.events = append(out.events, e+offsets[n])
		}
	}
	out.events = append(out.events, offsets[len(offsets)-1])
	if !allowRepeats {
		out.RemoveRepeats()
	}
	return out, nil
}

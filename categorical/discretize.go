package categorical

import (
	"errors"
	"slices"
	"sort"
)

// DiscretizeConfig configures SensorToCategorical. The zero value is a valid
// configuration; a nil *DiscretizeConfig is treated the same way.
type DiscretizeConfig struct {
	// GreedyValues lists the (transformed) sensor values considered greedy.
	// A greedy value takes precedence over its neighbour when both occur
	// within the same dump, in either direction of the transition.
	GreedyValues []Value

	// InitialValue, when set, is used for dump 0 up to the first proper
	// event. When nil, the first proper event is forced to start at dump 0.
	InitialValue *Value

	// Transform, when set, is applied to sensor values before repeats are
	// discarded and greed is applied.
	Transform func(Value) Value

	// AllowRepeats keeps sensor events that do not change the (transformed)
	// value instead of discarding them.
	AllowRepeats bool
}

// SensorToCategorical aligns categorical sensor events with dumps and cleans
// up spurious events. Each sensor event is assigned to the dump during which
// it occurred by comparing its timestamp against the dump midtimes; when
// multiple events land in the same dump only the last one is kept. The first
// dump is guaranteed to have a valid value, either from the configured
// initial value or by extrapolating the first proper value back in time.
// Values may be transformed before events repeating the previous value are
// discarded. Finally, events with greedy values swallow the first dump of a
// following non-greedy segment, so that greedy values win contested boundary
// dumps. The resulting series spans the entire dump grid.
func SensorToCategorical(timestamps []float64, values []Value, dumpMidtimes []float64, dumpPeriod float64, cfg *DiscretizeConfig) (*Data, error) {
	if len(timestamps) != len(values) {
		return nil, &ShapeError{What: "sensor values", Expected: len(timestamps), Actual: len(values)}
	}
	if cfg == nil {
		cfg = &DiscretizeConfig{}
	}
	n := len(dumpMidtimes)
	// Pick the dump during which each sensor event occurred. The final
	// element is fixed at one past the last dump, terminating the last segment.
	events := make([]int, 0, len(values)+1)
	for _, t := range timestamps {
		events = append(events, sort.SearchFloat64s(dumpMidtimes, t-0.5*dumpPeriod))
	}
	events = append(events, n)
	// Cull empty segments: when multiple events occur within a single dump,
	// keep only the last one. This also drops events beyond the grid.
	var vals []Value
	var evs []int
	for k := range values {
		if events[k+1]-events[k] > 0 {
			vals = append(vals, values[k])
			evs = append(evs, events[k])
		}
	}
	evs = append(evs, n)
	// Force the first dump to have a valid sensor value.
	if len(vals) == 0 {
		if cfg.InitialValue == nil {
			return nil, errors.New("categorical: no sensor events on the dump grid and no initial value")
		}
		vals = []Value{*cfg.InitialValue}
		evs = []int{0, n}
	} else if evs[0] != 0 {
		if cfg.InitialValue != nil {
			vals = slices.Insert(vals, 0, *cfg.InitialValue)
			evs = slices.Insert(evs, 0, 0)
		} else {
			evs[0] = 0
		}
	}
	if cfg.Transform != nil {
		for i := range vals {
			vals[i] = cfg.Transform(vals[i])
		}
	}
	// Discard events that repeat the previous (transformed) value.
	if !cfg.AllowRepeats {
		keptVals := vals[:0:0]
		keptEvs := evs[:0:0]
		for k := range vals {
			if k > 0 && vals[k].Equal(vals[k-1]) {
				continue
			}
			keptVals = append(keptVals, vals[k])
			keptEvs = append(keptEvs, evs[k])
		}
		vals = keptVals
		evs = append(keptEvs, n)
	}
	// Extend segments with greedy values to include the first dump of the
	// next segment where the sensor value is changing.
	if len(cfg.GreedyValues) > 0 {
		greedy := make(map[string]bool, len(cfg.GreedyValues))
		for _, v := range cfg.GreedyValues {
			greedy[v.Key()] = true
		}
		for k := 1; k < len(vals); k++ {
			if greedy[vals[k-1].Key()] && !greedy[vals[k].Key()] {
				evs[k]++
			}
		}
	}
	return NewData(vals, evs)
}

/*
Package categorical implements event-indexed containers for categorical
(i.e. non-numerical) sensor data sampled irregularly in time. It defines the
type Data, with methods for looking up, comparing and editing a time series of
discrete values, and the type Store, with methods for interacting with a
collection of named series.

A Data is defined by a vocabulary of distinct values, a non-decreasing
sequence of event positions (dumps) and one vocabulary index per segment. The
value at any dump is the value of the last event at or before it (zeroth-order
hold), found by binary search rather than by materialising one value per dump.
A series can be edited in place, re-aligned to arbitrary segment boundaries,
partitioned along the time axis and concatenated with other series.

Values are represented by the kind-tagged Value type, which makes compound
values such as arrays usable as vocabulary entries: every Value has a stable
canonical key, so equality works by content even where the underlying data is
not comparable. Ordering between compound values is deliberately undefined and
reported as an UnorderableError.

The function SensorToCategorical converts a raw timestamped value stream onto
a fixed dump grid, collapsing per-dump collisions, suppressing repeated values
and applying greedy-value precedence at contested transition dumps.

A Store is essentially a wrapper around a map of series that provides
convenience methods safe to use from multiple goroutines, including an
export/import round trip easing integration with storage systems.
*/
package categorical

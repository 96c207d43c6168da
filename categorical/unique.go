package categorical

// UniqueInOrder extracts the distinct elements of a sequence while preserving
// the order in which they first occur. The second return value maps each
// input element back to its slot in the deduplicated vocabulary, so that
// unique[inverse[i]] equals elements[i] for all i.
func UniqueInOrder(elements []Value) (unique []Value, inverse []int) {
	lookup := make(map[string]int, len(elements))
	inverse = make([]int, len(elements))
	for i, element := range elements {
		key := element.Key()
		slot, ok := lookup[key]
		if !ok {
			slot = len(unique)
			lookup[key] = slot
			unique = append(unique, element)
		}
		inverse[i] = slot
	}
	return unique, inverse
}

package categorical

import (
	"encoding/binary"
	"errors"
	"math"
)

var errDecode = errors.New("categorical: cannot decode the series")

// Bytes returns the encoded series. The encoding is a varint-framed layout:
// the vocabulary (count followed by kind-tagged values), the per-segment
// indices and the delta-encoded event positions.
func (d *Data) Bytes() []byte {
	buf := binary.AppendUvarint(nil, uint64(len(d.uniqueValues)))
	for _, v := range d.uniqueValues {
		buf = appendValue(buf, v)
	}
	buf = binary.AppendUvarint(buf, uint64(len(d.indices)))
	for _, ix := range d.indices {
		buf = binary.AppendUvarint(buf, uint64(ix))
	}
	buf = binary.AppendVarint(buf, int64(d.events[0]))
	for k := 1; k < len(d.events); k++ {
		buf = binary.AppendUvarint(buf, uint64(d.events[k]-d.events[k-1]))
	}
	return buf
}

// DataFromBytes creates a new Data from data, an encoded series.
func DataFromBytes(data []byte) (*Data, error) {
	m, i, err := readUvarint(data, 0)
	if err != nil {
		return nil, err
	}
	if m > uint64(len(data)-i) {
		return nil, errDecode
	}
	var values []Value
	if m > 0 {
		values = make([]Value, m)
	}
	for k := range values {
		values[k], i, err = decodeValue(data, i)
		if err != nil {
			return nil, err
		}
	}
	n, i, err := readUvarint(data, i)
	if err != nil {
		return nil, err
	}
	if n > uint64(len(data)-i) {
		return nil, errDecode
	}
	indices := make([]int, n)
	for k := range indices {
		var ix uint64
		ix, i, err = readUvarint(data, i)
		if err != nil {
			return nil, err
		}
		if ix >= m {
			return nil, errDecode
		}
		indices[k] = int(ix)
	}
	first, w := binary.Varint(data[i:])
	if w <= 0 {
		return nil, errDecode
	}
	i += w
	events := make([]int, n+1)
	events[0] = int(first)
	for k := 1; k < len(events); k++ {
		var delta uint64
		delta, i, err = readUvarint(data, i)
		if err != nil {
			return nil, err
		}
		events[k] = events[k-1] + int(delta)
	}
	if i != len(data) {
		return nil, errDecode
	}
	return &Data{uniqueValues: values, indices: indices, events: events}, nil
}

// Value kind tags as encoded on the wire.
const (
	codecNull uint8 = iota
	codecInt
	codecFloat
	codecString
	codecBool
	codecArray
)

// appendValue appends the kind-tagged encoding of v to buf.
func appendValue(buf []byte, v Value) []byte {
	switch v.Kind {
	case KindInt:
		buf = append(buf, codecInt)
		return binary.AppendVarint(buf, v.I64)
	case KindFloat:
		buf = append(buf, codecFloat)
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.F64))
	case KindString:
		buf = append(buf, codecString)
		buf = binary.AppendUvarint(buf, uint64(len(v.S)))
		return append(buf, v.S...)
	case KindBool:
		buf = append(buf, codecBool)
		if v.B {
			return append(buf, 1)
		}
		return append(buf, 0)
	case KindArray:
		buf = append(buf, codecArray)
		buf = binary.AppendUvarint(buf, uint64(len(v.A)))
		for _, e := range v.A {
			buf = appendValue(buf, e)
		}
		return buf
	default:
		return append(buf, codecNull)
	}
}

// decodeValue decodes one value from data starting at offset i, returning
// the value and the offset past it.
func decodeValue(data []byte, i int) (Value, int, error) {
	if i >= len(data) {
		return Value{}, 0, errDecode
	}
	tag := data[i]
	i++
	switch tag {
	case codecNull:
		return Null(), i, nil
	case codecInt:
		x, w := binary.Varint(data[i:])
		if w <= 0 {
			return Value{}, 0, errDecode
		}
		return Int(x), i + w, nil
	case codecFloat:
		if i+8 > len(data) {
			return Value{}, 0, errDecode
		}
		bits := binary.LittleEndian.Uint64(data[i:])
		return Float(math.Float64frombits(bits)), i + 8, nil
	case codecString:
		n, i, err := readUvarint(data, i)
		if err != nil {
			return Value{}, 0, err
		}
		if uint64(len(data)-i) < n {
			return Value{}, 0, errDecode
		}
		return String(string(data[i : i+int(n)])), i + int(n), nil
	case codecBool:
		if i >= len(data) {
			return Value{}, 0, errDecode
		}
		return Bool(data[i] != 0), i + 1, nil
	case codecArray:
		n, i, err := readUvarint(data, i)
		if err != nil {
			return Value{}, 0, err
		}
		if n > uint64(len(data)-i) {
			return Value{}, 0, errDecode
		}
		elements := make([]Value, n)
		for k := range elements {
			elements[k], i, err = decodeValue(data, i)
			if err != nil {
				return Value{}, 0, err
			}
		}
		return Array(elements...), i, nil
	default:
		return Value{}, 0, errDecode
	}
}

// readUvarint reads one unsigned varint from data starting at offset i.
func readUvarint(data []byte, i int) (uint64, int, error) {
	x, w := binary.Uvarint(data[i:])
	if w <= 0 {
		return 0, 0, errDecode
	}
	return x, i + w, nil
}

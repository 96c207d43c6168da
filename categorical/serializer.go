package categorical

import (
	"strconv"
)

const (
	serializerBasePrefix  = '['
	serializerRowPrefix   = `{"start":`
	serializerEndPrefix   = `,"end":`
	serializerValuePrefix = `,"value":`
	serializerRowSuffix   = "},"
	serializerBaseSuffix  = ']'
)

// AppendJSON appends a JSON encoding of the series segments to buf and
// returns the extended buffer. Each segment is rendered as an object holding
// its half-open dump range and its value. The encoding is meant for
// diagnostics and is not a stability-bearing format.
func (d *Data) AppendJSON(buf []byte) []byte {
	if len(d.indices) == 0 {
		return append(buf, "[]"...)
	}
	buf = append(buf, serializerBasePrefix)
	for k, ix := range d.indices {
		buf = append(buf, serializerRowPrefix...)
		buf = strconv.AppendInt(buf, int64(d.events[k]), 10)
		buf = append(buf, serializerEndPrefix...)
		buf = strconv.AppendInt(buf, int64(d.events[k+1]), 10)
		buf = append(buf, serializerValuePrefix...)
		buf = appendValueJSON(buf, d.uniqueValues[ix])
		buf = append(buf, serializerRowSuffix...)
	}
	buf[len(buf)-1] = serializerBaseSuffix
	return buf
}

// MarshalJSON implements json.Marshaler on top of AppendJSON.
func (d *Data) MarshalJSON() ([]byte, error) {
	return d.AppendJSON(nil), nil
}

// appendValueJSON appends the JSON encoding of v to buf.
func appendValueJSON(buf []byte, v Value) []byte {
	switch v.Kind {
	case KindInt:
		return strconv.AppendInt(buf, v.I64, 10)
	case KindFloat:
		return strconv.AppendFloat(buf, v.F64, 'g', -1, 64)
	case KindString:
		return strconv.AppendQuote(buf, v.S)
	case KindBool:
		return strconv.AppendBool(buf, v.B)
	case KindArray:
		buf = append(buf, '[')
		for i, e := range v.A {
			if i > 0 {
				buf = append(buf, ',')
			}
			buf = appendValueJSON(buf, e)
		}
		return append(buf, ']')
	default:
		return append(buf, "null"...)
	}
}

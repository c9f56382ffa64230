package model

import (
	"bytes"
	"math"
	"strconv"
)

// Values is a numeric series. NaN marks an undefined entry.
type Values []float64

// Defined reports whether entry i holds a number.
func (v Values) Defined(i int) bool {
	return i >= 0 && i < len(v) && !math.IsNaN(v[i])
}

// Valid returns the defined entries in order.
func (v Values) Valid() []float64 {
	out := make([]float64, 0, len(v))
	for _, x := range v {
		if !math.IsNaN(x) {
			out = append(out, x)
		}
	}
	return out
}

// UndefinedPrefix counts the undefined entries before the first defined one.
func (v Values) UndefinedPrefix() int {
	for i, x := range v {
		if !math.IsNaN(x) {
			return i
		}
	}
	return len(v)
}

// MarshalJSON encodes undefined and infinite entries as null.
func (v Values) MarshalJSON() ([]byte, error) {
	if v == nil {
		return []byte("null"), nil
	}
	var b bytes.Buffer
	b.WriteByte('[')
	for i, x := range v {
		if i > 0 {
			b.WriteByte(',')
		}
		if math.IsNaN(x) || math.IsInf(x, 0) {
			b.WriteString("null")
			continue
		}
		b.WriteString(strconv.FormatFloat(x, 'g', -1, 64))
	}
	b.WriteByte(']')
	return b.Bytes(), nil
}

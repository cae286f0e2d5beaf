// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package matrix

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Precision is the number of decimals kept by Encode.
const Precision = 4

var (
	ErrMalformed = errors.New("malformed matrix text")
	ErrRagged    = errors.New("matrix rows have unequal lengths")
	ErrEmpty     = errors.New("matrix has no elements")
)

// Encode flattens m into bracketed text. Vectors become `[a b c]`,
// anything else `[[a b], [c d]]`. Elements are rounded to Precision decimals,
// so a round trip is lossy.
func Encode(m mat.Matrix) string {
	if v, ok := m.(mat.Vector); ok {
		vals := make([]float64, v.Len())
		for i := range vals {
			vals[i] = v.AtVec(i)
		}
		return EncodeVector(vals)
	}

	r, c := m.Dims()
	var b strings.Builder
	b.WriteByte('[')
	for i := 0; i < r; i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		row := make([]float64, c)
		for j := range row {
			row[j] = m.At(i, j)
		}
		writeRow(&b, row)
	}
	b.WriteByte(']')
	return b.String()
}

// EncodeVector encodes a 1-D array.
func EncodeVector(vals []float64) string {
	var b strings.Builder
	writeRow(&b, vals)
	return b.String()
}

// EncodeRows encodes a 2-D array given as rows.
func EncodeRows(rows [][]float64) (string, error) {
	m, err := FromRows(rows)
	if err != nil {
		return "", err
	}
	return Encode(m), nil
}

func writeRow(b *strings.Builder, vals []float64) {
	b.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(formatElement(v))
	}
	b.WriteByte(']')
}

func formatElement(v float64) string {
	r := Round(v)
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Round rounds v to Precision decimals.
func Round(v float64) float64 {
	scale := math.Pow10(Precision)
	return math.Round(v*scale) / scale
}

// Decode parses text produced by Encode, or by numpy's array2string with
// newlines replaced by commas. The number of closing brackets at the end
// of the text decides the dimension: one yields *mat.VecDense, two *mat.Dense.
func Decode(text string) (mat.Matrix, error) {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("%w: %q", ErrMalformed, text)
	}

	parts := strings.Split(s, "[")
	dims := strings.Count(parts[len(parts)-1], "]")

	switch dims {
	case 1:
		vals, err := parseElements(strings.Trim(s, "[]"))
		if err != nil {
			return nil, err
		}
		if len(vals) == 0 {
			return nil, ErrEmpty
		}
		return mat.NewVecDense(len(vals), vals), nil
	case 2:
		inner := s[1 : len(s)-1]
		var rows [][]float64
		for _, seg := range strings.Split(inner, "]") {
			seg = strings.TrimLeft(seg, ", \t\n")
			if seg == "" {
				continue
			}
			if !strings.HasPrefix(seg, "[") {
				return nil, fmt.Errorf("%w: %q", ErrMalformed, text)
			}
			vals, err := parseElements(seg[1:])
			if err != nil {
				return nil, err
			}
			rows = append(rows, vals)
		}
		return FromRows(rows)
	default:
		return nil, fmt.Errorf("%w: unsupported dimension %d", ErrMalformed, dims)
	}
}

func parseElements(s string) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n'
	})
	vals := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: element %q", ErrMalformed, f)
		}
		vals = append(vals, v)
	}
	return vals, nil
}

// FromRows builds a dense matrix from equal-length rows.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}
	width := len(rows[0])
	data := make([]float64, 0, len(rows)*width)
	for _, row := range rows {
		if len(row) != width {
			return nil, ErrRagged
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), width, data), nil
}

// Rows returns the elements of m row by row. A vector yields one row.
func Rows(m mat.Matrix) [][]float64 {
	if v, ok := m.(mat.Vector); ok {
		row := make([]float64, v.Len())
		for i := range row {
			row[i] = v.AtVec(i)
		}
		return [][]float64{row}
	}
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

// EncodeValue serializes the array-shaped values accepted by matrix columns:
// mat.Matrix, []float64 and [][]float64. ok is false for any other type.
func EncodeValue(v any) (text string, ok bool, err error) {
	switch m := v.(type) {
	case mat.Matrix:
		return Encode(m), true, nil
	case []float64:
		if len(m) == 0 {
			return "", true, ErrEmpty
		}
		return EncodeVector(m), true, nil
	case [][]float64:
		text, err := EncodeRows(m)
		return text, true, err
	}
	return "", false, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package record

import (
	"database/sql"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/danielhkuo/coastcamdb/matrix"
	"github.com/danielhkuo/coastcamdb/schema"
)

// normalize converts a caller value into the form stored for the column.
// nil stays nil and is written as NULL.
func normalize(table string, def schema.ColumnDef, v any) (any, error) {
	if v == nil {
		return nil, nil
	}

	typeErr := func(err error) error {
		return &ValueTypeError{Table: table, Column: def.Name, Value: v, Err: err}
	}

	switch def.Type {
	case schema.Matrix:
		if text, ok := v.(string); ok {
			m, err := matrix.Decode(text)
			if err != nil {
				return nil, typeErr(err)
			}
			return matrix.Encode(m), nil
		}
		if nested, ok := v.([]any); ok {
			converted, err := fromNested(nested)
			if err != nil {
				return nil, typeErr(err)
			}
			v = converted
		}
		text, ok, err := matrix.EncodeValue(v)
		if !ok {
			return nil, typeErr(nil)
		}
		if err != nil {
			return nil, typeErr(err)
		}
		return text, nil

	case schema.Integer:
		if n, ok := toInt64(v); ok {
			return n, nil
		}
		if text, ok := v.(string); ok {
			n, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
			if err != nil {
				return nil, typeErr(err)
			}
			return n, nil
		}
		return nil, typeErr(nil)

	case schema.Real:
		if f, ok := toFloat64(v); ok {
			return f, nil
		}
		if text, ok := v.(string); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
			if err != nil {
				return nil, typeErr(err)
			}
			return f, nil
		}
		return nil, typeErr(nil)

	default:
		switch t := v.(type) {
		case string:
			return t, nil
		case float32, float64:
			f, _ := toFloat64(t)
			return strconv.FormatFloat(f, 'f', -1, 64), nil
		}
		if n, ok := toInt64(v); ok {
			return strconv.FormatInt(n, 10), nil
		}
		return nil, typeErr(nil)
	}
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int64(n), true
		}
	case float32:
		if f := float64(n); f == math.Trunc(f) && !math.IsInf(f, 0) {
			return int64(f), true
		}
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case bool:
		return 0, false
	}
	if i, ok := toInt64(v); ok {
		return float64(i), true
	}
	return 0, false
}

// fromNested converts decoded YAML/JSON lists into []float64 or [][]float64.
func fromNested(list []any) (any, error) {
	if len(list) == 0 {
		return nil, matrix.ErrEmpty
	}
	if _, nested := list[0].([]any); !nested {
		return floats(list)
	}

	rows := make([][]float64, len(list))
	for i, r := range list {
		inner, ok := r.([]any)
		if !ok {
			return nil, matrix.ErrRagged
		}
		row, err := floats(inner)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return rows, nil
}

func floats(list []any) ([]float64, error) {
	out := make([]float64, len(list))
	for i, v := range list {
		f, ok := toFloat64(v)
		if !ok {
			return nil, fmt.Errorf("element %v is not a number", v)
		}
		out[i] = f
	}
	return out, nil
}

// scanTarget returns a destination suited to the column type.
func scanTarget(def schema.ColumnDef) any {
	switch def.Type {
	case schema.Integer:
		return new(sql.NullInt64)
	case schema.Real:
		return new(sql.NullFloat64)
	default:
		return new(sql.NullString)
	}
}

// scanned unwraps a scanTarget into a plain Go value or nil.
func scanned(dest any) any {
	switch d := dest.(type) {
	case *sql.NullInt64:
		if d.Valid {
			return d.Int64
		}
	case *sql.NullFloat64:
		if d.Valid {
			return d.Float64
		}
	case *sql.NullString:
		if d.Valid {
			return d.String
		}
	}
	return nil
}

// idString normalizes an id value for comparison and storage.
func idString(table string, v any) (string, error) {
	norm, err := normalize(table, schema.ColumnDef{Name: "id", Type: schema.Text}, v)
	if err != nil {
		return "", err
	}
	if norm == nil {
		return "", &InvalidIDError{Table: table}
	}
	return norm.(string), nil
}

func validateID(table, id string) error {
	if n := len(id); n == 0 || n > schema.MaxIDLength {
		return &InvalidIDError{Table: table, ID: id}
	}
	return nil
}

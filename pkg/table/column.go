package table

import (
	"reflect"
	"sort"
	"strings"
)

// CellParams is passed to a column's Cell renderer.
type CellParams[T any] struct {
	Row Row[T]
}

// Row wraps one record of a table.
type Row[T any] struct {
	Original T
}

// NewRow wraps original.
func NewRow[T any](original T) Row[T] {
	return Row[T]{Original: original}
}

// GetValue resolves key against the original record: map keys for string-keyed
// maps, and json tag or field name for structs. Missing keys yield nil.
func (r Row[T]) GetValue(key string) any {
	return lookup(reflect.ValueOf(any(r.Original)), key)
}

// Column describes one table column. Cell, when set, overrides the accessor.
type Column[T any] struct {
	AccessorKey string
	Header      string
	ID          string
	Cell        func(CellParams[T]) any
}

// Key returns the column identity: ID, falling back to AccessorKey.
func (c Column[T]) Key() string {
	if c.ID != "" {
		return c.ID
	}
	return c.AccessorKey
}

// Value computes the cell value for row.
func (c Column[T]) Value(row Row[T]) any {
	if c.Cell != nil {
		return c.Cell(CellParams[T]{Row: row})
	}
	if c.AccessorKey == "" {
		return nil
	}
	return row.GetValue(c.AccessorKey)
}

// ColumnsFor derives accessor columns from the sorted keys of the first map row.
func ColumnsFor(rows []map[string]any) []Column[map[string]any] {
	if len(rows) == 0 {
		return nil
	}
	keys := make([]string, 0, len(rows[0]))
	for k := range rows[0] {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cols := make([]Column[map[string]any], 0, len(keys))
	for _, k := range keys {
		cols = append(cols, Column[map[string]any]{AccessorKey: k, Header: k})
	}
	return cols
}

func lookup(v reflect.Value, key string) any {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil
		}
		mv := v.MapIndex(reflect.ValueOf(key).Convert(v.Type().Key()))
		if !mv.IsValid() {
			return nil
		}
		return mv.Interface()
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			if fieldName(f) == key || f.Name == key {
				return v.Field(i).Interface()
			}
		}
	}
	return nil
}

func fieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "" || tag == "-" {
		return f.Name
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}

package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/samvad-hq/mpc-dashboard/pkg/table"
)

// listKeys are the wrapper keys under which the backend may nest result lists.
var listKeys = []string{"data", "items", "results", "rows"}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeResult prints a backend result. Tabular results are rendered with cols,
// or with columns derived from the rows when cols is empty; anything else
// falls back to JSON.
func (rt *runtime) writeResult(v any, cols []table.Column[map[string]any]) error {
	if rt.format == formatJSON {
		return writeJSON(rt.out, v)
	}

	if rows, ok := extractRows(v); ok {
		if len(rows) == 0 {
			_, err := fmt.Fprintln(rt.out, "No results.")
			return err
		}
		if len(cols) == 0 {
			cols = table.ColumnsFor(rows)
		}
		return table.Render(rt.out, cols, rows)
	}
	if m, ok := v.(map[string]any); ok {
		return writeKeyValues(rt.out, m)
	}
	return writeJSON(rt.out, v)
}

// extractRows finds a list of records in v: a bare array or an array under a
// well-known wrapper key.
func extractRows(v any) ([]map[string]any, bool) {
	switch t := v.(type) {
	case []any:
		return toRows(t)
	case map[string]any:
		for _, k := range listKeys {
			if arr, ok := t[k].([]any); ok {
				return toRows(arr)
			}
		}
	}
	return nil, false
}

func toRows(arr []any) ([]map[string]any, bool) {
	rows := make([]map[string]any, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		rows = append(rows, m)
	}
	return rows, true
}

type field struct {
	Key   string `json:"key"`
	Value any    `json:"value"`
}

var fieldColumns = []table.Column[field]{
	{AccessorKey: "key", Header: "field"},
	{AccessorKey: "value", Header: "value", Cell: func(p table.CellParams[field]) any {
		v := p.Row.Original.Value
		switch v.(type) {
		case map[string]any, []any:
			raw, err := json.Marshal(v)
			if err != nil {
				return fmt.Sprint(v)
			}
			return string(raw)
		}
		return v
	}},
}

// writeKeyValues renders a single record as a two column table sorted by key.
func writeKeyValues(w io.Writer, m map[string]any) error {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]field, 0, len(keys))
	for _, k := range keys {
		fields = append(fields, field{Key: k, Value: m[k]})
	}
	return writeFields(w, fields)
}

func writeFields(w io.Writer, fields []field) error {
	return table.Render(w, fieldColumns, fields)
}

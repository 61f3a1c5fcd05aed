package table

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cast"
)

// Render writes rows as an aligned text table with a header line.
func Render[T any](w io.Writer, cols []Column[T], rows []T) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = strings.ToUpper(firstNonEmpty(c.Header, c.Key()))
	}
	if _, err := fmt.Fprintln(tw, strings.Join(headers, "\t")); err != nil {
		return err
	}

	cells := make([]string, len(cols))
	for _, rec := range rows {
		row := NewRow(rec)
		for i, c := range cols {
			cells[i] = FormatValue(c.Value(row))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// FormatValue renders a cell value on a single line.
func FormatValue(v any) string {
	if v == nil {
		return "-"
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		s = fmt.Sprint(v)
	}
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

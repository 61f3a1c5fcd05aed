package apiclient

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/spf13/cast"
)

// Param is a single query parameter. A nil Value marks the entry as absent.
type Param struct {
	Key   string
	Value any
}

// Params is an ordered set of query parameters; encoding follows slice order.
type Params []Param

// Set returns a copy of p with key set to value. An existing key keeps its
// position; a new key is appended. p itself is never modified.
func (p Params) Set(key string, value any) Params {
	out := make(Params, len(p), len(p)+1)
	copy(out, p)
	for i := range out {
		if out[i].Key == key {
			out[i].Value = value
			return out
		}
	}
	return append(out, Param{Key: key, Value: value})
}

// Get returns the value stored for key.
func (p Params) Get(key string) (any, bool) {
	for _, param := range p {
		if param.Key == key {
			return param.Value, true
		}
	}
	return nil, false
}

// ParamsFromMap converts a map into Params ordered by key, since Go maps carry no
// insertion order.
func ParamsFromMap(m map[string]any) Params {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make(Params, 0, len(keys))
	for _, k := range keys {
		out = append(out, Param{Key: k, Value: m[k]})
	}
	return out
}

// EncodeQuery renders params as a query-string suffix ("?a=1&b=2"). Empty params
// yield "". Absent values are dropped after the emptiness check, so a set made
// only of absent values yields a bare "?".
func EncodeQuery(params Params) string {
	if len(params) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte('?')
	first := true
	for _, p := range params {
		if isAbsent(p.Value) {
			continue
		}
		if !first {
			b.WriteByte('&')
		}
		first = false
		b.WriteString(EscapeComponent(p.Key))
		b.WriteByte('=')
		b.WriteString(EscapeComponent(stringify(p.Value)))
	}
	return b.String()
}

// componentUnescaper restores the characters encodeURIComponent leaves alone but
// url.QueryEscape escapes. A literal '+' in the input is already %2B by then.
var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EscapeComponent percent-encodes s with encodeURIComponent semantics: only
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) pass through.
func EscapeComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// stringify renders v the way string concatenation would: lists join their
// elements with commas and absent elements become empty.
func stringify(v any) string {
	if isAbsent(v) {
		return ""
	}
	if rv := reflect.ValueOf(v); (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) &&
		rv.Type().Elem().Kind() != reflect.Uint8 {
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = stringify(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}

func isAbsent(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

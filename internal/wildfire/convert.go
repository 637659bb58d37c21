// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package wildfire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// exportDepth bounds how far the fallback dump descends into nested values.
const exportDepth = 3

// ConvertToString renders a log message for console display.
// Scalars keep their plain string form; structured values are JSON encoded
// with escape backslashes removed. It never fails.
func ConvertToString(v any) string {
	if v == nil {
		return ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			return ""
		}
	}

	switch m := v.(type) {
	case string:
		return m
	case []byte:
		return string(m)
	case error:
		return m.Error()
	case fmt.Stringer:
		return m.String()
	}

	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	}

	return stripSlashes(export(v))
}

// export encodes a structured value. Values JSON cannot represent
// (channels, funcs, cyclic data) fall back to a depth-limited dump.
func export(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return dump(reflect.ValueOf(v), exportDepth)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// dump renders rv in a JSON-like form without calling Interface, so
// unexported fields and cycles are safe. Containers below depth are elided.
func dump(rv reflect.Value, depth int) string {
	switch rv.Kind() {
	case reflect.Invalid:
		return "null"
	case reflect.String:
		return strconv.Quote(rv.String())
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Complex64, reflect.Complex128:
		return strconv.Quote(strconv.FormatComplex(rv.Complex(), 'f', -1, 128))
	case reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return strconv.Quote(rv.Type().String())
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
		return dump(rv.Elem(), depth)
	}

	if depth <= 0 {
		return strconv.Quote("[maximum depth reached]")
	}

	var parts []string
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return "null"
		}
		for i := 0; i < rv.Len(); i++ {
			parts = append(parts, dump(rv.Index(i), depth-1))
		}
		return "[" + strings.Join(parts, ",") + "]"
	case reflect.Map:
		if rv.IsNil() {
			return "null"
		}
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key()
			for k.Kind() == reflect.Interface && !k.IsNil() {
				k = k.Elem()
			}
			key := dump(k, depth-1)
			if k.Kind() != reflect.String {
				key = strconv.Quote(key)
			}
			parts = append(parts, key+":"+dump(iter.Value(), depth-1))
		}
		sort.Strings(parts)
		return "{" + strings.Join(parts, ",") + "}"
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			parts = append(parts, strconv.Quote(t.Field(i).Name)+":"+dump(rv.Field(i), depth-1))
		}
		return "{" + strings.Join(parts, ",") + "}"
	}
	return strconv.Quote(rv.Type().String())
}

// stripSlashes removes one level of backslash quoting: `\x` becomes `x`
// and `\\` becomes `\`.
func stripSlashes(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			if i == len(s) {
				break
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

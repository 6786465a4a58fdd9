package output

import (
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"
	"text/tabwriter"
	"time"
)

// TextFormatter lists data as aligned "key  value" lines. Nested structs
// and maps are flattened into dotted keys.
type TextFormatter struct{}

// Format formats data as text.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	if data == nil {
		return nil
	}

	if s, ok := data.(fmt.Stringer); ok && !isContainer(reflect.ValueOf(data)) {
		_, err := fmt.Fprintln(w, s.String())
		return err
	}

	var rows [][2]string
	flatten("", reflect.ValueOf(data), &rows)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\n", r[0], r[1])
	}
	return tw.Flush()
}

func isContainer(v reflect.Value) bool {
	for v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v.Kind() == reflect.Struct || v.Kind() == reflect.Map
}

func flatten(prefix string, v reflect.Value, rows *[][2]string) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			*rows = append(*rows, [2]string{prefix, ""})
			return
		}
		v = v.Elem()
	}

	switch {
	case v.Type() == durationType:
		*rows = append(*rows, [2]string{prefix, time.Duration(v.Int()).String()})

	case v.Kind() == reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}
			name := fieldName(field, "yaml")
			if name == "-" {
				continue
			}
			flatten(join(prefix, name), v.Field(i), rows)
		}

	case v.Kind() == reflect.Map:
		keys := v.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		for _, k := range keys {
			flatten(join(prefix, fmt.Sprint(k.Interface())), v.MapIndex(k), rows)
		}

	default:
		*rows = append(*rows, [2]string{prefix, fmt.Sprint(v.Interface())})
	}
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// fieldName returns the tag name for field, or its snake_case Go name.
func fieldName(field reflect.StructField, tag string) string {
	if v := field.Tag.Get(tag); v != "" {
		if name, _, _ := strings.Cut(v, ","); name != "" {
			return name
		}
	}
	return toSnakeCase(field.Name)
}

// toSnakeCase converts CamelCase to snake_case.
func toSnakeCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

package output

import (
	"io"
	"reflect"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// YAMLFormatter formats data as YAML.
type YAMLFormatter struct{}

// Format formats data as YAML. Durations are written in their string
// form ("30s") so the output can be fed back as a config file.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	var node yaml.Node
	if err := node.Encode(data); err != nil {
		return err
	}
	humanizeDurations(&node, reflect.ValueOf(data))

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(&node); err != nil {
		return err
	}
	return encoder.Close()
}

var durationType = reflect.TypeOf(time.Duration(0))

// humanizeDurations rewrites scalar nodes that came from time.Duration
// fields. yaml.v3 encodes durations as integer nanoseconds.
func humanizeDurations(node *yaml.Node, v reflect.Value) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return
		}
		v = v.Elem()
	}
	if !v.IsValid() {
		return
	}
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		humanizeDurations(node.Content[0], v)
		return
	}

	if v.Type() == durationType && node.Kind == yaml.ScalarNode {
		node.Tag = "!!str"
		node.Value = time.Duration(v.Int()).String()
		return
	}

	if v.Kind() != reflect.Struct || node.Kind != yaml.MappingNode {
		return
	}

	t := v.Type()
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		for j := 0; j < t.NumField(); j++ {
			field := t.Field(j)
			if !field.IsExported() || yamlKey(field) != key {
				continue
			}
			humanizeDurations(node.Content[i+1], v.Field(j))
			break
		}
	}
}

// yamlKey returns the mapping key yaml.v3 uses for field.
func yamlKey(field reflect.StructField) string {
	if v := field.Tag.Get("yaml"); v != "" {
		if name, _, _ := strings.Cut(v, ","); name != "" {
			return name
		}
	}
	return strings.ToLower(field.Name)
}

package bridge

import (
	"reflect"
	"strings"
	"sync"
)

// fieldInfo describes one encodable struct field.
type fieldInfo struct {
	name      string
	index     []int
	omitEmpty bool
	optional  bool
}

var fieldCache sync.Map // reflect.Type -> []fieldInfo

// structFields returns the encodable fields of t in declaration order.
// Untagged embedded structs are flattened; the outer field wins on
// name collisions.
func structFields(t reflect.Type) []fieldInfo {
	if cached, ok := fieldCache.Load(t); ok {
		return cached.([]fieldInfo)
	}
	fields := collectFields(t, nil, map[string]bool{})
	actual, _ := fieldCache.LoadOrStore(t, fields)
	return actual.([]fieldInfo)
}

func collectFields(t reflect.Type, prefix []int, seen map[string]bool) []fieldInfo {
	var fields []fieldInfo
	var embedded []reflect.StructField

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		tag, hasTag := sf.Tag.Lookup("value")
		if tag == "-" {
			continue
		}
		if sf.Anonymous && !hasTag && sf.Type.Kind() == reflect.Struct {
			if sf.IsExported() {
				embedded = append(embedded, sf)
			}
			continue
		}
		if !sf.IsExported() {
			continue
		}

		name, opts, _ := strings.Cut(tag, ",")
		if name == "" {
			name = sf.Name
		}
		if seen[name] {
			continue
		}
		seen[name] = true

		fi := fieldInfo{
			name:  name,
			index: append(append([]int(nil), prefix...), i),
		}
		for _, opt := range strings.Split(opts, ",") {
			switch opt {
			case "omitempty":
				fi.omitEmpty = true
				fi.optional = true
			case "optional":
				fi.optional = true
			}
		}
		if sf.Type.Kind() == reflect.Pointer || sf.Type == valueType {
			fi.optional = true
		}
		fields = append(fields, fi)
	}

	for _, sf := range embedded {
		idx := append(append([]int(nil), prefix...), sf.Index...)
		fields = append(fields, collectFields(sf.Type, idx, seen)...)
	}
	return fields
}

// isEmptyValue reports whether v is the zero value for omitempty purposes.
func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Interface, reflect.Pointer:
		return v.IsZero()
	}
	return false
}

package aviary

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// SchemaFor generates a JSON Schema object from a struct type T.
//
// Field names come from json tags, types map to JSON Schema types, and the
// following struct tags refine the schema:
//
//   - desc: property description
//   - required: "true" marks the property as required
//   - enum: comma-separated allowed values for string properties
//
// Example:
//
//	type WeatherArgs struct {
//	    Location string `json:"location" desc:"City to look up" required:"true"`
//	    Date     string `json:"date" desc:"Optional ISO date"`
//	}
func SchemaFor[T any]() (json.RawMessage, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: type %T is not a struct", zero)
	}

	schema, err := structSchema(t)
	if err != nil {
		return nil, err
	}
	return json.Marshal(schema)
}

// MustSchemaFor is like SchemaFor but panics on error.
func MustSchemaFor[T any]() json.RawMessage {
	schema, err := SchemaFor[T]()
	if err != nil {
		panic(err)
	}
	return schema
}

func structSchema(t reflect.Type) (map[string]any, error) {
	properties := make(map[string]any)
	var required []string

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		if jsonTag == "-" {
			continue
		}
		name := strings.Split(jsonTag, ",")[0]
		if name == "" {
			name = field.Name
		}

		prop, err := fieldSchema(field.Type)
		if err != nil {
			return nil, fmt.Errorf("schema: field %s: %w", field.Name, err)
		}

		if desc := field.Tag.Get("desc"); desc != "" {
			prop["description"] = desc
		}
		if enum := field.Tag.Get("enum"); enum != "" {
			values := strings.Split(enum, ",")
			list := make([]any, len(values))
			for i, v := range values {
				list[i] = strings.TrimSpace(v)
			}
			prop["enum"] = list
		}
		if field.Tag.Get("required") == "true" {
			required = append(required, name)
		}

		properties[name] = prop
	}

	schema := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema, nil
}

func fieldSchema(t reflect.Type) (map[string]any, error) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	switch t.Kind() {
	case reflect.String:
		return map[string]any{"type": "string"}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return map[string]any{"type": "integer"}, nil

	case reflect.Float32, reflect.Float64:
		return map[string]any{"type": "number"}, nil

	case reflect.Bool:
		return map[string]any{"type": "boolean"}, nil

	case reflect.Slice, reflect.Array:
		items, err := fieldSchema(t.Elem())
		if err != nil {
			return nil, err
		}
		return map[string]any{"type": "array", "items": items}, nil

	case reflect.Map:
		return map[string]any{"type": "object"}, nil

	case reflect.Struct:
		return structSchema(t)

	default:
		return nil, fmt.Errorf("unsupported kind %s", t.Kind())
	}
}

package registry

import (
	"encoding/json"
	"reflect"
	"strings"
)

// Extra holds the members of a stored record that its Go type does not declare.
// Record types keep it so a whole-document rewrite preserves fields written by other tools.
type Extra map[string]json.RawMessage

// DecodeWithExtra decodes data into v, a pointer to a struct, and returns the object
// members that match none of the struct's JSON field names. It returns nil when there
// are none.
func DecodeWithExtra(data []byte, v any) (Extra, error) {
	if err := json.Unmarshal(data, v); err != nil {
		return nil, err
	}
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}

	known := fieldNames(reflect.TypeOf(v).Elem())
	var extra Extra
	for name, raw := range members {
		if isKnown(known, name) {
			continue
		}
		if extra == nil {
			extra = Extra{}
		}
		extra[name] = raw
	}
	return extra, nil
}

// EncodeWithExtra encodes v, a struct value, adding the members of extra that the struct
// does not declare. Declared fields always win.
func EncodeWithExtra(v any, extra Extra) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil || len(extra) == 0 {
		return data, err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return nil, err
	}
	known := fieldNames(reflect.TypeOf(v))
	for name, raw := range extra {
		if !isKnown(known, name) {
			members[name] = raw
		}
	}
	return json.Marshal(members)
}

// fieldNames lists the JSON member names of struct type t
func fieldNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		switch name {
		case "-":
			continue
		case "":
			name = f.Name
		}
		names = append(names, name)
	}
	return names
}

// isKnown matches case-insensitively, as encoding/json does when decoding
func isKnown(known []string, name string) bool {
	for _, k := range known {
		if strings.EqualFold(k, name) {
			return true
		}
	}
	return false
}

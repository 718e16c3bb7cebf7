package normalize

import (
	"bytes"
	"encoding/json"
	"reflect"
	"sort"
	"strings"
)

// ToStringList converts a stored collection value into an ordered list of strings.
//
// Accepted forms, in priority order: nil, any slice or array, a keyed object,
// a JSON-encoded array or object, comma-separated text and a single scalar string.
// The result is never nil. Slice elements that are nil become "" so positions line
// up with any parallel list; empty CSV segments are dropped.
func ToStringList(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, len(t))
		copy(out, t)
		return out
	case []any:
		return stringifyAll(t)
	case string:
		return fromText(t)
	case []byte:
		return fromText(string(t))
	case *string:
		if t == nil {
			return []string{}
		}
		return fromText(*t)
	case json.RawMessage:
		return fromText(string(t))
	case orderedObject:
		return stringifyAll(t.values)
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
		return fromText(string(rv.Bytes()))
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]string, rv.Len())
		for i := range rv.Len() {
			out[i] = ToString(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return ToString(keys[i].Interface()) < ToString(keys[j].Interface())
		})
		out := make([]string, len(keys))
		for i, k := range keys {
			out[i] = ToString(rv.MapIndex(k).Interface())
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return []string{}
		}
		return ToStringList(rv.Elem().Interface())
	}

	return []string{}
}

func stringifyAll(items []any) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = ToString(item)
	}
	return out
}

func fromText(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}

	if looksLikeJSON(s) {
		if decoded, err := decodeOrdered([]byte(s)); err == nil {
			return ToStringList(decoded)
		}
	}

	if strings.Contains(s, ",") {
		parts := strings.Split(s, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}

	return []string{s}
}

func looksLikeJSON(s string) bool {
	return (strings.HasPrefix(s, "[") && strings.HasSuffix(s, "]")) ||
		(strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}"))
}

// orderedObject holds a JSON object's members in document order.
type orderedObject struct {
	keys   []string
	values []any
}

// MarshalJSON writes the members back in their original order.
func (o orderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		v, err := json.Marshal(o.values[i])
		if err != nil {
			return nil, err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeJSON decodes JSON text the way ToStringList does: numbers stay json.Number and
// objects keep their members in document order.
func DecodeJSON(data []byte) (any, error) {
	return decodeOrdered(data)
}

// decodeOrdered decodes JSON text, keeping object values in the order they appear.
func decodeOrdered(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, &json.SyntaxError{}
	}
	if _, err := dec.Token(); err == nil {
		return nil, &json.SyntaxError{}
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '[':
		items := []any{}
		for dec.More() {
			item, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return items, nil
	case '{':
		obj := orderedObject{keys: []string{}, values: []any{}}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, _ := keyTok.(string)
			item, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.keys = append(obj.keys, key)
			obj.values = append(obj.values, item)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	}

	return nil, &json.SyntaxError{}
}

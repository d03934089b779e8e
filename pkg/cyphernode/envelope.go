package cyphernode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

type envelope struct {
	Result json.RawMessage `json:"result"`
	Error  json.RawMessage `json:"error"`
}

// decodeEnvelope unwraps {"result": T, "error": null}. A populated error
// field wins over any result.
func decodeEnvelope[T any](op string, raw []byte) (*T, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, newError(KindInternal, op, "malformed envelope", err)
	}
	if !isNull(env.Error) {
		return nil, newError(KindGateway, op, gatewayMessage(env.Error), nil)
	}
	if isNull(env.Result) {
		return nil, newError(KindInternal, op, "", ErrEmptyEnvelope)
	}
	return decodeResult[T](op, env.Result)
}

// decodeBare decodes endpoints that answer without the envelope.
func decodeBare[T any](op string, raw []byte) (*T, error) {
	if isNull(raw) {
		return nil, newError(KindInternal, op, "empty response body", nil)
	}
	return decodeResult[T](op, raw)
}

func decodeResult[T any](op string, raw json.RawMessage) (*T, error) {
	var out T
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, newError(KindInternal, op, "failed to decode result", err)
	}
	if err := checkRequired(raw, reflect.TypeOf(out), ""); err != nil {
		return nil, newError(KindInternal, op, "failed to decode result", err)
	}
	return &out, nil
}

func isNull(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

// gatewayMessage normalizes the envelope error field to a string. Most
// endpoints send a plain string, a few send an object.
func gatewayMessage(raw json.RawMessage) string {
	var msg string
	if err := json.Unmarshal(raw, &msg); err == nil {
		return msg
	}

	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.Message != "" {
		return obj.Message
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, raw); err != nil {
		return string(bytes.TrimSpace(raw))
	}
	return compact.String()
}

var (
	unmarshalerType = reflect.TypeOf((*json.Unmarshaler)(nil)).Elem()
	rawMessageType  = reflect.TypeOf(json.RawMessage(nil))
)

// checkRequired walks t alongside raw and fails on the first required
// field that is absent or null. A field is optional when it is a pointer
// or tagged omitempty.
func checkRequired(raw json.RawMessage, t reflect.Type, at string) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType || reflect.PointerTo(t).Implements(unmarshalerType) {
		return nil
	}

	switch t.Kind() {
	case reflect.Struct:
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil
		}
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name, opts, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				continue
			}
			if name == "" && f.Anonymous {
				if err := checkRequired(raw, f.Type, at); err != nil {
					return err
				}
				continue
			}
			if name == "" {
				name = f.Name
			}

			value, ok := fields[name]
			if !ok || isNull(value) {
				if f.Type.Kind() == reflect.Pointer || strings.Contains(opts, "omitempty") {
					continue
				}
				return fmt.Errorf("missing required field %q", at+name)
			}
			if err := checkRequired(value, f.Type, at+name+"."); err != nil {
				return err
			}
		}

	case reflect.Slice, reflect.Array:
		if t.Elem().Kind() == reflect.Uint8 {
			return nil
		}
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		prefix := strings.TrimSuffix(at, ".")
		for i, item := range items {
			if err := checkRequired(item, t.Elem(), fmt.Sprintf("%s[%d].", prefix, i)); err != nil {
				return err
			}
		}

	case reflect.Map:
		var items map[string]json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil
		}
		for k, item := range items {
			if err := checkRequired(item, t.Elem(), at+k+"."); err != nil {
				return err
			}
		}
	}

	return nil
}

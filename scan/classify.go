package scan

import (
	"encoding/json"
	"fmt"
	"strings"
)

const addressPrefix = "0x"

// Classify turns a raw scanned string into exactly one Payload. It never
// panics and never returns nil.
//
// Valid JSON is only accepted as a login action; any other JSON value is
// Invalid. Key/value properties are split on their first ':' so values may
// themselves contain colons.
func Classify(raw string) Payload {
	if raw == "" {
		return Invalid{Raw: raw, Reason: ErrEmpty}
	}

	if json.Valid([]byte(raw)) {
		return classifyJSON(raw)
	}

	if strings.HasPrefix(raw, addressPrefix) {
		return Address{Address: raw}
	}

	return classifyFields(raw)
}

func classifyJSON(raw string) Payload {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return Invalid{Raw: raw, Reason: ErrNotLoginAction}
	}

	var action string
	if err := json.Unmarshal(obj["action"], &action); err != nil || action != "login" {
		return Invalid{Raw: raw, Reason: ErrNotLoginAction}
	}

	return Login{
		ID:    jsonText(obj["id"]),
		Token: jsonText(obj["token"]),
	}
}

// jsonText returns a JSON string's value, or the literal text of any other
// scalar (numeric ids are common). Absent and null become "".
func jsonText(v json.RawMessage) string {
	if len(v) == 0 || string(v) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(v)
}

func classifyFields(raw string) Payload {
	var fields []Field
	index := make(map[string]int)

	for i, property := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(property, ":")
		if !ok {
			return Invalid{Raw: raw, Reason: fmt.Errorf("property %d %q: %w", i, property, ErrMissingSeparator)}
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" {
			return Invalid{Raw: raw, Reason: fmt.Errorf("property %d: %w", i, ErrEmptyKey)}
		}

		if at, seen := index[key]; seen {
			fields[at].Value = value
			continue
		}
		index[key] = len(fields)
		fields = append(fields, Field{Key: key, Value: value})
	}

	name := fields[0].Key
	return Token{
		Name:    name,
		Address: fields[0].Value,
		Fields:  fields,
	}
}

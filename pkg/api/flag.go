package api

import "encoding/json"

// Flag is a boolean decoded from a loosely typed JSON value.
//
// Backends report the error indicator as a bool, a number, a string or an
// object. Any truthy value sets the flag: true, a non-zero number, a
// non-empty string, and any array or object, empty ones included. null and
// an absent field leave it false. Flag always encodes as a JSON bool.
type Flag bool

// UnmarshalJSON implements json.Unmarshaler.
func (f *Flag) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Flag(truthy(v))
	return nil
}

// MarshalJSON implements json.Marshaler.
func (f Flag) MarshalJSON() ([]byte, error) {
	return json.Marshal(bool(f))
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

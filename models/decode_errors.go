package models

import (
	"encoding/json"
	"fmt"
)

// KeyNotFoundError reports a required key that is absent (or null) in a JSON object.
type KeyNotFoundError struct {
	Key string
}

func (e *KeyNotFoundError) Error() string {
	return fmt.Sprintf("required key %q not found", e.Key)
}

// DataCorruptedError reports a present value that breaks a model invariant.
type DataCorruptedError struct {
	Field  string
	Reason string
}

func (e *DataCorruptedError) Error() string {
	return fmt.Sprintf("corrupted value for %q: %s", e.Field, e.Reason)
}

// requireKeys checks that every key is present and non-null in the JSON object.
func requireKeys(data []byte, keys ...string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || string(v) == "null" {
			return &KeyNotFoundError{Key: k}
		}
	}
	return nil
}

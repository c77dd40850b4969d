package httputil

import (
	"bytes"
	"encoding/json"
)

// OptionalString is a nullable id in a partial update body. A view-state
// PATCH sends "currentFolder": null to go back to the root, which a plain
// *string would read the same as leaving the field out.
//
// Present is false when the key is missing, Value is nil for null.
type OptionalString struct {
	Present bool
	Value   *string
}

// UnmarshalJSON only runs for keys present in the body
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Present = true

	if string(bytes.TrimSpace(data)) == "null" {
		o.Value = nil
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Clears reports whether the field was sent as null or ""
func (o OptionalString) Clears() bool {
	return o.Present && (o.Value == nil || *o.Value == "")
}

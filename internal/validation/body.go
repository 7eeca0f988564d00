package validation

import (
	"bytes"
	"encoding/json"
	"math"
)

// object is a decoded JSON body keyed by field name. Keeping the raw values
// lets callers tell an omitted field from an explicit null.
type object map[string]json.RawMessage

// decodeObject parses body as a JSON object, recording a form error when it is
// not one.
func decodeObject(body []byte, ve *ValidationError) (object, bool) {
	if len(bytes.TrimSpace(body)) == 0 {
		ve.AddFormError("Request body is required")
		return nil, false
	}
	var obj object
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		ve.AddFormError("Request body must be a JSON object")
		return nil, false
	}
	return obj, true
}

func (o object) has(field string) bool {
	_, ok := o[field]
	return ok
}

func (o object) isNull(field string) bool {
	raw, ok := o[field]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// str reads a string field. ok is false when the field is absent, null or
// not a string; the last case is recorded on ve.
func (o object) str(field string, ve *ValidationError) (string, bool) {
	if !o.has(field) || o.isNull(field) {
		return "", false
	}
	var s string
	if err := json.Unmarshal(o[field], &s); err != nil {
		ve.AddInvalidTypeError(field, "a string")
		return "", false
	}
	return s, true
}

// integer reads a whole JSON number. Strings holding digits are rejected.
func (o object) integer(field string, ve *ValidationError) (int, bool) {
	if !o.has(field) || o.isNull(field) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(o[field], &f); err != nil {
		ve.AddInvalidTypeError(field, "a number")
		return 0, false
	}
	if f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		ve.AddInvalidValueError(field, f, "must be an integer")
		return 0, false
	}
	return int(f), true
}

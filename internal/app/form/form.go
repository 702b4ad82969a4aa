// Package form turns submitted field values into a typed, validated
// value map for one resource kind. It is the client-side half of the
// validation contract: required fields and numeric coercion are enforced
// here, before any request reaches the record store, which itself
// validates nothing.
package form

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mnogodumalon/kurs40/internal/app/schema"
	"github.com/mnogodumalon/kurs40/internal/pkg/apperrors"
)

// Values is a decoded flat field set. Optional fields left blank are
// present with a nil value so updates clear them server-side. Reference
// fields hold bare record IDs at this stage; re-encoding to record URLs
// happens in the service layer.
type Values map[string]interface{}

// Decode converts a url-encoded form submission into Values for the
// given kind. Unknown keys are ignored; every schema field gets an entry.
func Decode(kind schema.Kind, raw map[string]string) (Values, error) {
	values := make(Values, len(kind.Fields))

	for _, field := range kind.Fields {
		input, ok := raw[field.Key]
		if !ok {
			input = ""
		}

		value, err := decodeField(field, strings.TrimSpace(input))
		if err != nil {
			return nil, err
		}
		values[field.Key] = value
	}

	return values, nil
}

// DecodeJSON converts a JSON field map (API create/update body) into
// Values for the given kind. Numeric fields accept both JSON numbers and
// numeric strings, matching what a form-driven client submits.
func DecodeJSON(kind schema.Kind, raw map[string]interface{}) (Values, error) {
	asStrings := make(map[string]string, len(raw))
	values := make(Values, len(kind.Fields))

	for _, field := range kind.Fields {
		v, ok := raw[field.Key]
		if !ok || v == nil {
			asStrings[field.Key] = ""
			continue
		}

		switch typed := v.(type) {
		case string:
			asStrings[field.Key] = typed
		case bool:
			if typed {
				asStrings[field.Key] = "true"
			}
		case float64:
			asStrings[field.Key] = strconv.FormatFloat(typed, 'f', -1, 64)
		default:
			return nil, apperrors.NewValidationError(field.Key, fmt.Sprintf("unsupported value type %T", v))
		}
	}

	for _, field := range kind.Fields {
		value, err := decodeField(field, strings.TrimSpace(asStrings[field.Key]))
		if err != nil {
			return nil, err
		}
		values[field.Key] = value
	}

	return values, nil
}

// decodeField applies the per-kind editing behavior from the field
// schema: numbers parse to float64 or nil when blank (never NaN),
// booleans to a checked flag, everything else stays a raw string.
func decodeField(field schema.Field, input string) (interface{}, error) {
	if input == "" {
		if field.Kind == schema.Boolean {
			return false, nil
		}
		if field.Required {
			return nil, apperrors.NewValidationError(field.Key, "darf nicht leer sein")
		}
		return nil, nil
	}

	switch field.Kind {
	case schema.Number:
		n, err := strconv.ParseFloat(input, 64)
		// ParseFloat accepts "NaN" and "Inf", neither of which is storable
		// as a JSON number.
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return nil, apperrors.NewValidationError(field.Key, "muss eine Zahl sein")
		}
		return n, nil

	case schema.Boolean:
		// Checkbox submissions arrive as "on"; API bodies as "true".
		return input == "on" || input == "true" || input == "1", nil

	default:
		return input, nil
	}
}

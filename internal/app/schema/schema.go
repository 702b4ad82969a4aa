// Package schema declares the editable field sets of the five resource
// kinds. The descriptors drive everything generic in the system: form
// rendering, submission decoding, reference resolution and the API
// surface are all parameterized by a Kind instead of being written five
// times.
package schema

// FieldKind is the editing behavior of a field.
type FieldKind string

const (
	Text      FieldKind = "text"
	Email     FieldKind = "email"
	Number    FieldKind = "number"
	Date      FieldKind = "date"
	Multiline FieldKind = "multiline"
	Choice    FieldKind = "choice"
	Boolean   FieldKind = "boolean"
)

// Field describes one editable field of a resource kind.
type Field struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Kind     FieldKind `json:"kind"`
	Required bool      `json:"required,omitempty"`

	// Ref names the kind this choice field points at. Reference values
	// are stored as record URLs and edited as bare record IDs.
	Ref string `json:"ref,omitempty"`

	// Fallback is shown when a reference is unset or dangling.
	Fallback string `json:"-"`
}

// IsReference reports whether the field links to another kind.
func (f Field) IsReference() bool {
	return f.Ref != ""
}

// Kind describes one resource kind: its remote collection, its fields and
// how its records are titled.
type Kind struct {
	// Key identifies the kind in URLs, configuration and the catalog.
	Key string
	// Title is the plural display name, Singular the one used in form
	// headings and confirmation prompts.
	Title    string
	Singular string
	// DisplayField names the field used as a record's display name when
	// other kinds reference it.
	DisplayField string
	Fields       []Field
}

// Field looks up a field descriptor by key.
func (k Kind) Field(key string) (Field, bool) {
	for _, f := range k.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// ReferenceFields returns the kind's reference fields in schema order.
func (k Kind) ReferenceFields() []Field {
	var refs []Field
	for _, f := range k.Fields {
		if f.IsReference() {
			refs = append(refs, f)
		}
	}
	return refs
}

package schema

import "testing"

func TestCatalogLookup(t *testing.T) {
	catalog := NewCatalog()

	if got := len(catalog.Kinds()); got != 5 {
		t.Fatalf("len(Kinds) = %d, want 5", got)
	}

	for _, key := range []string{"kurse", "dozenten", "raeume", "teilnehmer", "anmeldungen"} {
		if _, ok := catalog.Get(key); !ok {
			t.Errorf("Get(%q) not found", key)
		}
	}

	if _, ok := catalog.Get("studenten"); ok {
		t.Error("Get(studenten) found, want miss")
	}
}

func TestReferenceFieldsPointAtCatalogKinds(t *testing.T) {
	catalog := NewCatalog()

	for _, kind := range catalog.Kinds() {
		for _, field := range kind.ReferenceFields() {
			refKind, ok := catalog.Get(field.Ref)
			if !ok {
				t.Errorf("%s.%s references unknown kind %q", kind.Key, field.Key, field.Ref)
				continue
			}
			if _, ok := refKind.Field(refKind.DisplayField); !ok {
				t.Errorf("%s display field %q not in its schema", refKind.Key, refKind.DisplayField)
			}
			if field.Fallback == "" {
				t.Errorf("%s.%s has no fallback label", kind.Key, field.Key)
			}
		}
	}
}

func TestDisplayFieldsExist(t *testing.T) {
	for _, kind := range NewCatalog().Kinds() {
		if _, ok := kind.Field(kind.DisplayField); !ok {
			t.Errorf("%s display field %q not in schema", kind.Key, kind.DisplayField)
		}
	}
}

func TestCourseReferences(t *testing.T) {
	kurse, _ := NewCatalog().Get("kurse")

	refs := kurse.ReferenceFields()
	if len(refs) != 2 {
		t.Fatalf("kurse reference fields = %d, want 2", len(refs))
	}
	if refs[0].Key != "dozent" || refs[0].Ref != "dozenten" {
		t.Errorf("first ref = %+v", refs[0])
	}
	if refs[1].Key != "raum" || refs[1].Ref != "raeume" {
		t.Errorf("second ref = %+v", refs[1])
	}
}

package schema

// Catalog holds the resource kinds in tab order.
type Catalog struct {
	kinds []Kind
	byKey map[string]Kind
}

// NewCatalog builds the course-administration catalog. Field keys are the
// wire field names of the remote collections and must not be renamed.
func NewCatalog() *Catalog {
	kinds := []Kind{
		{
			Key:          "kurse",
			Title:        "Kurse",
			Singular:     "Kurs",
			DisplayField: "titel",
			Fields: []Field{
				{Key: "titel", Label: "Titel", Kind: Text, Required: true},
				{Key: "beschreibung", Label: "Beschreibung", Kind: Multiline},
				{Key: "startdatum", Label: "Startdatum", Kind: Date, Required: true},
				{Key: "enddatum", Label: "Enddatum", Kind: Date, Required: true},
				{Key: "max_teilnehmer", Label: "Max. Teilnehmer", Kind: Number},
				{Key: "preis", Label: "Preis (€)", Kind: Number},
				{Key: "dozent", Label: "Dozent", Kind: Choice, Ref: "dozenten", Fallback: "Nicht zugewiesen"},
				{Key: "raum", Label: "Raum", Kind: Choice, Ref: "raeume", Fallback: "Kein Raum"},
			},
		},
		{
			Key:          "dozenten",
			Title:        "Dozenten",
			Singular:     "Dozent",
			DisplayField: "name",
			Fields: []Field{
				{Key: "name", Label: "Name", Kind: Text, Required: true},
				{Key: "email", Label: "E-Mail", Kind: Email, Required: true},
				{Key: "telefon", Label: "Telefon", Kind: Text},
				{Key: "fachgebiet", Label: "Fachgebiet", Kind: Text},
			},
		},
		{
			Key:          "raeume",
			Title:        "Räume",
			Singular:     "Raum",
			DisplayField: "raumname",
			Fields: []Field{
				{Key: "raumname", Label: "Raumname", Kind: Text, Required: true},
				{Key: "gebaeude", Label: "Gebäude", Kind: Text},
				{Key: "kapazitaet", Label: "Kapazität", Kind: Number},
			},
		},
		{
			Key:          "teilnehmer",
			Title:        "Teilnehmer",
			Singular:     "Teilnehmer",
			DisplayField: "name",
			Fields: []Field{
				{Key: "name", Label: "Name", Kind: Text, Required: true},
				{Key: "email", Label: "E-Mail", Kind: Email, Required: true},
				{Key: "telefon", Label: "Telefon", Kind: Text},
				{Key: "geburtsdatum", Label: "Geburtsdatum", Kind: Date},
			},
		},
		{
			Key:          "anmeldungen",
			Title:        "Anmeldungen",
			Singular:     "Anmeldung",
			DisplayField: "anmeldedatum",
			Fields: []Field{
				{Key: "teilnehmer", Label: "Teilnehmer", Kind: Choice, Ref: "teilnehmer", Required: true, Fallback: "Unbekannt"},
				{Key: "kurs", Label: "Kurs", Kind: Choice, Ref: "kurse", Required: true, Fallback: "Unbekannt"},
				{Key: "anmeldedatum", Label: "Anmeldedatum", Kind: Date, Required: true},
				{Key: "bezahlt", Label: "Bezahlt", Kind: Boolean},
			},
		},
	}

	byKey := make(map[string]Kind, len(kinds))
	for _, k := range kinds {
		byKey[k.Key] = k
	}

	return &Catalog{kinds: kinds, byKey: byKey}
}

// Kinds returns the kinds in tab order.
func (c *Catalog) Kinds() []Kind {
	return c.kinds
}

// Get looks up a kind by its key.
func (c *Catalog) Get(key string) (Kind, bool) {
	k, ok := c.byKey[key]
	return k, ok
}

package dto

// Option is one selectable entry of a reference choice field.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// RecordView is a record prepared for display: raw stored fields plus the
// resolved display names of its reference fields.
type RecordView struct {
	RecordID string                 `json:"record_id"`
	Fields   map[string]interface{} `json:"fields"`
	// Display maps reference field keys to resolved display names
	// ("Nicht zugewiesen" / "Unbekannt" when unset or dangling).
	Display map[string]string `json:"display,omitempty"`
}

// ListView is everything a tab needs to render: the kind's records and
// the option lists for its reference fields, keyed by field key.
type ListView struct {
	Kind    string              `json:"kind"`
	Records []RecordView        `json:"records"`
	Options map[string][]Option `json:"options,omitempty"`
}

// EditView is a record prepared for the entity form: reference fields are
// rewritten from record URLs to bare identifiers so choice controls can
// match them against their option lists.
type EditView struct {
	RecordID string                 `json:"record_id"`
	Fields   map[string]interface{} `json:"fields"`
}

// SaveRecordRequest is the create/update body of the JSON API. Values are
// flat form output; coercion and reference re-encoding happen server-side.
type SaveRecordRequest struct {
	Fields map[string]interface{} `json:"fields" binding:"required"`
}

// StatCount is one entry of the dashboard stats row.
type StatCount struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Count int    `json:"count"`
}

// DashboardStats holds the per-kind record counts in tab order.
type DashboardStats struct {
	Counts []StatCount `json:"counts"`
}

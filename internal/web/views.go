package web

import (
	"fmt"
	"strconv"

	"github.com/mnogodumalon/kurs40/internal/app/models/dto"
	"github.com/mnogodumalon/kurs40/internal/app/schema"
)

// page is the data shared by every rendered page: the tab strip and the
// stats row. Both are rebuilt from the remote store on each render;
// nothing is cached between requests.
type page struct {
	Title  string
	Active string
	Kinds  []schema.Kind
	Stats  []dto.StatCount
}

// tabPage renders one resource tab as a table.
type tabPage struct {
	page
	Kind    schema.Kind
	Columns []string
	Rows    []tableRow
}

type tableRow struct {
	RecordID string
	Cells    []string
}

// formPage renders the entity form for create or edit.
type formPage struct {
	page
	Kind    schema.Kind
	Heading string
	Action  string
	Fields  []fieldView
	Error   string
}

// fieldView is one form control, precomputed so the template stays dumb.
type fieldView struct {
	schema.Field
	Value   string
	Checked bool
	Options []optionView
}

type optionView struct {
	Value    string
	Label    string
	Selected bool
}

// confirmPage renders the delete confirmation dialog.
type confirmPage struct {
	page
	Kind     schema.Kind
	RecordID string
	Display  string
	Error    string
}

// tableRows flattens a list view into display cells following the kind's
// field order. Reference cells use the resolved display names.
func tableRows(kind schema.Kind, view *dto.ListView) []tableRow {
	rows := make([]tableRow, 0, len(view.Records))
	for _, record := range view.Records {
		row := tableRow{RecordID: record.RecordID, Cells: make([]string, 0, len(kind.Fields))}
		for _, field := range kind.Fields {
			row.Cells = append(row.Cells, cellText(field, record))
		}
		rows = append(rows, row)
	}
	return rows
}

func cellText(field schema.Field, record dto.RecordView) string {
	if field.IsReference() {
		return record.Display[field.Key]
	}

	value := record.Fields[field.Key]
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return typed
	case bool:
		if typed {
			return "Ja"
		}
		return "Nein"
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", typed)
	}
}

// formFields builds the form controls for a kind, seeded from the given
// value map (empty for create, the edit view's fields for edit, the
// rejected submission for a failed save).
func formFields(kind schema.Kind, values map[string]interface{}, options map[string][]dto.Option) []fieldView {
	fields := make([]fieldView, 0, len(kind.Fields))
	for _, field := range kind.Fields {
		fv := fieldView{Field: field}

		switch typed := values[field.Key].(type) {
		case string:
			fv.Value = typed
		case bool:
			fv.Checked = typed
		case float64:
			fv.Value = strconv.FormatFloat(typed, 'f', -1, 64)
		}

		for _, opt := range options[field.Key] {
			fv.Options = append(fv.Options, optionView{
				Value:    opt.Value,
				Label:    opt.Label,
				Selected: opt.Value == fv.Value,
			})
		}

		fields = append(fields, fv)
	}
	return fields
}

package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnogodumalon/kurs40/internal/app/form"
	"github.com/mnogodumalon/kurs40/internal/app/schema"
	"github.com/mnogodumalon/kurs40/internal/livingapps"
	"github.com/mnogodumalon/kurs40/internal/pkg/apperrors"
)

const testBaseURL = "https://my.living-apps.de/rest"

// fakeStore is an in-memory RecordStore keyed by app ID. It records
// mutation calls so tests can assert the exact payload sent upstream.
type fakeStore struct {
	lists   map[string][]livingapps.Record
	listErr map[string]error

	created map[string][]livingapps.Fields
	updated map[string]livingapps.Fields
	deleted []string

	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lists:   make(map[string][]livingapps.Record),
		listErr: make(map[string]error),
		created: make(map[string][]livingapps.Fields),
		updated: make(map[string]livingapps.Fields),
	}
}

func (f *fakeStore) ListRecords(_ context.Context, appID string) ([]livingapps.Record, error) {
	if err := f.listErr[appID]; err != nil {
		return nil, err
	}
	return f.lists[appID], nil
}

func (f *fakeStore) CreateRecord(_ context.Context, appID string, fields livingapps.Fields) (*livingapps.Record, error) {
	f.created[appID] = append(f.created[appID], fields)
	f.nextID++
	return &livingapps.Record{RecordID: fmt.Sprintf("new%d", f.nextID), Fields: fields}, nil
}

func (f *fakeStore) UpdateRecord(_ context.Context, appID, recordID string, fields livingapps.Fields) (*livingapps.Record, error) {
	f.updated[appID+"/"+recordID] = fields
	return &livingapps.Record{RecordID: recordID, Fields: fields}, nil
}

func (f *fakeStore) DeleteRecord(_ context.Context, appID, recordID string) error {
	f.deleted = append(f.deleted, appID+"/"+recordID)
	return nil
}

func (f *fakeStore) BaseURL() string { return testBaseURL }

func testAppIDs() map[string]string {
	return map[string]string{
		"dozenten":    "app-dozenten",
		"raeume":      "app-raeume",
		"teilnehmer":  "app-teilnehmer",
		"kurse":       "app-kurse",
		"anmeldungen": "app-anmeldungen",
	}
}

func newTestService(store *fakeStore) ResourceService {
	return NewResourceService(store, schema.NewCatalog(), testAppIDs(), zerolog.Nop())
}

func seedCourseWorld(store *fakeStore) {
	store.lists["app-dozenten"] = []livingapps.Record{
		{RecordID: "d1", Fields: map[string]interface{}{"name": "Dr. Weber"}},
	}
	store.lists["app-raeume"] = []livingapps.Record{
		{RecordID: "r1", Fields: map[string]interface{}{"raumname": "A101"}},
	}
	store.lists["app-kurse"] = []livingapps.Record{
		{RecordID: "k1", Fields: map[string]interface{}{
			"titel":  "Go Basics",
			"dozent": livingapps.RecordURL(testBaseURL, "app-dozenten", "d1"),
			"raum":   livingapps.RecordURL(testBaseURL, "app-raeume", "r1"),
		}},
		{RecordID: "k2", Fields: map[string]interface{}{
			"titel":  "Rust Basics",
			"dozent": livingapps.RecordURL(testBaseURL, "app-dozenten", "d-gone"),
			"raum":   nil,
		}},
	}
}

func TestListResolvesReferenceDisplayNames(t *testing.T) {
	store := newFakeStore()
	seedCourseWorld(store)
	svc := newTestService(store)

	view, err := svc.List(context.Background(), "kurse")
	require.NoError(t, err)
	require.Len(t, view.Records, 2)

	assert.Equal(t, "Dr. Weber", view.Records[0].Display["dozent"])
	assert.Equal(t, "A101", view.Records[0].Display["raum"])

	// Dangling and null references fall back to labels, never errors.
	assert.Equal(t, "Nicht zugewiesen", view.Records[1].Display["dozent"])
	assert.Equal(t, "Kein Raum", view.Records[1].Display["raum"])
}

func TestListBuildsOptionsFromReferencedKinds(t *testing.T) {
	store := newFakeStore()
	seedCourseWorld(store)
	svc := newTestService(store)

	view, err := svc.List(context.Background(), "kurse")
	require.NoError(t, err)

	require.Len(t, view.Options["dozent"], 1)
	assert.Equal(t, "d1", view.Options["dozent"][0].Value)
	assert.Equal(t, "Dr. Weber", view.Options["dozent"][0].Label)
	require.Len(t, view.Options["raum"], 1)
	assert.Equal(t, "r1", view.Options["raum"][0].Value)
}

func TestListWithoutReferencesHasNoOptions(t *testing.T) {
	store := newFakeStore()
	store.lists["app-dozenten"] = []livingapps.Record{
		{RecordID: "d1", Fields: map[string]interface{}{"name": "Dr. Weber"}},
	}
	svc := newTestService(store)

	view, err := svc.List(context.Background(), "dozenten")
	require.NoError(t, err)
	assert.Nil(t, view.Options)
	assert.Empty(t, view.Records[0].Display)
}

func TestListUnknownKind(t *testing.T) {
	svc := newTestService(newFakeStore())

	_, err := svc.List(context.Background(), "studenten")
	assert.ErrorIs(t, err, apperrors.ErrUnknownKind)
}

func TestListPropagatesFetchFailure(t *testing.T) {
	store := newFakeStore()
	seedCourseWorld(store)
	store.listErr["app-raeume"] = apperrors.NewTransportError(errors.New("connection refused"))
	svc := newTestService(store)

	_, err := svc.List(context.Background(), "kurse")
	assert.ErrorIs(t, err, apperrors.ErrTransport)
}

func TestGetForEditRewritesReferencesToBareIDs(t *testing.T) {
	store := newFakeStore()
	seedCourseWorld(store)
	svc := newTestService(store)

	view, err := svc.GetForEdit(context.Background(), "kurse", "k1")
	require.NoError(t, err)

	assert.Equal(t, "k1", view.RecordID)
	assert.Equal(t, "d1", view.Fields["dozent"])
	assert.Equal(t, "r1", view.Fields["raum"])
	assert.Equal(t, "Go Basics", view.Fields["titel"])
}

func TestGetForEditNullReferenceStaysNil(t *testing.T) {
	store := newFakeStore()
	seedCourseWorld(store)
	svc := newTestService(store)

	view, err := svc.GetForEdit(context.Background(), "kurse", "k2")
	require.NoError(t, err)
	assert.Nil(t, view.Fields["raum"])
	assert.Nil(t, view.Fields["dozent"])
}

func TestGetForEditMissingRecord(t *testing.T) {
	store := newFakeStore()
	seedCourseWorld(store)
	svc := newTestService(store)

	_, err := svc.GetForEdit(context.Background(), "kurse", "k99")
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestCreateEncodesReferencesAsRecordURLs(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	record, err := svc.Create(context.Background(), "kurse", form.Values{
		"titel":          "Go Basics",
		"startdatum":     "2026-02-01",
		"enddatum":       "2026-03-01",
		"max_teilnehmer": float64(12),
		"dozent":         "d1",
		"raum":           nil,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, record.RecordID)

	require.Len(t, store.created["app-kurse"], 1)
	sent := store.created["app-kurse"][0]
	assert.Equal(t, testBaseURL+"/apps/app-dozenten/records/d1", sent["dozent"])
	assert.Nil(t, sent["raum"])
	assert.Equal(t, float64(12), sent["max_teilnehmer"])
}

func TestUpdateReencodesReferences(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	_, err := svc.Update(context.Background(), "anmeldungen", "a1", form.Values{
		"teilnehmer":   "t1",
		"kurs":         "k1",
		"anmeldedatum": "2026-01-15",
		"bezahlt":      true,
	})
	require.NoError(t, err)

	sent := store.updated["app-anmeldungen/a1"]
	require.NotNil(t, sent)
	assert.Equal(t, testBaseURL+"/apps/app-teilnehmer/records/t1", sent["teilnehmer"])
	assert.Equal(t, testBaseURL+"/apps/app-kurse/records/k1", sent["kurs"])
	assert.Equal(t, true, sent["bezahlt"])
}

func TestDeletePassesThroughToStore(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	require.NoError(t, svc.Delete(context.Background(), "raeume", "r1"))
	assert.Equal(t, []string{"app-raeume/r1"}, store.deleted)
}

func TestDeleteUnknownKind(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store)

	err := svc.Delete(context.Background(), "studenten", "r1")
	assert.ErrorIs(t, err, apperrors.ErrUnknownKind)
	assert.Empty(t, store.deleted)
}

package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mnogodumalon/kurs40/internal/app/form"
	"github.com/mnogodumalon/kurs40/internal/app/models/dto"
	"github.com/mnogodumalon/kurs40/internal/app/schema"
	"github.com/mnogodumalon/kurs40/internal/livingapps"
	"github.com/mnogodumalon/kurs40/internal/pkg/apperrors"
)

// RecordStore is the slice of the record store client the services use.
type RecordStore interface {
	ListRecords(ctx context.Context, appID string) ([]livingapps.Record, error)
	CreateRecord(ctx context.Context, appID string, fields livingapps.Fields) (*livingapps.Record, error)
	UpdateRecord(ctx context.Context, appID, recordID string, fields livingapps.Fields) (*livingapps.Record, error)
	DeleteRecord(ctx context.Context, appID, recordID string) error
	BaseURL() string
}

// ResourceService defines the list/edit/persist cycle shared by all
// resource kinds. One implementation serves every kind, parameterized by
// the schema catalog; there is no per-kind code.
type ResourceService interface {
	List(ctx context.Context, kindKey string) (*dto.ListView, error)
	GetForEdit(ctx context.Context, kindKey, recordID string) (*dto.EditView, error)
	Create(ctx context.Context, kindKey string, values form.Values) (*livingapps.Record, error)
	Update(ctx context.Context, kindKey, recordID string, values form.Values) (*livingapps.Record, error)
	Delete(ctx context.Context, kindKey, recordID string) error
}

// resourceServiceImpl implements the ResourceService interface
type resourceServiceImpl struct {
	store   RecordStore
	catalog *schema.Catalog
	appIDs  map[string]string
	logger  zerolog.Logger
}

// NewResourceService creates a new resource service instance
func NewResourceService(store RecordStore, catalog *schema.Catalog, appIDs map[string]string, logger zerolog.Logger) ResourceService {
	return &resourceServiceImpl{
		store:   store,
		catalog: catalog,
		appIDs:  appIDs,
		logger:  logger,
	}
}

func (s *resourceServiceImpl) kind(kindKey string) (schema.Kind, error) {
	kind, ok := s.catalog.Get(kindKey)
	if !ok {
		return schema.Kind{}, fmt.Errorf("%w: %s", apperrors.ErrUnknownKind, kindKey)
	}
	return kind, nil
}

func (s *resourceServiceImpl) appID(kindKey string) (string, error) {
	id, ok := s.appIDs[kindKey]
	if !ok {
		return "", fmt.Errorf("%w: no app ID configured for %s", apperrors.ErrUnknownKind, kindKey)
	}
	return id, nil
}

// List fetches the kind's full collection plus the collections it
// references, resolves reference display names and builds the option
// lists for the entity form. The fetches run concurrently and unordered;
// assembly happens only after all of them finished.
func (s *resourceServiceImpl) List(ctx context.Context, kindKey string) (*dto.ListView, error) {
	kind, err := s.kind(kindKey)
	if err != nil {
		return nil, err
	}

	lists, err := s.fetchLists(ctx, kind)
	if err != nil {
		return nil, err
	}

	view := &dto.ListView{
		Kind:    kind.Key,
		Records: make([]dto.RecordView, 0, len(lists[kind.Key])),
	}

	refFields := kind.ReferenceFields()
	if len(refFields) > 0 {
		view.Options = make(map[string][]dto.Option, len(refFields))
		for _, field := range refFields {
			view.Options[field.Key] = optionList(s.catalog, field, lists[field.Ref])
		}
	}

	for _, record := range lists[kind.Key] {
		rv := dto.RecordView{
			RecordID: record.RecordID,
			Fields:   record.Fields,
		}
		if len(refFields) > 0 {
			rv.Display = make(map[string]string, len(refFields))
			for _, field := range refFields {
				rv.Display[field.Key] = s.resolveDisplay(field, record.Fields[field.Key], lists[field.Ref])
			}
		}
		view.Records = append(view.Records, rv)
	}

	return view, nil
}

// fetchLists loads the kind's own collection and every referenced
// collection in one concurrent round.
func (s *resourceServiceImpl) fetchLists(ctx context.Context, kind schema.Kind) (map[string][]livingapps.Record, error) {
	keys := []string{kind.Key}
	for _, field := range kind.ReferenceFields() {
		if field.Ref != kind.Key {
			keys = append(keys, field.Ref)
		}
	}

	results := make([][]livingapps.Record, len(keys))
	g, gctx := errgroup.WithContext(ctx)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			appID, err := s.appID(key)
			if err != nil {
				return err
			}
			records, err := s.store.ListRecords(gctx, appID)
			if err != nil {
				return fmt.Errorf("listing %s: %w", key, err)
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lists := make(map[string][]livingapps.Record, len(keys))
	for i, key := range keys {
		lists[key] = results[i]
	}
	return lists, nil
}

// resolveDisplay turns a stored reference value into a display name by
// decoding the record URL and scanning the referenced list. A null,
// malformed or dangling reference yields the field's fallback label;
// broken references are a display concern, never an error.
func (s *resourceServiceImpl) resolveDisplay(field schema.Field, value interface{}, refList []livingapps.Record) string {
	url, _ := value.(string)
	id, ok := livingapps.ExtractRecordID(url)
	if !ok {
		return field.Fallback
	}

	refKind, _ := s.catalog.Get(field.Ref)
	for _, record := range refList {
		if record.RecordID != id {
			continue
		}
		if name, ok := record.Fields[refKind.DisplayField].(string); ok && name != "" {
			return name
		}
		return field.Fallback
	}
	return field.Fallback
}

// optionList builds the choice options for a reference field, keyed by
// bare record IDs so edit pre-selection can match them.
func optionList(catalog *schema.Catalog, field schema.Field, refList []livingapps.Record) []dto.Option {
	refKind, _ := catalog.Get(field.Ref)
	options := make([]dto.Option, 0, len(refList))
	for _, record := range refList {
		label, _ := record.Fields[refKind.DisplayField].(string)
		options = append(options, dto.Option{Value: record.RecordID, Label: label})
	}
	return options
}

// GetForEdit locates a record and rewrites its reference fields from
// record URLs to bare identifiers, the shape the entity form edits.
func (s *resourceServiceImpl) GetForEdit(ctx context.Context, kindKey, recordID string) (*dto.EditView, error) {
	kind, err := s.kind(kindKey)
	if err != nil {
		return nil, err
	}
	appID, err := s.appID(kindKey)
	if err != nil {
		return nil, err
	}

	records, err := s.store.ListRecords(ctx, appID)
	if err != nil {
		return nil, err
	}

	for _, record := range records {
		if record.RecordID != recordID {
			continue
		}

		fields := make(map[string]interface{}, len(record.Fields))
		for k, v := range record.Fields {
			fields[k] = v
		}
		for _, field := range kind.ReferenceFields() {
			url, _ := fields[field.Key].(string)
			if id, ok := livingapps.ExtractRecordID(url); ok {
				fields[field.Key] = id
			} else {
				fields[field.Key] = nil
			}
		}
		return &dto.EditView{RecordID: record.RecordID, Fields: fields}, nil
	}

	return nil, fmt.Errorf("%w: %s/%s", apperrors.ErrResourceNotFound, kindKey, recordID)
}

// Create persists a new record from validated form values.
func (s *resourceServiceImpl) Create(ctx context.Context, kindKey string, values form.Values) (*livingapps.Record, error) {
	kind, err := s.kind(kindKey)
	if err != nil {
		return nil, err
	}
	appID, err := s.appID(kindKey)
	if err != nil {
		return nil, err
	}

	fields, err := s.encodeReferences(kind, values)
	if err != nil {
		return nil, err
	}

	record, err := s.store.CreateRecord(ctx, appID, fields)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("kind", kindKey).Str("recordId", record.RecordID).Msg("Record created")
	return record, nil
}

// Update persists the full validated field set for an existing record.
func (s *resourceServiceImpl) Update(ctx context.Context, kindKey, recordID string, values form.Values) (*livingapps.Record, error) {
	kind, err := s.kind(kindKey)
	if err != nil {
		return nil, err
	}
	appID, err := s.appID(kindKey)
	if err != nil {
		return nil, err
	}

	fields, err := s.encodeReferences(kind, values)
	if err != nil {
		return nil, err
	}

	record, err := s.store.UpdateRecord(ctx, appID, recordID, fields)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("kind", kindKey).Str("recordId", recordID).Msg("Record updated")
	return record, nil
}

// Delete removes a record. Confirmation is the caller's obligation; by
// the time this runs the destructive call is wanted.
func (s *resourceServiceImpl) Delete(ctx context.Context, kindKey, recordID string) error {
	appID, err := s.appID(kindKey)
	if err != nil {
		return err
	}
	if _, err := s.kind(kindKey); err != nil {
		return err
	}

	if err := s.store.DeleteRecord(ctx, appID, recordID); err != nil {
		return err
	}
	s.logger.Info().Str("kind", kindKey).Str("recordId", recordID).Msg("Record deleted")
	return nil
}

// encodeReferences rewrites bare identifiers chosen in the form back into
// record URLs, the inverse of the edit rewrite. Unchosen optional
// references stay nil.
func (s *resourceServiceImpl) encodeReferences(kind schema.Kind, values form.Values) (livingapps.Fields, error) {
	fields := make(livingapps.Fields, len(values))
	for k, v := range values {
		fields[k] = v
	}

	for _, field := range kind.ReferenceFields() {
		raw := fields[field.Key]
		if raw == nil {
			continue
		}
		id, ok := raw.(string)
		if !ok || id == "" {
			fields[field.Key] = nil
			continue
		}
		refAppID, err := s.appID(field.Ref)
		if err != nil {
			return nil, err
		}
		fields[field.Key] = livingapps.RecordURL(s.store.BaseURL(), refAppID, id)
	}

	return fields, nil
}

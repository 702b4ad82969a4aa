package services

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mnogodumalon/kurs40/internal/app/models/dto"
	"github.com/mnogodumalon/kurs40/internal/app/schema"
	"github.com/mnogodumalon/kurs40/internal/pkg/apperrors"
)

// DashboardService provides the record counts for the stats row.
type DashboardService interface {
	Counts(ctx context.Context) (*dto.DashboardStats, error)
}

// dashboardServiceImpl implements the DashboardService interface
type dashboardServiceImpl struct {
	store   RecordStore
	catalog *schema.Catalog
	appIDs  map[string]string
}

// NewDashboardService creates a new dashboard service instance
func NewDashboardService(store RecordStore, catalog *schema.Catalog, appIDs map[string]string) DashboardService {
	return &dashboardServiceImpl{
		store:   store,
		catalog: catalog,
		appIDs:  appIDs,
	}
}

// Counts fetches all five collections concurrently and returns their
// sizes in tab order. The fetches are unordered; only the assembled
// result is ordered.
func (s *dashboardServiceImpl) Counts(ctx context.Context) (*dto.DashboardStats, error) {
	kinds := s.catalog.Kinds()
	counts := make([]dto.StatCount, len(kinds))

	g, gctx := errgroup.WithContext(ctx)
	for i, kind := range kinds {
		i, kind := i, kind
		g.Go(func() error {
			appID, ok := s.appIDs[kind.Key]
			if !ok {
				return fmt.Errorf("%w: no app ID configured for %s", apperrors.ErrUnknownKind, kind.Key)
			}
			records, err := s.store.ListRecords(gctx, appID)
			if err != nil {
				return fmt.Errorf("counting %s: %w", kind.Key, err)
			}
			counts[i] = dto.StatCount{Kind: kind.Key, Title: kind.Title, Count: len(records)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardStats{Counts: counts}, nil
}

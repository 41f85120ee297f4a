// Package directory provides the aggregated bookstore directory use cases.
// It merges user-registered entries with records fetched from the public
// directory API into an in-memory snapshot, and serves listing and search
// queries from that snapshot.
package directory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"bookmap/internal/common/pagination"
	"bookmap/internal/domain/entity"
	"bookmap/internal/observability/metrics"
	"bookmap/internal/repository"
)

const defaultPageSize = 417

// Fetcher retrieves one page of bookstore records from the public directory.
// Implementations never fail: on any error they return an empty slice so a
// directory outage degrades the listing instead of breaking it.
type Fetcher interface {
	FetchPage(ctx context.Context, pageNo, numOfRows int) []*entity.Bookstore
}

// Service aggregates bookstore records from both sources and answers
// directory queries from the latest snapshot.
type Service struct {
	Fetcher  Fetcher
	Repo     repository.BookstoreRepository
	Logger   *slog.Logger
	PageSize int // records requested per directory page; defaults to the full directory size

	mu       sync.RWMutex
	snapshot []*entity.Bookstore
	builtAt  time.Time
}

// PaginatedResult represents one page of the aggregated directory.
type PaginatedResult struct {
	Data       []*entity.Bookstore
	Pagination pagination.Metadata
}

// Refresh rebuilds the snapshot. Both sources are queried concurrently;
// user-registered entries always precede directory records in the result.
// A directory failure yields an empty external slice (fail-soft), while a
// repository failure aborts the refresh and keeps the previous snapshot.
func (s *Service) Refresh(ctx context.Context) error {
	start := time.Now()

	var external, users []*entity.Bookstore
	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		external = s.Fetcher.FetchPage(egCtx, 1, s.pageSize())
		return nil
	})
	eg.Go(func() error {
		var err error
		users, err = s.Repo.ListAll(egCtx)
		if err != nil {
			return fmt.Errorf("list user bookstores: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	merged := make([]*entity.Bookstore, 0, len(users)+len(external))
	merged = append(merged, users...)
	merged = append(merged, external...)

	s.mu.Lock()
	s.snapshot = merged
	s.builtAt = time.Now()
	s.mu.Unlock()

	metrics.RecordSnapshotRefresh(time.Since(start), len(merged))
	metrics.UpdateUserBookstoresTotal(len(users))

	s.logger().Info("directory snapshot rebuilt",
		slog.Int("user_entries", len(users)),
		slog.Int("directory_records", len(external)),
		slog.Duration("duration", time.Since(start)))
	return nil
}

// List returns one page of the aggregated directory.
// The snapshot is built lazily on the first call.
func (s *Service) List(ctx context.Context, params pagination.Params) (*PaginatedResult, error) {
	stores, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return paginate(stores, params), nil
}

// Search returns one page of entries whose name, address, or category
// contains the query, compared case-insensitively. An empty query matches
// everything.
func (s *Service) Search(ctx context.Context, query string, params pagination.Params) (*PaginatedResult, error) {
	stores, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	metrics.RecordSearch()
	return paginate(Filter(stores, query), params), nil
}

// Age reports how long ago the snapshot was built. Zero when no snapshot
// exists yet.
func (s *Service) Age() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.builtAt.IsZero() {
		return 0
	}
	return time.Since(s.builtAt)
}

// all returns the current snapshot, building it first if none exists.
// Callers must not mutate the returned slice.
func (s *Service) all(ctx context.Context) ([]*entity.Bookstore, error) {
	s.mu.RLock()
	snap, built := s.snapshot, !s.builtAt.IsZero()
	s.mu.RUnlock()
	if built {
		return snap, nil
	}

	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot, nil
}

func (s *Service) pageSize() int {
	if s.PageSize > 0 {
		return s.PageSize
	}
	return defaultPageSize
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func paginate(stores []*entity.Bookstore, params pagination.Params) *PaginatedResult {
	strategy := pagination.OffsetStrategy{}
	q := strategy.CalculateQuery(params)

	page := []*entity.Bookstore{}
	if q.Offset < len(stores) {
		end := q.Offset + q.Limit
		if end > len(stores) {
			end = len(stores)
		}
		page = stores[q.Offset:end]
	}

	return &PaginatedResult{
		Data:       page,
		Pagination: strategy.BuildMetadata(params, int64(len(stores)), false),
	}
}

package dashboard

import (
	"context"

	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/querycache"
)

// CacheKey is the cache key of the dashboard summary. Mutations that change
// the counts invalidate it along with their own keys.
const CacheKey = "dashboard"

type Service interface {
	Summary(ctx context.Context, client backend.Getter) (*Summary, error)
}

type service struct {
	cache *querycache.Cache
}

func NewService(cache *querycache.Cache) Service {
	return &service{cache: cache}
}

func (s *service) Summary(ctx context.Context, client backend.Getter) (*Summary, error) {
	summary, err := querycache.Fetch(ctx, s.cache, CacheKey, func(ctx context.Context) (*Summary, error) {
		var out Summary
		if err := client.Get(ctx, "/api/admin/dashboard", &out); err != nil {
			return nil, err
		}
		return &out, nil
	})
	if err != nil {
		return nil, backend.FetchFailure(err, "dashboard")
	}
	return summary, nil
}

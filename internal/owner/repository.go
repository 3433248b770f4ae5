package owner

import (
	"context"
	"net/url"

	"github.com/cargorental/admin-dashboard/internal/backend"
)

// Repository reads owners from the backend.
type Repository interface {
	List(ctx context.Context, client backend.Getter) ([]Owner, error)
	GetByID(ctx context.Context, client backend.Getter, id string) (*Owner, error)
}

type apiRepository struct{}

func NewAPIRepository() Repository {
	return apiRepository{}
}

func (apiRepository) List(ctx context.Context, client backend.Getter) ([]Owner, error) {
	var owners []Owner
	if err := client.Get(ctx, "/api/admin/owners", &owners); err != nil {
		return nil, err
	}
	return owners, nil
}

func (apiRepository) GetByID(ctx context.Context, client backend.Getter, id string) (*Owner, error) {
	var o Owner
	if err := client.Get(ctx, "/api/admin/owners/"+url.PathEscape(id), &o); err != nil {
		return nil, err
	}
	return &o, nil
}

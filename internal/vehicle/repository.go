package vehicle

import (
	"context"
	"net/url"

	"github.com/cargorental/admin-dashboard/internal/backend"
)

// Repository reads vehicles from the backend.
type Repository interface {
	List(ctx context.Context, client backend.Getter) ([]Car, error)
	GetByID(ctx context.Context, client backend.Getter, id string) (*Car, error)
}

type apiRepository struct{}

// NewAPIRepository creates a Repository backed by the admin REST API.
func NewAPIRepository() Repository {
	return apiRepository{}
}

func (apiRepository) List(ctx context.Context, client backend.Getter) ([]Car, error) {
	var cars []Car
	if err := client.Get(ctx, "/api/admin/vehicles", &cars); err != nil {
		return nil, err
	}
	return cars, nil
}

func (apiRepository) GetByID(ctx context.Context, client backend.Getter, id string) (*Car, error) {
	var car Car
	if err := client.Get(ctx, "/api/admin/vehicles/"+url.PathEscape(id), &car); err != nil {
		return nil, err
	}
	return &car, nil
}

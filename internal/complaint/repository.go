package complaint

import (
	"context"

	"github.com/cargorental/admin-dashboard/internal/backend"
)

type Repository interface {
	List(ctx context.Context, client backend.Getter) ([]Complaint, error)
}

type apiRepository struct{}

func NewAPIRepository() Repository {
	return apiRepository{}
}

func (apiRepository) List(ctx context.Context, client backend.Getter) ([]Complaint, error) {
	var complaints []Complaint
	if err := client.Get(ctx, "/api/admin/complaints", &complaints); err != nil {
		return nil, err
	}
	return complaints, nil
}

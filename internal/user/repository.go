package user

import (
	"context"

	"github.com/cargorental/admin-dashboard/internal/backend"
)

// Repository reads users from the backend.
type Repository interface {
	List(ctx context.Context, client backend.Getter) ([]User, error)
}

type apiRepository struct{}

func NewAPIRepository() Repository {
	return apiRepository{}
}

func (apiRepository) List(ctx context.Context, client backend.Getter) ([]User, error) {
	var users []User
	if err := client.Get(ctx, "/api/admin/users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

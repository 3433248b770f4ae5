package user

import (
	"context"
	"strconv"
	"time"

	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/listing"
	"github.com/cargorental/admin-dashboard/internal/querycache"
)

const CollectionKey = "users"

// ListSpec declares the users list. The category tabs are roles.
var ListSpec = listing.Spec[User]{
	PageSize: 20,
	Status:   func(u User) string { return string(u.Role) },
	SearchFields: []func(User) string{
		func(u User) string { return u.FirstName },
		func(u User) string { return u.LastName },
		func(u User) string { return u.Email },
		func(u User) string { return u.PhoneNo },
	},
	DateFields: []func(User) *time.Time{
		func(u User) *time.Time { return u.CreatedAt.Ptr() },
	},
}

type Service interface {
	List(ctx context.Context, client backend.Getter) ([]User, error)
	GetByID(ctx context.Context, client backend.Getter, id string) (*User, error)
}

type service struct {
	repo  Repository
	cache *querycache.Cache
}

func NewService(repo Repository, cache *querycache.Cache) Service {
	return &service{repo: repo, cache: cache}
}

func (s *service) List(ctx context.Context, client backend.Getter) ([]User, error) {
	users, err := querycache.Fetch(ctx, s.cache, CollectionKey, func(ctx context.Context) ([]User, error) {
		return s.repo.List(ctx, client)
	})
	if err != nil {
		return nil, backend.FetchFailure(err, "users")
	}
	return users, nil
}

// GetByID looks the user up in the cached users list; the backend has no
// single-user admin endpoint.
func (s *service) GetByID(ctx context.Context, client backend.Getter, id string) (*User, error) {
	want, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil, ErrNotFound
	}

	users, err := s.List(ctx, client)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == want {
			u := users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

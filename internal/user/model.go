package user

import (
	"net/http"

	"github.com/cargorental/admin-dashboard/internal/backend"
	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
)

var ErrNotFound = apperror.Fetch(nil, http.StatusNotFound, "user not found")

// Role tells renters and rental owners apart.
type Role string

const (
	RoleRentee Role = "rentee"
	RoleOwner  Role = "owner"
)

// User is a marketplace account as the backend returns it.
type User struct {
	ID                int64        `json:"id"`
	FirstName         string       `json:"first_name"`
	LastName          string       `json:"last_name"`
	Email             string       `json:"email"`
	PhoneNo           string       `json:"phone_no"`
	Role              Role         `json:"role"`
	Status            string       `json:"status"`
	ProfileFileFolder string       `json:"profile_file_folder"`
	ProfilePicKey     string       `json:"profile_pic_key"`
	BirthDate         backend.Time `json:"birth_date"`
	CreatedAt         backend.Time `json:"created_at"`
}

func (u User) Name() string {
	return format.FullName(u.FirstName, u.LastName)
}

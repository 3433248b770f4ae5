package http

import (
	"strconv"

	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/request"
	"github.com/cargorental/admin-dashboard/internal/user"
)

// ListUsersRequest defines query parameters for the users list. Category
// selects a role.
type ListUsersRequest struct {
	request.ListParams
}

// UserTag is the minimal user representation shown in list rows.
type UserTag struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	DetailPath string `json:"detail_path"`
}

type UserListItem struct {
	UserTag
	Role     string `json:"role"`
	JoinedAt string `json:"joined_at"`
}

func NewUserListItem(v format.View, u user.User) UserListItem {
	return UserListItem{
		UserTag: UserTag{
			ID:         u.ID,
			Name:       u.Name(),
			AvatarURL:  v.Image(u.ProfileFileFolder, u.ProfilePicKey),
			DetailPath: "/users/" + strconv.FormatInt(u.ID, 10),
		},
		Role:     string(u.Role),
		JoinedAt: v.ShortDateTime(u.CreatedAt.Time),
	}
}

type UserResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	PhoneNo   string `json:"phone_no"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	AvatarURL string `json:"avatar_url,omitempty"`
	BirthDate string `json:"birth_date"`
	JoinedAt  string `json:"joined_at"`
}

func NewUserResponse(v format.View, u *user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Name:      u.Name(),
		Email:     u.Email,
		PhoneNo:   u.PhoneNo,
		Role:      string(u.Role),
		Status:    u.Status,
		AvatarURL: v.Image(u.ProfileFileFolder, u.ProfilePicKey),
		BirthDate: v.Date(u.BirthDate.Time),
		JoinedAt:  v.Date(u.CreatedAt.Time),
	}
}

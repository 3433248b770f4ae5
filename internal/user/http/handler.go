package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cargorental/admin-dashboard/internal/export"
	"github.com/cargorental/admin-dashboard/internal/listing"
	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/request"
	"github.com/cargorental/admin-dashboard/internal/pkg/response"
	"github.com/cargorental/admin-dashboard/internal/session"
	"github.com/cargorental/admin-dashboard/internal/user"
)

var errNoClient = apperror.New(http.StatusUnauthorized, "login required")

type UserHandler struct {
	userService user.Service
	view        format.View
}

func NewHandler(userService user.Service, view format.View) *UserHandler {
	return &UserHandler{
		userService: userService,
		view:        view,
	}
}

func (h *UserHandler) filtered(c *gin.Context) ([]user.User, listing.State, bool) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, "invalid query parameters", err)
		return nil, listing.State{}, false
	}

	client := session.Client(c)
	if client == nil {
		response.Error(c, errNoClient)
		return nil, listing.State{}, false
	}

	users, err := h.userService.List(c.Request.Context(), client)
	if err != nil {
		response.Error(c, err)
		return nil, listing.State{}, false
	}
	return users, req.State("", h.view.Loc()), true
}

// List returns one page of the filtered users list.
func (h *UserHandler) List(c *gin.Context) {
	users, state, ok := h.filtered(c)
	if !ok {
		return
	}

	page := listing.VisiblePage(users, user.ListSpec, state.Filter, state.Page, h.view.Loc())
	c.JSON(http.StatusOK, response.NewListResponse(page, state.Filter, nil, func(u user.User) UserListItem {
		return NewUserListItem(h.view, u)
	}))
}

// Export downloads the filtered users list as XLSX.
func (h *UserHandler) Export(c *gin.Context) {
	users, state, ok := h.filtered(c)
	if !ok {
		return
	}

	table := export.Table{
		Sheet:   "Users",
		Headers: []string{"ID", "First Name", "Last Name", "Email", "Phone", "Role", "Status", "Joined"},
		Widths:  map[int]float64{1: 18, 2: 18, 3: 30, 4: 18, 7: 22},
	}
	for _, u := range listing.Filtered(users, user.ListSpec, state.Filter, h.view.Loc()) {
		table.Rows = append(table.Rows, []any{
			u.ID, u.FirstName, u.LastName, u.Email, u.PhoneNo, string(u.Role), u.Status,
			h.view.ShortDateTime(u.CreatedAt.Time),
		})
	}

	if err := export.Respond(c, "users", table); err != nil {
		response.Error(c, err)
	}
}

// Get returns the details of a specific user.
func (h *UserHandler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		response.BindError(c, "invalid request", err)
		return
	}

	client := session.Client(c)
	if client == nil {
		response.Error(c, errNoClient)
		return
	}

	u, err := h.userService.GetByID(c.Request.Context(), client, req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewUserResponse(h.view, u))
}

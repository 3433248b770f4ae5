package http

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cargorental/admin-dashboard/internal/dashboard"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/testutil"
	"github.com/cargorental/admin-dashboard/internal/querycache"
)

func setup(t *testing.T) (*testutil.FakeBackend, *querycache.Cache, http.Handler) {
	t.Helper()
	be := testutil.NewFakeBackend(t)
	cache := querycache.New(querycache.Options{StaleTime: time.Minute}, zap.NewNop())
	h := NewHandler(dashboard.NewService(cache), format.View{Location: time.UTC, MediaEndpoint: "https://cdn.example.com"})

	r := testutil.NewRouter()
	RegisterRoutes(r.Group(""), h, testutil.WithSession(be.Factory(), "tok"))
	return be, cache, r
}

func TestGet(t *testing.T) {
	be, _, r := setup(t)

	bookings := make([]map[string]any, 0, 12)
	for i := 1; i <= 12; i++ {
		bookings = append(bookings, map[string]any{
			"id":         i,
			"status":     "PENDING",
			"created_at": "2025-05-01T14:05:00Z",
			"car": map[string]any{
				"car_brand":  "Toyota",
				"car_model":  "Innova",
				"car_year":   2022,
				"car_images": []map[string]any{{"file_folder": "cars", "image_name": fmt.Sprintf("%d.jpg", i)}},
				"owner":      map[string]any{"car_rental_name": "Juan Rentals"},
			},
			"user": map[string]any{"first_name": "Maria", "last_name": "Cruz"},
		})
	}
	be.Handle(http.MethodGet, "/api/admin/dashboard", http.StatusOK, map[string]any{
		"rentee":   []map[string]any{{"id": 1}, {"id": 2}, {"id": 3}},
		"owner":    []map[string]any{{"id": 4}},
		"cars":     []map[string]any{},
		"bookings": bookings,
	})

	w := testutil.ExecuteRequest(r, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := testutil.DecodeJSON[DashboardResponse](t, w)
	assert.Equal(t, dashboard.Counts{Rentees: 3, Owners: 1, Cars: 0, Bookings: 12}, resp.Counts)
	require.Len(t, resp.RecentBookings, dashboard.RecentLimit)

	first := resp.RecentBookings[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "Toyota Innova", first.CarName)
	assert.Equal(t, "Juan Rentals", first.RentalName)
	assert.Equal(t, "Maria Cruz", first.RenterName)
	assert.Equal(t, "May 1, 2025 2:05 PM", first.CreatedAt)
	assert.Equal(t, "https://cdn.example.com/cars/1.jpg", first.CarImageURL)
}

func TestGet_MissingArraysCountAsZero(t *testing.T) {
	be, _, r := setup(t)
	be.Handle(http.MethodGet, "/api/admin/dashboard", http.StatusOK, map[string]any{})

	w := testutil.ExecuteRequest(r, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := testutil.DecodeJSON[DashboardResponse](t, w)
	assert.Equal(t, dashboard.Counts{}, resp.Counts)
	assert.NotNil(t, resp.RecentBookings)
	assert.Contains(t, w.Body.String(), `"recent_bookings":[]`)
}

func TestGet_RefetchAfterInvalidate(t *testing.T) {
	be, cache, r := setup(t)
	be.Handle(http.MethodGet, "/api/admin/dashboard", http.StatusOK, map[string]any{"owner": []int{1}})

	testutil.ExecuteRequest(r, http.MethodGet, "/dashboard", nil)
	testutil.ExecuteRequest(r, http.MethodGet, "/dashboard", nil)
	require.Len(t, be.Calls(http.MethodGet, "/api/admin/dashboard"), 1)

	cache.Invalidate(dashboard.CacheKey)
	be.Handle(http.MethodGet, "/api/admin/dashboard", http.StatusOK, map[string]any{"owner": []int{1, 2}})

	w := testutil.ExecuteRequest(r, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, testutil.DecodeJSON[DashboardResponse](t, w).Counts.Owners)
	assert.Len(t, be.Calls(http.MethodGet, "/api/admin/dashboard"), 2)
}

func TestGet_TimeStaleServedWhileRefetching(t *testing.T) {
	be := testutil.NewFakeBackend(t)
	cache := querycache.New(querycache.Options{}, zap.NewNop())
	r := testutil.NewRouter()
	RegisterRoutes(r.Group(""), NewHandler(dashboard.NewService(cache), format.View{Location: time.UTC}), testutil.WithSession(be.Factory(), "tok"))
	be.Handle(http.MethodGet, "/api/admin/dashboard", http.StatusOK, map[string]any{"owner": []int{1}})

	testutil.ExecuteRequest(r, http.MethodGet, "/dashboard", nil)
	be.Handle(http.MethodGet, "/api/admin/dashboard", http.StatusOK, map[string]any{"owner": []int{1, 2}})

	w := testutil.ExecuteRequest(r, http.MethodGet, "/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, testutil.DecodeJSON[DashboardResponse](t, w).Counts.Owners)

	assert.Eventually(t, func() bool {
		return len(be.Calls(http.MethodGet, "/api/admin/dashboard")) == 2 && !cache.State(dashboard.CacheKey).Fetching
	}, time.Second, 10*time.Millisecond)
}

func TestGet_BackendDown(t *testing.T) {
	be, _, r := setup(t)
	be.Handle(http.MethodGet, "/api/admin/dashboard", http.StatusServiceUnavailable, map[string]string{"message": "maintenance"})

	w := testutil.ExecuteRequest(r, http.MethodGet, "/dashboard", nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "maintenance")
}

package http

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cargorental/admin-dashboard/internal/complaint"
	"github.com/cargorental/admin-dashboard/internal/pkg/format"
	"github.com/cargorental/admin-dashboard/internal/pkg/response"
	"github.com/cargorental/admin-dashboard/internal/pkg/testutil"
	"github.com/cargorental/admin-dashboard/internal/querycache"
)

func setup(t *testing.T) (*testutil.FakeBackend, http.Handler) {
	t.Helper()
	be := testutil.NewFakeBackend(t)
	cache := querycache.New(querycache.Options{StaleTime: time.Minute}, zap.NewNop())
	h := NewHandler(complaint.NewService(complaint.NewAPIRepository(), cache), format.View{Location: time.UTC})

	r := testutil.NewRouter()
	RegisterRoutes(r.Group(""), h, testutil.WithSession(be.Factory(), "tok"))
	return be, r
}

func complaints(n int) []map[string]any {
	out := make([]map[string]any, 0, n)
	for i := 1; i <= n; i++ {
		kind, status := "vehicle", "PENDING"
		if i%2 == 0 {
			kind, status = "payment", "RESOLVED"
		}
		out = append(out, map[string]any{
			"id":               i,
			"reference_number": fmt.Sprintf("CP-%03d", i),
			"complaint_type":   kind,
			"subject":          "Issue " + fmt.Sprint(i),
			"description":      "Aircon not working",
			"status":           status,
			"created_at":       "2025-04-01T09:30:00Z",
			"user":             map[string]any{"id": i, "first_name": "Liza", "last_name": "Reyes", "role": "rentee"},
		})
	}
	return out
}

func TestList(t *testing.T) {
	be, r := setup(t)
	be.Handle(http.MethodGet, "/api/admin/complaints", http.StatusOK, complaints(40))

	tests := []struct {
		name      string
		query     string
		wantTotal int
		wantItems int
		wantPage  int
	}{
		{"all", "", 40, 15, 1},
		{"category", "?category=resolved", 20, 15, 1},
		{"category last page", "?category=resolved&page=2", 20, 5, 2},
		{"type", "?type=vehicle", 20, 15, 1},
		{"search subject", "?search=issue+1", 11, 11, 1},
		{"search and category", "?search=issue+1&category=pending", 6, 6, 1},
		{"page beyond range", "?page=99", 40, 10, 3},
		{"date", "?date=2025-04-01", 40, 15, 1},
		{"other date", "?date=2025-04-02", 0, 0, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := testutil.ExecuteRequest(r, http.MethodGet, "/complaints"+tt.query, nil)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			resp := testutil.DecodeJSON[response.ListResponse[ComplaintResponse]](t, w)
			assert.Equal(t, tt.wantTotal, resp.Total)
			assert.Len(t, resp.Items, tt.wantItems)
			assert.Equal(t, tt.wantPage, resp.Page)
		})
	}
}

func TestList_ItemView(t *testing.T) {
	be, r := setup(t)
	be.Handle(http.MethodGet, "/api/admin/complaints", http.StatusOK, complaints(1))

	w := testutil.ExecuteRequest(r, http.MethodGet, "/complaints", nil)
	require.Equal(t, http.StatusOK, w.Code)

	resp := testutil.DecodeJSON[response.ListResponse[ComplaintResponse]](t, w)
	require.Len(t, resp.Items, 1)
	item := resp.Items[0]
	assert.Equal(t, "Liza Reyes", item.FiledBy)
	assert.Equal(t, "rentee", item.FiledByRole)
	assert.Equal(t, "Pending", item.StatusLabel)
	assert.Equal(t, "Apr 1, 2025 9:30 AM", item.CreatedAt)
	assert.Equal(t, "all", resp.Filter.Category)
}

func TestExport(t *testing.T) {
	be, r := setup(t)
	be.Handle(http.MethodGet, "/api/admin/complaints", http.StatusOK, complaints(3))

	w := testutil.ExecuteRequest(r, http.MethodGet, "/complaints/export?type=payment", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "complaints_")
}

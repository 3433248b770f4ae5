package export

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleTable() Table {
	return Table{
		Sheet:   "Bookings",
		Headers: []string{"Reference", "Vehicle", "Total"},
		Rows: [][]any{
			{"BK-1", "Toyota Vios", 2500},
			{"BK-2", "Honda City", 3100},
		},
		Widths: map[int]float64{1: 30},
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTable()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bookings")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Reference", "Vehicle", "Total"}, rows[0])
	assert.Equal(t, []string{"BK-2", "Honda City", "3100"}, rows[2])
}

func TestWrite_EmptyTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, Table{Sheet: "Users", Headers: []string{"Name"}}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Users")
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/bookings/export", nil)

	require.NoError(t, Respond(c, "bookings", sampleTable()))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bookings_")
	assert.NotZero(t, w.Body.Len())
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "owners_2025-03-10.xlsx", FileName("owners", time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)))
}

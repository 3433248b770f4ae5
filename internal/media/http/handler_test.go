package http

import (
	"bytes"
	"image/color"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/cargorental/admin-dashboard/internal/media"
	"github.com/cargorental/admin-dashboard/internal/pkg/response"
	"github.com/cargorental/admin-dashboard/internal/pkg/storage"
	"github.com/cargorental/admin-dashboard/internal/pkg/testutil"
)

func setup(t *testing.T) http.Handler {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, imaging.Encode(buf, imaging.New(640, 480, color.White), imaging.PNG))
	src := buf.Bytes()

	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/car_images/1.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(src)
	}))
	t.Cleanup(origin.Close)

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	be := testutil.NewFakeBackend(t)
	r := testutil.NewRouter()
	RegisterRoutes(r.Group(""), NewMediaHandler(media.NewService(origin.URL, store, zap.NewNop())), testutil.WithSession(be.Factory(), "tok"))
	return r
}

func TestThumbnail(t *testing.T) {
	r := setup(t)

	w := testutil.ExecuteRequest(r, http.MethodGet, "/media/thumbnail?folder=car_images&name=1.png", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "image/jpeg", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Cache-Control"), "max-age")

	img, err := imaging.Decode(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, media.ThumbnailSize, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}

func TestThumbnail_BadQuery(t *testing.T) {
	r := setup(t)

	w := testutil.ExecuteRequest(r, http.MethodGet, "/media/thumbnail?folder=car_images", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, media.ErrInvalidPath.Message, testutil.DecodeJSON[response.ErrorResponse](t, w).Error)
}

func TestThumbnail_Missing(t *testing.T) {
	r := setup(t)

	w := testutil.ExecuteRequest(r, http.MethodGet, "/media/thumbnail?folder=car_images&name=2.png", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// Package media serves small renditions of the images and documents stored
// in the marketplace's object storage (cars, owner and vehicle documents).
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/cargorental/admin-dashboard/internal/pkg/apperror"
	"github.com/cargorental/admin-dashboard/internal/pkg/storage"
)

const (
	ThumbnailSize = 320

	// maxSourceSize caps how much of an original is downloaded.
	maxSourceSize = 20 << 20
	fetchTimeout  = 20 * time.Second
)

var (
	ErrInvalidPath      = apperror.Validation("folder and name must name a single stored file")
	ErrNotConfigured    = apperror.New(http.StatusServiceUnavailable, "media endpoint is not configured")
	ErrSourceNotFound   = apperror.Fetch(nil, http.StatusNotFound, "image not found")
	ErrSourceNotAnImage = apperror.Fetch(nil, http.StatusUnprocessableEntity, "file is not an image")
)

// Service fetches originals from the media endpoint, scales them down and
// keeps the result in a local store. Concurrent requests for one file share a
// single download.
type Service struct {
	endpoint string
	client   *http.Client
	store    storage.Storage
	images   *storage.ImageProcessor
	group    singleflight.Group
	logger   *zap.Logger
}

func NewService(endpoint string, store storage.Storage, logger *zap.Logger) *Service {
	return &Service{
		endpoint: strings.TrimRight(endpoint, "/"),
		client: &http.Client{
			Timeout:   fetchTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		store:  store,
		images: storage.NewImageProcessor(80),
		logger: logger,
	}
}

// objectPath validates folder and name and joins them. Folders may be nested;
// names are a single segment.
func objectPath(folder, name string) (string, error) {
	folder = strings.Trim(folder, "/")
	if folder == "" || name == "" || strings.ContainsAny(name, `/\`) {
		return "", ErrInvalidPath
	}
	for _, seg := range strings.Split(folder+"/"+name, "/") {
		if seg == "" || seg == "." || seg == ".." || strings.Contains(seg, `\`) {
			return "", ErrInvalidPath
		}
	}
	return folder + "/" + name, nil
}

func cachePath(object string) string {
	return path.Join("thumbs", object) + ".jpg"
}

// Thumbnail returns a JPEG no larger than ThumbnailSize on either side.
func (s *Service) Thumbnail(ctx context.Context, folder, name string) ([]byte, error) {
	object, err := objectPath(folder, name)
	if err != nil {
		return nil, err
	}
	key := cachePath(object)

	if data, ok := s.cached(ctx, key); ok {
		return data, nil
	}
	if s.endpoint == "" {
		return nil, ErrNotConfigured
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		// The download outlives any single caller.
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), fetchTimeout)
		defer cancel()

		src, err := s.download(fetchCtx, object)
		if err != nil {
			return nil, err
		}
		thumb, err := s.images.GenerateThumbnail(bytes.NewReader(src), ThumbnailSize, ThumbnailSize)
		if err != nil {
			return nil, apperror.Fetch(err, ErrSourceNotAnImage.Code, ErrSourceNotAnImage.Message)
		}
		if err := s.store.Save(fetchCtx, key, bytes.NewReader(thumb)); err != nil {
			s.logger.Warn("failed to cache thumbnail", zap.String("path", key), zap.Error(err))
		}
		return thumb, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]byte), nil
}

func (s *Service) cached(ctx context.Context, key string) ([]byte, bool) {
	r, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("failed to read cached thumbnail", zap.String("path", key), zap.Error(err))
		}
		return nil, false
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		s.logger.Warn("failed to read cached thumbnail", zap.String("path", key), zap.Error(err))
		return nil, false
	}
	return data, true
}

func (s *Service) download(ctx context.Context, object string) ([]byte, error) {
	segs := strings.Split(object, "/")
	for i, seg := range segs {
		segs[i] = url.PathEscape(seg)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"/"+strings.Join(segs, "/"), nil)
	if err != nil {
		return nil, fmt.Errorf("build media request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, apperror.Fetch(err, http.StatusGatewayTimeout, "timed out loading image")
		}
		return nil, apperror.Fetch(err, http.StatusBadGateway, "failed to load image")
	}
	defer resp.Body.Close()

	switch {
	// Spaces answers 403 rather than 404 for missing objects.
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusForbidden:
		return nil, ErrSourceNotFound
	case resp.StatusCode >= 300:
		return nil, apperror.Fetch(fmt.Errorf("media endpoint returned %s", resp.Status), http.StatusBadGateway, "failed to load image")
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxSourceSize+1))
	if err != nil {
		return nil, apperror.Fetch(err, http.StatusBadGateway, "failed to load image")
	}
	if len(data) > maxSourceSize {
		return nil, apperror.Fetch(nil, http.StatusUnprocessableEntity, "image is too large")
	}
	return data, nil
}

package assets

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"artbridge/internal/domain/creation"
)

type testEnv struct {
	service  *Service
	repo     creation.Repository
	upstream *httptest.Server
	requests *atomic.Int64
	baseDir  string
}

// newTestEnv wires a real fetcher against a fake upstream that serves JPEG-ish
// bytes for every path except /broken/* (500) and /missing/* (404).
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{DriverName: "sqlite", DSN: dsn}),
		&gorm.Config{},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&creation.Prompt{}, &creation.GalleryItem{}))

	var requests atomic.Int64
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch {
		case filepath.Dir(r.URL.Path) == "/broken":
			w.WriteHeader(http.StatusInternalServerError)
		case filepath.Dir(r.URL.Path) == "/missing":
			w.WriteHeader(http.StatusNotFound)
		case filepath.Dir(r.URL.Path) == "/html":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html>error page</html>"))
		case filepath.Dir(r.URL.Path) == "/huge":
			w.Header().Set("Content-Type", "image/jpeg")
			chunk := bytes.Repeat([]byte("x"), 1<<20)
			for written := 0; written <= maxAssetSize; written += len(chunk) {
				if _, err := w.Write(chunk); err != nil {
					return
				}
			}
		default:
			w.Header().Set("Content-Type", "image/jpeg")
			_, _ = w.Write([]byte("fake-jpeg-bytes-" + r.URL.Path))
		}
	}))
	t.Cleanup(upstream.Close)

	repo := creation.NewRepository(db)
	baseDir := t.TempDir()
	service := NewService(repo, NewFetcher(5*time.Second), baseDir, PublicURLBase)

	return &testEnv{service: service, repo: repo, upstream: upstream, requests: &requests, baseDir: baseDir}
}

func (e *testEnv) createItem(t *testing.T, imageURL string, allImages []string) *creation.GalleryItem {
	t.Helper()
	meta := datatypes.JSONMap{}
	if len(allImages) > 0 {
		meta[creation.MetaAllImages] = allImages
	}
	item := &creation.GalleryItem{
		ID:          uuid.NewString(),
		Title:       "test item",
		ImageURL:    imageURL,
		Metadata:    meta,
		MediaType:   creation.MediaTypeImage,
		StorageMode: creation.StorageModeURL,
	}
	require.NoError(t, e.repo.CreateItem(context.Background(), item))
	return item
}

func TestDownloadPrimaryAndAlternates(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	primary := env.upstream.URL + "/img/main.jpg"
	item := env.createItem(t, primary, []string{
		primary, // duplicate of the primary, skipped
		env.upstream.URL + "/img/alt-a.jpg",
		env.upstream.URL + "/img/alt-b.jpg",
	})

	result, err := env.service.Download(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, result.Downloaded)
	assert.False(t, result.AlreadyCached)
	assert.Equal(t, PublicURLBase+"/"+item.ID+"/main.jpg", result.LocalPath)

	for _, name := range []string{"main.jpg", "2.jpg", "3.jpg"} {
		_, err := os.Stat(filepath.Join(env.baseDir, item.ID, name))
		assert.NoError(t, err, name)
	}

	stored, err := env.repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, creation.StorageModeBoth, stored.StorageMode)
	require.NotNil(t, stored.LocalPath)
	assert.Equal(t, result.LocalPath, *stored.LocalPath)

	local := stored.Metadata[creation.MetaLocalImages]
	require.NotNil(t, local)
	assert.Len(t, local, 3)
}

func TestDownloadIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	item := env.createItem(t, env.upstream.URL+"/img/one.jpg", nil)

	first, err := env.service.Download(ctx, item.ID)
	require.NoError(t, err)
	require.Equal(t, 1, first.Downloaded)
	fetched := env.requests.Load()

	second, err := env.service.Download(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, second.AlreadyCached)
	assert.Equal(t, 0, second.Downloaded)
	assert.Equal(t, first.LocalPath, second.LocalPath)

	// No further network I/O on the second call.
	assert.Equal(t, fetched, env.requests.Load())
}

func TestDownloadPrimaryFailureAborts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	item := env.createItem(t, env.upstream.URL+"/broken/main.jpg", []string{
		env.upstream.URL + "/img/alt.jpg",
	})

	_, err := env.service.Download(ctx, item.ID)
	assert.ErrorIs(t, err, ErrUpstreamFetch)

	stored, err := env.repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, creation.StorageModeURL, stored.StorageMode)
	assert.Nil(t, stored.LocalPath)
	assert.NotContains(t, stored.Metadata, creation.MetaLocalImages)
}

func TestDownloadAlternateFailureIsBestEffort(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	item := env.createItem(t, env.upstream.URL+"/img/main.jpg", []string{
		env.upstream.URL + "/missing/alt.jpg",
		env.upstream.URL + "/img/good-alt.jpg",
	})

	result, err := env.service.Download(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Downloaded)

	stored, err := env.repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, creation.StorageModeBoth, stored.StorageMode)
	assert.Len(t, stored.Metadata[creation.MetaLocalImages], 2)
}

func TestDownloadPrimaryContentTypeMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	item := env.createItem(t, env.upstream.URL+"/html/main.jpg", nil)

	_, err := env.service.Download(ctx, item.ID)
	assert.ErrorIs(t, err, ErrUpstreamFetch)

	stored, err := env.repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, creation.StorageModeURL, stored.StorageMode)
}

func TestDownloadOversizeAssetRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	item := env.createItem(t, env.upstream.URL+"/huge/main.jpg", nil)

	_, err := env.service.Download(ctx, item.ID)
	assert.ErrorIs(t, err, ErrUpstreamFetch)

	// Nothing cached, nothing persisted.
	_, err = os.Stat(filepath.Join(env.baseDir, item.ID))
	assert.True(t, os.IsNotExist(err))
	stored, err := env.repo.GetItem(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, creation.StorageModeURL, stored.StorageMode)
	assert.Nil(t, stored.LocalPath)
}

func TestDownloadUnknownItem(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.service.Download(context.Background(), "nonexistent-xyz")
	assert.ErrorIs(t, err, creation.ErrItemNotFound)
}

func TestDownloadItemWithoutRemoteMedia(t *testing.T) {
	env := newTestEnv(t)
	item := env.createItem(t, "", nil)
	_, err := env.service.Download(context.Background(), item.ID)
	assert.ErrorIs(t, err, ErrNoRemoteMedia)
}

func TestResolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	item := env.createItem(t, env.upstream.URL+"/img/main.jpg", nil)
	_, err := env.service.Download(ctx, item.ID)
	require.NoError(t, err)

	path, err := env.service.Resolve(item.ID, "main.jpg")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	_, err = env.service.Resolve(item.ID, "ghost.jpg")
	assert.ErrorIs(t, err, ErrFileNotFound)

	// Traversal attempts are flattened to the base name.
	_, err = env.service.Resolve(item.ID, "../../etc/passwd")
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestResolveRejectsDotSegments(t *testing.T) {
	env := newTestEnv(t)

	// A file one level above the downloads root must stay unreachable even
	// though ".." survives filepath.Base unchanged.
	secret := filepath.Join(env.baseDir, "..", "secret.env")
	require.NoError(t, os.WriteFile(secret, []byte("DATABASE_URL=postgres://x"), 0644))

	for _, seg := range []struct{ id, name string }{
		{"..", "secret.env"},
		{".", "secret.env"},
		{"..", ".."},
		{"item", ".."},
		{"item", "."},
	} {
		_, err := env.service.Resolve(seg.id, seg.name)
		assert.ErrorIs(t, err, ErrFileNotFound, "id=%q name=%q", seg.id, seg.name)
	}
}

func TestDownloadStats(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	cached := env.createItem(t, env.upstream.URL+"/img/a.jpg", nil)
	env.createItem(t, env.upstream.URL+"/img/b.jpg", nil)

	_, err := env.service.Download(ctx, cached.ID)
	require.NoError(t, err)

	st, err := env.service.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, st.Total-st.Local, st.Pending)
	assert.Equal(t, 1, st.Local)
}

func TestExtensionFor(t *testing.T) {
	cases := []struct {
		contentType string
		url         string
		want        string
	}{
		{"image/jpeg", "https://x/a", ".jpg"},
		{"image/png", "https://x/a", ".png"},
		{"image/webp", "https://x/a", ".webp"},
		{"video/mp4", "https://x/a", ".mp4"},
		{"text/html", "https://x/a.gif", ".gif"},
		{"", "https://x/a.png?w=100", ".png"},
		{"", "https://x/a", ".jpg"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, extensionFor(tc.contentType, tc.url), "%s %s", tc.contentType, tc.url)
	}
}

package assets

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/datatypes"

	"artbridge/internal/domain/creation"
)

const (
	DownloadsBaseDir = "./downloads"
	PublicURLBase    = "/api/downloads"
)

// Service mirrors a gallery item's remote media into a per-item local
// directory and serves the cached files back.
type Service struct {
	repo       creation.Repository
	fetcher    Fetcher
	baseDir    string // root of the per-item directory tree
	publicBase string // URL prefix stored in local_path / local_images
}

func NewService(repo creation.Repository, fetcher Fetcher, baseDir, publicBase string) *Service {
	if baseDir == "" {
		baseDir = DownloadsBaseDir
	}
	if publicBase == "" {
		publicBase = PublicURLBase
	}
	return &Service{repo: repo, fetcher: fetcher, baseDir: baseDir, publicBase: publicBase}
}

// DownloadResult reports what one Download call did.
type DownloadResult struct {
	Downloaded    int    `json:"downloaded"`
	LocalPath     string `json:"local_path"`
	AlreadyCached bool   `json:"already_cached"`
}

// DownloadStats are derived storage counts over the gallery collection.
type DownloadStats struct {
	Total   int `json:"total"`
	Local   int `json:"local"`
	Pending int `json:"pending"`
}

// Download fetches the item's remote media into <baseDir>/<itemID>/.
// The primary asset lands in main.<ext>; alternates from metadata.all_images
// follow as 2.<ext>, 3.<ext>, ... in list order. A primary failure aborts the
// whole operation; alternate failures are logged and skipped. Re-running
// against an already-cached item is a no-op. A concurrent duplicate call
// overwrites the same target files with the same bytes, so the race is
// self-correcting.
func (s *Service) Download(ctx context.Context, itemID string) (*DownloadResult, error) {
	item, err := s.repo.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.StorageMode.HasLocal() {
		localPath := ""
		if item.LocalPath != nil {
			localPath = *item.LocalPath
		}
		return &DownloadResult{Downloaded: 0, LocalPath: localPath, AlreadyCached: true}, nil
	}

	primary := item.ImageURL
	if primary == "" {
		primary = item.VideoURL
	}
	if primary == "" {
		return nil, ErrNoRemoteMedia
	}

	data, contentType, err := s.fetcher.Fetch(ctx, primary)
	if err != nil {
		return nil, err
	}
	// Some hosts answer 200 with an HTML error page; that is still an
	// upstream fault, not media.
	if strings.HasPrefix(contentType, "text/html") {
		return nil, fmt.Errorf("%w: unexpected content type %q from %s", ErrUpstreamFetch, contentType, primary)
	}

	dir := filepath.Join(s.baseDir, itemID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create item directory: %w", err)
	}

	mainName := "main" + extensionFor(contentType, primary)
	if err := os.WriteFile(filepath.Join(dir, mainName), data, 0644); err != nil {
		return nil, fmt.Errorf("write primary asset: %w", err)
	}

	localImages := []string{s.publicURL(itemID, mainName)}
	downloaded := 1

	// Best effort: a failed alternate is skipped, never rolled back.
	seq := 2
	for _, altURL := range item.AllImages() {
		if altURL == primary {
			continue
		}
		altData, altType, err := s.fetcher.Fetch(ctx, altURL)
		if err != nil {
			log.Printf("skipping alternate image for %s: %v", itemID, err)
			continue
		}
		name := fmt.Sprintf("%d%s", seq, extensionFor(altType, altURL))
		if err := os.WriteFile(filepath.Join(dir, name), altData, 0644); err != nil {
			log.Printf("skipping alternate image for %s: %v", itemID, err)
			continue
		}
		localImages = append(localImages, s.publicURL(itemID, name))
		downloaded++
		seq++
	}

	mainPath := localImages[0]
	if item.Metadata == nil {
		item.Metadata = datatypes.JSONMap{}
	}
	item.StorageMode = creation.StorageModeBoth
	item.LocalPath = &mainPath
	item.Metadata[creation.MetaLocalImages] = localImages
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("update gallery item: %w", err)
	}

	log.Printf("cached %d asset(s) for %s", downloaded, itemID)
	return &DownloadResult{Downloaded: downloaded, LocalPath: mainPath}, nil
}

// Resolve maps (item id, filename) to the cached file's absolute path.
// Both segments are flattened to their base names and the joined path is
// verified to stay under the item's directory, so requests cannot escape the
// downloads tree regardless of how the caller obtained the segments.
func (s *Service) Resolve(itemID, filename string) (string, error) {
	itemID = filepath.Base(itemID)
	filename = filepath.Base(filename)
	if itemID == "." || itemID == ".." || filename == "." || filename == ".." {
		return "", ErrFileNotFound
	}

	full := filepath.Join(s.baseDir, itemID, filename)
	rel, err := filepath.Rel(s.baseDir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrFileNotFound
	}

	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		return "", ErrFileNotFound
	}
	return full, nil
}

// Stats recomputes the download counters. pending is always total - local.
func (s *Service) Stats(ctx context.Context) (*DownloadStats, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	st := &DownloadStats{Total: len(items)}
	for i := range items {
		if items[i].StorageMode.HasLocal() {
			st.Local++
		}
	}
	st.Pending = st.Total - st.Local
	return st, nil
}

func (s *Service) publicURL(itemID, filename string) string {
	return s.publicBase + "/" + itemID + "/" + filename
}

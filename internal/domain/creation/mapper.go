package creation

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// DefaultSource labels imports whose payload does not name a platform.
const DefaultSource = "NightCafe Studio"

// Map translates one external creation payload into a linked Prompt and
// GalleryItem pair. Pure: no I/O, never fails. Both records carry freshly
// generated identifiers and point at each other before either is persisted.
func Map(req ImportRequest) (*Prompt, *GalleryItem) {
	now := time.Now().UTC()
	itemID := uuid.NewString()
	promptID := uuid.NewString()

	content := req.Prompt
	if content == "" {
		content = req.VideoPrompt
	}

	mediaType := req.CreationType
	if mediaType == "" {
		mediaType = MediaTypeImage
	}

	prompt := &Prompt{
		ID:            promptID,
		Title:         req.Title,
		Content:       content,
		Model:         req.Model,
		RevisedPrompt: req.RevisedPrompt,
		Seed:          parseSeed(req.Seed),
		AspectRatio:   req.AspectRatio,
		GalleryItemID: itemID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	item := &GalleryItem{
		ID:          itemID,
		Title:       req.Title,
		ImageURL:    req.ImageURL,
		PromptUsed:  content,
		ModelUsed:   req.Model,
		AspectRatio: req.AspectRatio,
		StartImage:  req.StartImageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
		PromptID:    promptID,
		Model:       req.Model,
		Metadata:    buildMetadata(req),
		MediaType:   mediaType,
		StorageMode: StorageModeURL,
	}

	return prompt, item
}

// parseSeed converts the source's seed string into an integer, or nil when
// it is absent or unparsable. A seed is never stored as a string.
func parseSeed(s string) *int64 {
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

// buildMetadata folds every payload field without a canonical column into the
// item's metadata bag. Keys with empty values are omitted. Caller-supplied
// metadata keys pass through verbatim, except the known ones which are
// normalized to their snake_case names.
func buildMetadata(req ImportRequest) datatypes.JSONMap {
	meta := datatypes.JSONMap{}

	source := req.Source
	if source == "" {
		source = DefaultSource
	}
	meta[MetaSource] = source
	meta[MetaSourceURL] = req.URL

	putString(meta, MetaSourceCreationID, req.CreationID)
	putString(meta, MetaVideoPrompt, req.VideoPrompt)
	putString(meta, MetaRevisedPrompt, req.RevisedPrompt)
	putString(meta, MetaInitialResolution, req.InitialResolution)
	putString(meta, MetaStyle, req.Style)
	putString(meta, MetaExtractedAt, req.ExtractedAt)

	if len(req.AllImages) > 0 {
		meta[MetaAllImages] = req.AllImages
	}
	if req.IsPublished != nil {
		meta[MetaIsPublished] = *req.IsPublished
	}

	for k, v := range req.Metadata {
		if v == nil {
			continue
		}
		switch k {
		case "samplingMethod":
			meta[MetaSamplingMethod] = v
		case "runtime":
			meta[MetaRuntime] = v
		default:
			// Passthrough must not clobber keys the mapper derives from
			// dedicated payload fields; source_creation_id in particular is
			// the dedup key.
			if reservedMetaKeys[k] {
				continue
			}
			meta[k] = v
		}
	}

	return meta
}

var reservedMetaKeys = map[string]bool{
	MetaSource:            true,
	MetaSourceURL:         true,
	MetaSourceCreationID:  true,
	MetaAllImages:         true,
	MetaIsPublished:       true,
	MetaVideoPrompt:       true,
	MetaRevisedPrompt:     true,
	MetaInitialResolution: true,
	MetaStyle:             true,
	MetaExtractedAt:       true,
	MetaLocalImages:       true,
}

func putString(meta datatypes.JSONMap, key, value string) {
	if value != "" {
		meta[key] = value
	}
}

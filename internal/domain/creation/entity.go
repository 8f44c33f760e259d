package creation

import (
	"time"

	"gorm.io/datatypes"
)

// StorageMode describes where a gallery item's media currently lives.
type StorageMode string

const (
	StorageModeURL   StorageMode = "url"   // remote only
	StorageModeLocal StorageMode = "local" // local copy only
	StorageModeBoth  StorageMode = "both"  // remote URL kept alongside local copy
)

// HasLocal reports whether a local copy exists for this mode.
func (m StorageMode) HasLocal() bool {
	return m == StorageModeLocal || m == StorageModeBoth
}

// Metadata key names. Everything the import payload carries that has no
// dedicated column ends up under one of these (or passes through verbatim).
const (
	MetaSource            = "source"
	MetaSourceURL         = "source_url"
	MetaSourceCreationID  = "source_creation_id"
	MetaAllImages         = "all_images"
	MetaIsPublished       = "is_published"
	MetaVideoPrompt       = "video_prompt"
	MetaRevisedPrompt     = "revised_prompt"
	MetaInitialResolution = "initial_resolution"
	MetaSamplingMethod    = "sampling_method"
	MetaRuntime           = "runtime"
	MetaStyle             = "style"
	MetaExtractedAt       = "extracted_at"
	MetaLocalImages       = "local_images"
)

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// Prompt holds the text and generation settings behind one creation.
// Created exactly once per non-duplicate import and never mutated afterwards;
// it is removed only as a cascade of its gallery item's deletion.
type Prompt struct {
	ID                   string            `gorm:"column:id;primaryKey" json:"id"`
	UserID               *string           `gorm:"column:user_id" json:"user_id"`
	Title                string            `gorm:"column:title" json:"title"`
	Content              string            `gorm:"column:content" json:"content"`
	Notes                string            `gorm:"column:notes" json:"notes"`
	Rating               int               `gorm:"column:rating" json:"rating"`
	IsFavorite           bool              `gorm:"column:is_favorite" json:"is_favorite"`
	IsTemplate           bool              `gorm:"column:is_template" json:"is_template"`
	CreatedAt            time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time         `gorm:"column:updated_at" json:"updated_at"`
	Model                string            `gorm:"column:model" json:"model"`
	Category             string            `gorm:"column:category" json:"category"`
	RevisedPrompt        string            `gorm:"column:revised_prompt" json:"revised_prompt"`
	Seed                 *int64            `gorm:"column:seed" json:"seed"`
	AspectRatio          string            `gorm:"column:aspect_ratio" json:"aspect_ratio"`
	UseCustomAspectRatio bool              `gorm:"column:use_custom_aspect_ratio" json:"use_custom_aspect_ratio"`
	GalleryItemID        string            `gorm:"column:gallery_item_id" json:"gallery_item_id"`
	UseCount             int               `gorm:"column:use_count" json:"use_count"`
	LastUsedAt           *time.Time        `gorm:"column:last_used_at" json:"last_used_at"`
	SuggestedModel       string            `gorm:"column:suggested_model" json:"suggested_model"`
}

func (Prompt) TableName() string { return "prompts" }

// GalleryItem is one visual or video creation plus its storage state.
// Columns mirror the canonical gallery schema; everything NightCafe-specific
// lives in the Metadata JSON bag so future source fields need no migration.
type GalleryItem struct {
	ID                   string            `gorm:"column:id;primaryKey" json:"id"`
	UserID               *string           `gorm:"column:user_id" json:"user_id"`
	Title                string            `gorm:"column:title" json:"title"`
	ImageURL             string            `gorm:"column:image_url" json:"image_url"`
	PromptUsed           string            `gorm:"column:prompt_used" json:"prompt_used"`
	ModelUsed            string            `gorm:"column:model_used" json:"model_used"`
	Notes                string            `gorm:"column:notes" json:"notes"`
	IsFavorite           bool              `gorm:"column:is_favorite" json:"is_favorite"`
	AspectRatio          string            `gorm:"column:aspect_ratio" json:"aspect_ratio"`
	UseCustomAspectRatio bool              `gorm:"column:use_custom_aspect_ratio" json:"use_custom_aspect_ratio"`
	StartImage           string            `gorm:"column:start_image" json:"start_image"`
	CreatedAt            time.Time         `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time         `gorm:"column:updated_at" json:"updated_at"`
	PromptID             string            `gorm:"column:prompt_id" json:"prompt_id"`
	Rating               int               `gorm:"column:rating" json:"rating"`
	Model                string            `gorm:"column:model" json:"model"`
	LocalPath            *string           `gorm:"column:local_path" json:"local_path"`
	Metadata             datatypes.JSONMap `gorm:"column:metadata" json:"metadata"`
	Width                *int              `gorm:"column:width" json:"width"`
	Height               *int              `gorm:"column:height" json:"height"`
	CharacterID          *string           `gorm:"column:character_id" json:"character_id"`
	CollectionID         *string           `gorm:"column:collection_id" json:"collection_id"`
	MediaType            string            `gorm:"column:media_type" json:"media_type"`
	VideoURL             string            `gorm:"column:video_url" json:"video_url"`
	VideoLocalPath       *string           `gorm:"column:video_local_path" json:"video_local_path"`
	ThumbnailURL         string            `gorm:"column:thumbnail_url" json:"thumbnail_url"`
	DurationSeconds      *float64          `gorm:"column:duration_seconds" json:"duration_seconds"`
	StorageMode          StorageMode       `gorm:"column:storage_mode" json:"storage_mode"`
}

func (GalleryItem) TableName() string { return "gallery_items" }

// AllImages returns the alternate-image list from the metadata bag.
// Values read back from the database arrive as []interface{}.
func (g *GalleryItem) AllImages() []string {
	return stringList(g.Metadata[MetaAllImages])
}

// IsPublished reports the publish flag from the metadata bag.
func (g *GalleryItem) IsPublished() bool {
	v, ok := g.Metadata[MetaIsPublished].(bool)
	return ok && v
}

func stringList(v interface{}) []string {
	switch vs := v.(type) {
	case []string:
		return vs
	case []interface{}:
		out := make([]string, 0, len(vs))
		for _, e := range vs {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

package creation

// ImportRequest is the payload the capture extension posts for one creation.
// Only the source URL is required; every other field is optional and the
// Metadata map passes through arbitrary extra keys. This open shape never
// leaks past the mapper.
type ImportRequest struct {
	Source       string                 `json:"source"`
	URL          string                 `json:"url" validate:"required"`
	CreationID   string                 `json:"creationId"`
	Title        string                 `json:"title"`
	CreationType string                 `json:"creationType"` // "image" | "video"

	// Prompts
	Prompt        string `json:"prompt"`
	VideoPrompt   string `json:"videoPrompt"`
	RevisedPrompt string `json:"revisedPrompt"`

	// Images
	ImageURL      string   `json:"imageUrl"`
	AllImages     []string `json:"allImages"`
	StartImageURL string   `json:"startImageUrl"`

	// Generation settings
	Model             string `json:"model"`
	Style             string `json:"style"`
	InitialResolution string `json:"initialResolution"`
	AspectRatio       string `json:"aspectRatio"`
	Seed              string `json:"seed"` // string from the source page; parsed by the mapper

	// State
	IsPublished *bool `json:"isPublished"`

	// Extra
	Metadata    map[string]interface{} `json:"metadata"`
	ExtractedAt string                 `json:"extractedAt"`
}

// ImportResult is returned by the import pipeline.
type ImportResult struct {
	ID        string `json:"id"`
	PromptID  string `json:"prompt_id"`
	Duplicate bool   `json:"duplicate"`
}

// ImportStatus answers the extension's "did I already import this?" poll.
type ImportStatus struct {
	Exists       bool   `json:"exists"`
	ID           string `json:"id,omitempty"`
	Title        string `json:"title,omitempty"`
	ImportedAt   string `json:"importedAt,omitempty"`
	CreationType string `json:"creationType,omitempty"`
}

// Stats are derived counts over the current collections, recomputed per call.
type Stats struct {
	Total              int `json:"total"`
	WithImage          int `json:"withImage"`
	WithPrompt         int `json:"withPrompt"`
	WithMultipleImages int `json:"withMultipleImages"`
	Published          int `json:"published"`
	TotalPrompts       int `json:"totalPrompts"`
}

// ItemWithPrompt embeds the linked prompt into a gallery item response.
type ItemWithPrompt struct {
	GalleryItem
	Prompt *Prompt `json:"_prompt,omitempty"`
}

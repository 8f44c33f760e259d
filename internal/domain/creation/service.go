package creation

import (
	"context"
	"fmt"
	"log"
	"time"
)

// Service orchestrates the import pipeline and the read paths over the two
// persisted collections.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Import runs duplicate guard -> schema mapper -> persistence.
// A payload carrying an already-imported external creation id is a normal,
// successful outcome (Duplicate=true, no new writes). The check-then-insert
// sequence is not transactional: two concurrent imports of the same creation
// id can both pass the guard and both insert. That race is accepted; the
// loser is ordinary duplicate data, not corruption.
func (s *Service) Import(ctx context.Context, req ImportRequest) (*ImportResult, error) {
	if req.CreationID != "" {
		existing, err := s.repo.FindByCreationID(ctx, req.CreationID)
		if err != nil {
			return nil, fmt.Errorf("duplicate check: %w", err)
		}
		if existing != nil {
			log.Printf("duplicate import skipped: %s", req.CreationID)
			return &ImportResult{ID: existing.ID, PromptID: existing.PromptID, Duplicate: true}, nil
		}
	}

	prompt, item := Map(req)

	// Two independent writes keyed by pre-generated ids. A crash in between
	// leaves an orphaned prompt, which is accepted garbage.
	if err := s.repo.CreatePrompt(ctx, prompt); err != nil {
		return nil, fmt.Errorf("persist prompt: %w", err)
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("persist gallery item: %w", err)
	}

	log.Printf("new import: %s - %s", item.ID, itemLabel(item))
	return &ImportResult{ID: item.ID, PromptID: prompt.ID, Duplicate: false}, nil
}

// Status answers whether an external creation id was already imported.
func (s *Service) Status(ctx context.Context, creationID string) (*ImportStatus, error) {
	item, err := s.repo.FindByCreationID(ctx, creationID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return &ImportStatus{Exists: false}, nil
	}
	return &ImportStatus{
		Exists:       true,
		ID:           item.ID,
		Title:        item.Title,
		ImportedAt:   item.CreatedAt.Format(time.RFC3339),
		CreationType: item.MediaType,
	}, nil
}

// List returns all gallery items, newest first.
func (s *Service) List(ctx context.Context) ([]GalleryItem, error) {
	return s.repo.ListItems(ctx)
}

// Get returns one gallery item with its linked prompt embedded. A missing
// prompt (orphan cleanup, partial import) is not an error; the item is
// returned without the embed.
func (s *Service) Get(ctx context.Context, id string) (*ItemWithPrompt, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	out := &ItemWithPrompt{GalleryItem: *item}
	if item.PromptID != "" {
		if prompt, err := s.repo.GetPrompt(ctx, item.PromptID); err == nil {
			out.Prompt = prompt
		}
	}
	return out, nil
}

// ListPrompts returns all prompts, newest first.
func (s *Service) ListPrompts(ctx context.Context) ([]Prompt, error) {
	return s.repo.ListPrompts(ctx)
}

// Delete removes a gallery item and cascades to its linked prompt. The
// cascade is an explicit two-step application-level operation so both tables
// stay independently testable.
func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteItem(ctx, id); err != nil {
		return err
	}
	if item.PromptID != "" {
		if err := s.repo.DeletePrompt(ctx, item.PromptID); err != nil {
			return fmt.Errorf("cascade prompt delete: %w", err)
		}
	}
	return nil
}

// Stats recomputes the summary counts from current collection state. The
// metadata-derived counts are evaluated in Go over one scan so they behave
// identically on SQLite and Postgres.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	totalPrompts, err := s.repo.CountPrompts(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{Total: len(items), TotalPrompts: int(totalPrompts)}
	for i := range items {
		it := &items[i]
		if it.ImageURL != "" {
			st.WithImage++
		}
		if it.PromptUsed != "" {
			st.WithPrompt++
		}
		if len(it.AllImages()) > 1 {
			st.WithMultipleImages++
		}
		if it.IsPublished() {
			st.Published++
		}
	}
	return st, nil
}

func itemLabel(g *GalleryItem) string {
	if g.Title != "" {
		return g.Title
	}
	if url, ok := g.Metadata[MetaSourceURL].(string); ok {
		return url
	}
	return g.ID
}

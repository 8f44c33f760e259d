package creation

import (
	"context"
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repository interface {
	CreatePrompt(ctx context.Context, p *Prompt) error
	CreateItem(ctx context.Context, g *GalleryItem) error
	UpdateItem(ctx context.Context, g *GalleryItem) error
	GetItem(ctx context.Context, id string) (*GalleryItem, error)
	ListItems(ctx context.Context) ([]GalleryItem, error)
	DeleteItem(ctx context.Context, id string) error
	GetPrompt(ctx context.Context, id string) (*Prompt, error)
	ListPrompts(ctx context.Context) ([]Prompt, error)
	DeletePrompt(ctx context.Context, id string) error
	CountPrompts(ctx context.Context) (int64, error)

	// FindByCreationID looks up a live item by its external creation id
	// (stored at metadata.source_creation_id). Returns (nil, nil) when no
	// such item exists.
	FindByCreationID(ctx context.Context, creationID string) (*GalleryItem, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreatePrompt(ctx context.Context, p *Prompt) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *repository) CreateItem(ctx context.Context, g *GalleryItem) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *repository) UpdateItem(ctx context.Context, g *GalleryItem) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *repository) GetItem(ctx context.Context, id string) (*GalleryItem, error) {
	var g GalleryItem
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repository) ListItems(ctx context.Context) ([]GalleryItem, error) {
	var items []GalleryItem
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *repository) DeleteItem(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&GalleryItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) GetPrompt(ctx context.Context, id string) (*Prompt, error) {
	var p Prompt
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPromptNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListPrompts(ctx context.Context) ([]Prompt, error) {
	var prompts []Prompt
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&prompts).Error
	return prompts, err
}

func (r *repository) DeletePrompt(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&Prompt{}).Error
}

func (r *repository) CountPrompts(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&Prompt{}).Count(&n).Error
	return n, err
}

func (r *repository) FindByCreationID(ctx context.Context, creationID string) (*GalleryItem, error) {
	var g GalleryItem
	err := r.db.WithContext(ctx).
		Where(datatypes.JSONQuery("metadata").Equals(creationID, MetaSourceCreationID)).
		First(&g).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

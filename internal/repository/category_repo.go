package repository

import (
	"Quill/internal/model"
	"Quill/internal/pkg/pagination"
	"context"
	"errors"

	"gorm.io/gorm"
)

type CategoryRepo interface {
	Create(ctx context.Context, category *model.Category) error
	GetByID(ctx context.Context, categoryID uint64) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	Update(ctx context.Context, category *model.Category) error
	SetActive(ctx context.Context, categoryID uint64, active bool) error
	FindPage(ctx context.Context, p pagination.Params, activeOnly bool) (*pagination.Page[model.Category], error)
}

type categoryRepoImpl struct {
	db *gorm.DB
}

func NewCategoryRepo(db *gorm.DB) CategoryRepo {
	return &categoryRepoImpl{db: db}
}

func (r *categoryRepoImpl) Create(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *categoryRepoImpl) GetByID(ctx context.Context, categoryID uint64) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).First(&category, categoryID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepoImpl) GetByName(ctx context.Context, name string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

func (r *categoryRepoImpl) Update(ctx context.Context, category *model.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *categoryRepoImpl) SetActive(ctx context.Context, categoryID uint64, active bool) error {
	return r.db.WithContext(ctx).Model(&model.Category{}).
		Where("id = ?", categoryID).
		Update("is_active", active).Error
}

func (r *categoryRepoImpl) FindPage(ctx context.Context, p pagination.Params, activeOnly bool) (*pagination.Page[model.Category], error) {
	tx := r.db.Model(&model.Category{})
	if activeOnly {
		tx = tx.Where("is_active = ?", true)
	}
	return pagination.Find[model.Category](ctx, tx, p, "id ASC")
}

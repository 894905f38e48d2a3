package service

import (
	"Quill/internal/api/dto"
	"Quill/internal/model"
	"Quill/internal/pkg/pagination"
	"Quill/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

type CategoryService interface {
	Create(ctx context.Context, req *dto.CategoryCreateReq) (*dto.CategoryView, error)
	Update(ctx context.Context, categoryID uint64, req *dto.CategoryUpdateReq) (*dto.CategoryView, error)
	SetActive(ctx context.Context, categoryID uint64, active bool) error
	GetByID(ctx context.Context, categoryID uint64) (*dto.CategoryView, error)
	List(ctx context.Context, p pagination.Params, activeOnly bool) (*pagination.Page[*dto.CategoryView], error)
}

type categoryServiceImpl struct {
	categoryRepo repository.CategoryRepo
}

func NewCategoryService(categoryRepo repository.CategoryRepo) CategoryService {
	return &categoryServiceImpl{categoryRepo: categoryRepo}
}

func (s *categoryServiceImpl) Create(ctx context.Context, req *dto.CategoryCreateReq) (*dto.CategoryView, error) {
	if req == nil {
		return nil, ErrParamInvalid
	}
	existing, err := s.categoryRepo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExist
	}

	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
		IsActive:    true,
	}
	if err = s.categoryRepo.Create(ctx, category); err != nil {
		if isDuplicateError(err) {
			return nil, ErrCategoryExist
		}
		return nil, err
	}
	return toCategoryView(category), nil
}

func (s *categoryServiceImpl) Update(ctx context.Context, categoryID uint64, req *dto.CategoryUpdateReq) (*dto.CategoryView, error) {
	if categoryID == 0 || req == nil {
		return nil, ErrParamInvalid
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	if req.Name != category.Name {
		taken, err := s.categoryRepo.GetByName(ctx, req.Name)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, ErrCategoryExist
		}
	}
	category.Name = req.Name
	category.Description = req.Description
	if err = s.categoryRepo.Update(ctx, category); err != nil {
		if isDuplicateError(err) {
			return nil, ErrCategoryExist
		}
		return nil, err
	}
	return toCategoryView(category), nil
}

// SetActive deactivates instead of deleting: posts keep their category
// reference, new posts just cannot be filed under it.
func (s *categoryServiceImpl) SetActive(ctx context.Context, categoryID uint64, active bool) error {
	if categoryID == 0 {
		return ErrParamInvalid
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrCategoryNotFound
	}
	return s.categoryRepo.SetActive(ctx, categoryID, active)
}

func (s *categoryServiceImpl) GetByID(ctx context.Context, categoryID uint64) (*dto.CategoryView, error) {
	if categoryID == 0 {
		return nil, ErrParamInvalid
	}
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}
	return toCategoryView(category), nil
}

func (s *categoryServiceImpl) List(ctx context.Context, p pagination.Params, activeOnly bool) (*pagination.Page[*dto.CategoryView], error) {
	page, err := s.categoryRepo.FindPage(ctx, p, activeOnly)
	if err != nil {
		return nil, err
	}
	return pagination.Map(page, func(c model.Category) *dto.CategoryView {
		return toCategoryView(&c)
	}), nil
}

func toCategoryView(category *model.Category) *dto.CategoryView {
	view := &dto.CategoryView{}
	_ = copier.Copy(view, category)
	return view
}

package handler

import (
	"Quill/internal/api/dto"
	"Quill/internal/pkg/pagination"
	"Quill/internal/pkg/response"
	"Quill/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categorySvc service.CategoryService
}

func NewCategoryHandler(categorySvc service.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		categorySvc: categorySvc,
	}
}

func (s *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	category, err := s.categorySvc.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

func (s *CategoryHandler) Update(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("category_id"), 10, 64)
	if err != nil || categoryID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	var req dto.CategoryUpdateReq
	if err = c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	category, err := s.categorySvc.Update(c.Request.Context(), categoryID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

func (s *CategoryHandler) Activate(c *gin.Context) {
	s.setActive(c, true)
}

func (s *CategoryHandler) Deactivate(c *gin.Context) {
	s.setActive(c, false)
}

func (s *CategoryHandler) setActive(c *gin.Context, active bool) {
	categoryID, err := strconv.ParseUint(c.Param("category_id"), 10, 64)
	if err != nil || categoryID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	if err = s.categorySvc.SetActive(c.Request.Context(), categoryID, active); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CategoryHandler) Get(c *gin.Context) {
	categoryID, err := strconv.ParseUint(c.Param("category_id"), 10, 64)
	if err != nil || categoryID == 0 {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	category, err := s.categorySvc.GetByID(c.Request.Context(), categoryID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

func (s *CategoryHandler) List(c *gin.Context) {
	p := pagination.FromQuery(c)
	activeOnly := c.DefaultQuery("activeOnly", "true") == "true"

	page, err := s.categorySvc.List(c.Request.Context(), p, activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, page)
}

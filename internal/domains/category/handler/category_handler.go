package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/category"
	"library-backend/internal/shared/response"
)

type CategoryHandler struct {
	service category.Service
}

func NewCategoryHandler(service category.Service) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// List xử lý GET /categories - dùng cho form add/edit book
func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.service.List(c.Request.Context())
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "", categories)
}

// Create xử lý POST /category/add (staff)
func (h *CategoryHandler) Create(c *gin.Context) {
	var req category.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, "Category created", created)
}

// Delete xử lý POST /category/delete/:id (staff)
// Books thuộc category bị null reference, không bị xóa
func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid category id", nil)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, "Category deleted", nil)
}

func (h *CategoryHandler) handleError(c *gin.Context, err error) {
	var vErr validation.Errors
	if errors.As(err, &vErr) {
		response.Error(c, http.StatusBadRequest, "validation failed", vErr)
		return
	}

	switch {
	case errors.Is(err, category.ErrCategoryNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, category.ErrCategoryAlreadyExists):
		response.Error(c, http.StatusConflict, err.Error(), nil)
	default:
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

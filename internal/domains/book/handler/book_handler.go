package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/category"
	"library-backend/internal/domains/loan"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

// LoanLister cấp danh sách loan đang mở của user cho trang home
type LoanLister interface {
	MyLoans(ctx context.Context, accountID uuid.UUID) ([]loan.LoanDetail, error)
}

type BookHandler struct {
	service book.Service
	loans   LoanLister
}

func NewBookHandler(service book.Service, loans LoanLister) *BookHandler {
	return &BookHandler{service: service, loans: loans}
}

// Home xử lý GET / - catalog listing với search/filter
// ?q=<free text> ?category=<category name>
// User đã đăng nhập (OptionalAuth) thấy thêm danh sách sách mình đang mượn
func (h *BookHandler) Home(c *gin.Context) {
	filter := book.SearchFilter{
		Query:    c.Query("q"),
		Category: c.Query("category"),
	}

	books, err := h.service.Search(c.Request.Context(), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	payload := gin.H{"books": books}

	if userID, ok := middleware.GetUserID(c); ok {
		myLoans, err := h.loans.MyLoans(c.Request.Context(), userID)
		if err != nil {
			h.handleError(c, err)
			return
		}
		payload["my_loans"] = myLoans
	}

	response.Success(c, http.StatusOK, "", payload)
}

// Create xử lý POST /book/add (staff) - multipart form với optional image
func (h *BookHandler) Create(c *gin.Context) {
	req, ok := h.parseBookForm(c)
	if !ok {
		return
	}

	created, err := h.service.Create(c.Request.Context(), book.CreateBookRequest(*req))
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Book added", created)
}

// Update xử lý PUT /book/edit/:id (staff)
// Quantity change điều chỉnh available theo cùng delta (clamped)
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid book id", nil)
		return
	}

	req, ok := h.parseBookForm(c)
	if !ok {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, *req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Book updated", updated)
}

// Delete xử lý POST /book/delete/:id (staff)
// Sách đang có người mượn không xóa được - trả message cho user
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid book id", nil)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Book deleted", nil)
}

// parseBookForm đọc multipart form: title, author, category_id, quantity + image file
func (h *BookHandler) parseBookForm(c *gin.Context) (*book.UpdateBookRequest, bool) {
	req := &book.UpdateBookRequest{
		Title:  c.PostForm("title"),
		Author: c.PostForm("author"),
	}

	if q := c.PostForm("quantity"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "quantity must be a number", nil)
			return nil, false
		}
		req.Quantity = n
	}

	if catID := c.PostForm("category_id"); catID != "" {
		id, err := uuid.Parse(catID)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "invalid category id", nil)
			return nil, false
		}
		req.CategoryID = &id
	}

	// Optional image file
	file, header, err := c.Request.FormFile("image")
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "cannot read image file", nil)
			return nil, false
		}
		req.Image = data
		req.ImageName = header.Filename
	}

	return req, true
}

func (h *BookHandler) handleError(c *gin.Context, err error) {
	var vErr validation.Errors
	if errors.As(err, &vErr) {
		response.Error(c, http.StatusBadRequest, "validation failed", vErr)
		return
	}

	switch {
	// Domain error hiển thị cho user - HTTP 200, success=false
	case errors.Is(err, book.ErrBookOnLoan):
		response.Fail(c, "Không thể xóa sách này vì đang có người mượn!")

	case errors.Is(err, book.ErrInvalidImage):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)

	case errors.Is(err, book.ErrBookNotFound),
		errors.Is(err, category.ErrCategoryNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)

	default:
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

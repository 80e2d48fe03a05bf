package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/book"
	"library-backend/internal/domains/loan"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type LoanHandler struct {
	service loan.Service
}

func NewLoanHandler(service loan.Service) *LoanHandler {
	return &LoanHandler{service: service}
}

// Borrow xử lý POST /book/borrow/:book_id (reader)
func (h *LoanHandler) Borrow(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing authentication", nil)
		return
	}

	bookID, err := uuid.Parse(c.Param("book_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid book id", nil)
		return
	}

	rec, err := h.service.Borrow(c.Request.Context(), userID, bookID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Book borrowed", rec)
}

// Return xử lý POST /book/return/:record_id (reader)
// Trả loan của người khác → 403, loan đã trả → no-op success
func (h *LoanHandler) Return(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing authentication", nil)
		return
	}

	recordID, err := uuid.Parse(c.Param("record_id"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "invalid record id", nil)
		return
	}

	if err := h.service.Return(c.Request.Context(), userID, recordID); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Book returned", nil)
}

// MyLoans xử lý GET /loans/mine (reader) - các loan đang mở của user
func (h *LoanHandler) MyLoans(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing authentication", nil)
		return
	}

	loans, err := h.service.MyLoans(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", loans)
}

func (h *LoanHandler) handleError(c *gin.Context, err error) {
	switch {
	// Domain errors hiển thị cho user - HTTP 200, success=false
	case errors.Is(err, loan.ErrOutOfStock):
		response.Fail(c, "Sách đã hết hàng!")
	case errors.Is(err, loan.ErrProfileIncomplete):
		response.Fail(c, "Tài khoản không có email. Vui lòng cập nhật email.")

	// Trả sách của người khác → forbidden, không phải not-found
	case errors.Is(err, loan.ErrNotLoanOwner):
		response.Error(c, http.StatusForbidden, err.Error(), nil)

	case errors.Is(err, loan.ErrLoanNotFound),
		errors.Is(err, book.ErrBookNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)

	default:
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

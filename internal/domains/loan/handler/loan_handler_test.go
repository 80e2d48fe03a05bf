package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-backend/internal/domains/loan"
	"library-backend/internal/domains/loan/handler"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type serviceMock struct {
	borrowErr error
	returnErr error
	myLoans   []loan.LoanDetail
}

func (m *serviceMock) Borrow(ctx context.Context, accountID, bookID uuid.UUID) (*loan.BorrowRecord, error) {
	if m.borrowErr != nil {
		return nil, m.borrowErr
	}
	return &loan.BorrowRecord{ID: uuid.New(), BookID: bookID}, nil
}

func (m *serviceMock) Return(ctx context.Context, accountID, loanID uuid.UUID) error {
	return m.returnErr
}

func (m *serviceMock) MyLoans(ctx context.Context, accountID uuid.UUID) ([]loan.LoanDetail, error) {
	return m.myLoans, nil
}

func perform(h *handler.LoanHandler, method, path, param, paramValue string, authed bool, fn gin.HandlerFunc) (*httptest.ResponseRecorder, response.Response) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, path, nil)
	c.Params = gin.Params{{Key: param, Value: paramValue}}
	if authed {
		c.Set(middleware.CtxUserID, uuid.New())
	}

	fn(c)

	var body response.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestBorrow_OutOfStockIsSoftFailure(t *testing.T) {
	h := handler.NewLoanHandler(&serviceMock{borrowErr: loan.ErrOutOfStock})

	w, body := perform(h, http.MethodPost, "/book/borrow/x", "book_id", uuid.NewString(), true, h.Borrow)

	// Domain error → HTTP 200 với success=false, không phải 4xx/5xx
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, body.Success)
	assert.NotEmpty(t, body.Message)
}

func TestBorrow_ProfileIncompleteIsSoftFailure(t *testing.T) {
	h := handler.NewLoanHandler(&serviceMock{borrowErr: loan.ErrProfileIncomplete})

	w, body := perform(h, http.MethodPost, "/book/borrow/x", "book_id", uuid.NewString(), true, h.Borrow)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, body.Success)
}

func TestBorrow_Success(t *testing.T) {
	h := handler.NewLoanHandler(&serviceMock{})

	w, body := perform(h, http.MethodPost, "/book/borrow/x", "book_id", uuid.NewString(), true, h.Borrow)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, body.Success)
}

func TestBorrow_InvalidBookID(t *testing.T) {
	h := handler.NewLoanHandler(&serviceMock{})

	w, _ := perform(h, http.MethodPost, "/book/borrow/x", "book_id", "not-a-uuid", true, h.Borrow)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBorrow_MissingAuth(t *testing.T) {
	h := handler.NewLoanHandler(&serviceMock{})

	w, _ := perform(h, http.MethodPost, "/book/borrow/x", "book_id", uuid.NewString(), false, h.Borrow)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReturn_NotOwnerIsForbidden(t *testing.T) {
	h := handler.NewLoanHandler(&serviceMock{returnErr: loan.ErrNotLoanOwner})

	w, body := perform(h, http.MethodPost, "/book/return/x", "record_id", uuid.NewString(), true, h.Return)

	// Loan của người khác → 403, phân biệt với 404
	assert.Equal(t, http.StatusForbidden, w.Code)
	require.NotNil(t, body.Error)
	assert.Equal(t, "FORBIDDEN", body.Error.Code)
}

func TestReturn_UnknownLoanIsNotFound(t *testing.T) {
	h := handler.NewLoanHandler(&serviceMock{returnErr: loan.ErrLoanNotFound})

	w, _ := perform(h, http.MethodPost, "/book/return/x", "record_id", uuid.NewString(), true, h.Return)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReturn_Success(t *testing.T) {
	h := handler.NewLoanHandler(&serviceMock{})

	w, body := perform(h, http.MethodPost, "/book/return/x", "record_id", uuid.NewString(), true, h.Return)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
}

func TestMyLoans_ReturnsList(t *testing.T) {
	h := handler.NewLoanHandler(&serviceMock{
		myLoans: []loan.LoanDetail{{BookTitle: "Số Đỏ"}},
	})

	w, body := perform(h, http.MethodGet, "/loans/mine", "", "", true, h.MyLoans)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, body.Success)
	assert.NotNil(t, body.Data)
}

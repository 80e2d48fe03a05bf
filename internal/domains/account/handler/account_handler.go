package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"library-backend/internal/domains/account"
	"library-backend/internal/shared/middleware"
	"library-backend/internal/shared/response"
)

type AccountHandler struct {
	service account.Service
}

func NewAccountHandler(service account.Service) *AccountHandler {
	return &AccountHandler{service: service}
}

// Register xử lý POST /accounts/register
func (h *AccountHandler) Register(c *gin.Context) {
	var req account.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Account registered successfully", dto)
}

// Login xử lý POST /accounts/login
// Response chứa redirect target theo role (admin console / staff dashboard / home)
func (h *AccountHandler) Login(c *gin.Context) {
	var req account.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	loginResp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Logged in successfully", loginResp)
}

// Logout xử lý POST /accounts/logout
// Revoke access token hiện tại - token vào blacklist đến khi hết hạn
func (h *AccountHandler) Logout(c *gin.Context) {
	token := c.GetString(middleware.CtxToken)
	if token == "" {
		// Không có token hợp lệ → đã logged out rồi
		response.Success(c, http.StatusOK, "Logged out successfully", nil)
		return
	}

	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// GetProfile xử lý GET /profile
func (h *AccountHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing authentication", nil)
		return
	}

	dto, err := h.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "", dto)
}

// UpdateProfile xử lý PUT /profile
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing authentication", nil)
		return
	}

	var req account.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	dto, err := h.service.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", dto)
}

// ChangePassword xử lý PUT /profile/password
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "missing authentication", nil)
		return
	}

	var req account.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.handleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}

// handleError map domain errors thành HTTP status codes
// errors.Is unwrap error chain, tốt hơn so sánh == trực tiếp
func (h *AccountHandler) handleError(c *gin.Context, err error) {
	// Validation errors từ ozzo-validation → 400 với field details
	var vErr validation.Errors
	if errors.As(err, &vErr) {
		response.Error(c, http.StatusBadRequest, "validation failed", vErr)
		return
	}

	switch {
	// 400 Bad Request
	case errors.Is(err, account.ErrPasswordMismatch),
		errors.Is(err, account.ErrSamePassword):
		response.Error(c, http.StatusBadRequest, err.Error(), nil)

	// 401 Unauthorized
	case errors.Is(err, account.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, err.Error(), nil)

	// 403 Forbidden
	case errors.Is(err, account.ErrForbidden):
		response.Error(c, http.StatusForbidden, err.Error(), nil)

	// 404 Not Found
	case errors.Is(err, account.ErrAccountNotFound):
		response.Error(c, http.StatusNotFound, err.Error(), nil)

	// 409 Conflict
	case errors.Is(err, account.ErrUsernameAlreadyExists),
		errors.Is(err, account.ErrEmailAlreadyExists):
		response.Error(c, http.StatusConflict, err.Error(), nil)

	// 500 - không expose details cho client
	default:
		response.Error(c, http.StatusInternalServerError, "Internal server error", nil)
	}
}

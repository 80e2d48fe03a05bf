package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"library-backend/internal/domains/account"
	"library-backend/internal/shared/response"
	"library-backend/pkg/cache"
	"library-backend/pkg/jwt"
)

// Context keys set bởi auth middleware
const (
	CtxUserID = "userID"
	CtxEmail  = "email"
	CtxRole   = "role"
	CtxToken  = "accessToken"
)

// AuthMiddleware xác thực JWT access token
// Token đã logout (nằm trong blacklist) bị coi là invalid
func AuthMiddleware(jwtManager *jwt.Manager, blacklist cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, token, ok := resolveClaims(c, jwtManager, blacklist)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "invalid or missing token", nil)
			c.Abort()
			return
		}

		userID, err := uuid.Parse(claims.UserID)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid user ID in token", nil)
			c.Abort()
			return
		}

		c.Set(CtxUserID, userID)
		c.Set(CtxEmail, claims.Email)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxToken, token)

		c.Next()
	}
}

// OptionalAuth set identity vào context nếu có token hợp lệ,
// nhưng không chặn request khi thiếu token (trang catalog public)
func OptionalAuth(jwtManager *jwt.Manager, blacklist cache.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, token, ok := resolveClaims(c, jwtManager, blacklist); ok {
			if userID, err := uuid.Parse(claims.UserID); err == nil {
				c.Set(CtxUserID, userID)
				c.Set(CtxEmail, claims.Email)
				c.Set(CtxRole, claims.Role)
				c.Set(CtxToken, token)
			}
		}
		c.Next()
	}
}

// RequireRole chặn request nếu role trong context thấp hơn required
// Phải đứng sau AuthMiddleware trong chain
func RequireRole(required account.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleStr := c.GetString(CtxRole)
		role := account.Role(roleStr)

		if !role.IsValid() || !role.HasPermission(required) {
			response.Error(c, http.StatusForbidden,
				"access denied: "+required.String()+" role required", nil)
			c.Abort()
			return
		}

		c.Next()
	}
}

func resolveClaims(c *gin.Context, jwtManager *jwt.Manager, blacklist cache.Cache) (*jwt.Claims, string, bool) {
	// 1. Lấy token từ Authorization header: "Bearer <token>"
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return nil, "", false
	}
	token := parts[1]

	// 2. Verify chữ ký và expiry
	claims, err := jwtManager.ValidateAccessToken(token)
	if err != nil {
		return nil, "", false
	}

	// 3. Check revocation - logout đưa token vào blacklist đến khi nó hết hạn
	if revoked, err := blacklist.Exists(c.Request.Context(), jwt.TokenBlacklistKey(token)); err == nil && revoked {
		return nil, "", false
	}

	return claims, token, true
}

// GetUserID đọc userID đã được auth middleware set vào context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(CtxUserID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

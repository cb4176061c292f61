package middleware

import (
	"net/http"
	"strconv"
	"strings"

	"pos-backoffice/dtos"
	"pos-backoffice/utils"

	"github.com/gin-gonic/gin"
)

const (
	ContextUserID     = "user_id"
	ContextUserRole   = "user_role"
	ContextMerchantID = "merchant_id"

	// MerchantHeader lets a portal admin pick the merchant to act on.
	MerchantHeader = "X-Merchant-ID"
)

func abortWithError(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, dtos.ErrorResponse{
		StatusCode: status,
		Message:    message,
		Error:      http.StatusText(status),
		Code:       code,
	})
}

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortWithError(c, http.StatusUnauthorized, "Authorization header required", "UNAUTHORIZED")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			abortWithError(c, http.StatusUnauthorized, "Invalid authorization header format", "UNAUTHORIZED")
			return
		}

		claims, err := utils.ValidateToken(parts[1])
		if err != nil {
			abortWithError(c, http.StatusUnauthorized, "Invalid or expired token", "UNAUTHORIZED")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextUserRole, claims.Role)
		if claims.MerchantID != nil {
			c.Set(ContextMerchantID, *claims.MerchantID)
		}
		c.Next()
	}
}

// MerchantMiddleware requires a merchant role and a merchant to act on. Merchant
// users are bound to the merchant in their token; portal admins choose one with
// the X-Merchant-ID header.
func MerchantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextUserRole)
		switch role {
		case utils.RolePortalAdmin, utils.RoleMerchantAdmin, utils.RoleMerchantStaff:
		default:
			abortWithError(c, http.StatusForbidden, "Merchant access required", "FORBIDDEN")
			return
		}

		if _, exists := c.Get(ContextMerchantID); !exists && role == utils.RolePortalAdmin {
			if raw := c.GetHeader(MerchantHeader); raw != "" {
				id, err := strconv.ParseInt(raw, 10, 64)
				if err != nil || id <= 0 {
					abortWithError(c, http.StatusBadRequest, "Invalid "+MerchantHeader+" header", "INVALID_ID")
					return
				}
				c.Set(ContextMerchantID, id)
			}
		}

		if _, exists := c.Get(ContextMerchantID); !exists {
			abortWithError(c, http.StatusForbidden, "No merchant associated with this account", "FORBIDDEN")
			return
		}

		c.Next()
	}
}

// MerchantID returns the merchant resolved by MerchantMiddleware.
func MerchantID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(ContextMerchantID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

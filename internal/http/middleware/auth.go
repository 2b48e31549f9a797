package middleware

import (
	"net/http"
	"strings"

	"storefront/internal/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// JWTAuth middleware validates JWT tokens
func JWTAuth(authService *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization header")
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization header format")
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing token")
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set("claims", claims)
			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Set("user_role", claims.Role)

			if claims.ShopID != nil {
				c.Set("shop_id", *claims.ShopID)
			}

			return next(c)
		}
	}
}

// RequireRole middleware ensures user has required role
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roleStr, ok := c.Get("user_role").(string)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "User role not found")
			}

			for _, role := range roles {
				if roleStr == role {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient permissions")
		}
	}
}

// SystemAdminOnly middleware ensures only system admins can access
func SystemAdminOnly() echo.MiddlewareFunc {
	return RequireRole(auth.RoleSystemAdmin)
}

// ShopOwnerOrAdmin middleware allows shop_owner and system_admin
func ShopOwnerOrAdmin() echo.MiddlewareFunc {
	return RequireRole(auth.RoleSystemAdmin, auth.RoleShopOwner)
}

// RequireShopAccess ensures a shop owner only touches the shop named in the :id path param.
// System admins may act on any shop.
func RequireShopAccess() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if role, _ := c.Get("user_role").(string); role == auth.RoleSystemAdmin {
				return next(c)
			}

			shopID, ok := c.Get("shop_id").(uuid.UUID)
			if !ok || shopID == uuid.Nil {
				return echo.NewHTTPError(http.StatusForbidden, "Shop context required")
			}

			target, err := uuid.Parse(c.Param("id"))
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid shop ID")
			}
			if target != shopID {
				return echo.NewHTTPError(http.StatusForbidden, "Access to this shop is not allowed")
			}

			return next(c)
		}
	}
}

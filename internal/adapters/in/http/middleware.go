// Package http is the REST ingress. Handlers translate requests into
// commands and queries and map the error taxonomy onto status codes;
// business rules live below this layer.
package http

import (
	"net/http"

	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers. The service sits behind a gateway that authenticates the
// caller and forwards who they are; these headers are trusted as-is.
const (
	HeaderUserID   = "X-User-Id"
	HeaderUserRole = "X-User-Role"
)

// Role names the caller's position in the delivery flow.
type Role string

const (
	RoleCustomer   Role = "customer"
	RoleRestaurant Role = "restaurant"
	RoleCourier    Role = "courier"
	RoleAdmin      Role = "admin"
)

const identityContextKey = "identity"

// Identity is the authenticated caller of a request.
type Identity struct {
	ID   kernel.UUID
	Role Role
}

// IdentityMiddleware extracts the caller identity from the gateway headers.
// Requests without a valid identity are rejected before any handler runs.
func IdentityMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id, err := kernel.UUIDFromString(c.Request().Header.Get(HeaderUserID))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody{
					Code:    "UNAUTHENTICATED",
					Message: "missing or invalid " + HeaderUserID + " header",
				})
			}

			role := Role(c.Request().Header.Get(HeaderUserRole))
			switch role {
			case RoleCustomer, RoleRestaurant, RoleCourier, RoleAdmin:
			default:
				return c.JSON(http.StatusUnauthorized, errorBody{
					Code:    "UNAUTHENTICATED",
					Message: "missing or invalid " + HeaderUserRole + " header",
				})
			}

			c.Set(identityContextKey, Identity{ID: id, Role: role})
			return next(c)
		}
	}
}

// RequireRole rejects callers whose role is not in the allowed set.
func RequireRole(allowed ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity := IdentityFrom(c)
			for _, role := range allowed {
				if identity.Role == role {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, errorBody{
				Code:    "FORBIDDEN",
				Message: "role " + string(identity.Role) + " may not call this endpoint",
			})
		}
	}
}

// IdentityFrom returns the caller identity bound by IdentityMiddleware.
func IdentityFrom(c echo.Context) Identity {
	identity, _ := c.Get(identityContextKey).(Identity)
	return identity
}

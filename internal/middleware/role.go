package middleware // middleware provides shared request processing for handlers

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"
)

// Roles accepted by the write guard.
const (
    RoleAdmin  = "admin"
    RoleEditor = "editor"
)

// RequireRole returns a middleware function that enforces that the
// authenticated caller has one of the specified roles.  It assumes JWTAuth
// ran first and stored the role under ContextRole; a missing or unknown
// role yields 403 Forbidden.
func RequireRole(roles ...string) echo.MiddlewareFunc {
    allowed := make(map[string]bool, len(roles))
    for _, r := range roles {
        allowed[r] = true
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            role, ok := c.Get(ContextRole).(string)
            if !ok || !allowed[role] {
                return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
            }
            return next(c)
        }
    }
}

// WriteGuard bundles JWTAuth and RequireRole(admin, editor) for routes that
// modify the catalogue.  An empty secret disables the guard and returns no
// middleware at all.
func WriteGuard(secret string) []echo.MiddlewareFunc {
    if strings.TrimSpace(secret) == "" {
        return nil
    }
    return []echo.MiddlewareFunc{JWTAuth(secret), RequireRole(RoleAdmin, RoleEditor)}
}

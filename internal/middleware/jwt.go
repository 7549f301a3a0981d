package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// Context keys populated by JWTAuth.
const (
    ContextSubject = "subject"
    ContextRole    = "role"
)

// bearerClaims validates the HS256 Bearer token on the request and returns
// its "sub" and "role" claims.  errMsg is the 401 message when it fails.
func bearerClaims(c echo.Context, secret string) (sub, role, errMsg string) {
    // A valid header starts with "Bearer " followed by the JWT.
    auth := c.Request().Header.Get("Authorization")
    if !strings.HasPrefix(auth, "Bearer ") {
        return "", "", "missing bearer token"
    }
    raw := strings.TrimPrefix(auth, "Bearer ")

    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    }, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
    if err != nil || !tok.Valid {
        return "", "", "invalid token"
    }

    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return "", "", "invalid claims"
    }
    sub, _ = claims.GetSubject()
    role, _ = claims["role"].(string)
    return sub, role, ""
}

// JWTAuth returns an Echo middleware that validates an HS256 Bearer token
// and stores its "sub" and "role" claims in the request context under
// ContextSubject and ContextRole.  Expired tokens are rejected by the
// parser.  The secret must match the one given to utils.NewAccessToken.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            sub, role, msg := bearerClaims(c, secret)
            if msg != "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": msg})
            }
            c.Set(ContextSubject, sub)
            c.Set(ContextRole, role)
            return next(c)
        }
    }
}

// OptionalIdentity stores the claims of a valid Bearer token like JWTAuth
// does but never rejects the request.  Group-level middleware such as the
// rate limiter runs before route-level JWTAuth, so it reads the caller from
// here.
func OptionalIdentity(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if sub, role, msg := bearerClaims(c, secret); msg == "" {
                c.Set(ContextSubject, sub)
                c.Set(ContextRole, role)
            }
            return next(c)
        }
    }
}

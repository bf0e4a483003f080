package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

	"github.com/hilgaap/inventori-api/internal/utils"
)

// Context keys under which JWTAuth stores the verified identity claims.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRole   = "role"
)

// errJSON writes a failure response in the API envelope shared by every
// endpoint: {success:false, error:..., code:...}.
func errJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, echo.Map{"success": false, "error": msg, "code": status})
}

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's identity claims into the request context. The
// provided secret must match the one used when issuing tokens. Protected
// routes wrap themselves with this middleware so handlers can read the
// authenticated user via c.Get(CtxUserID), c.Get(CtxEmail) and
// c.Get(CtxRole). A missing or malformed header, a bad signature, an
// expired token and a refresh token all yield the same 401.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return errJSON(c, http.StatusUnauthorized, "Unauthorized")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			cl, err := utils.VerifyAccessToken(secret, raw)
			if err != nil {
				return errJSON(c, http.StatusUnauthorized, "Invalid token")
			}

			// Store the identity claims in the context for handlers and
			// downstream middleware.
			c.Set(CtxUserID, cl.ID)
			c.Set(CtxEmail, cl.Email)
			c.Set(CtxRole, cl.Role)
			return next(c)
		}
	}
}

package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

var unixEpoch = time.Unix(0, 0)

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

const bearerPrefix = "Bearer "

// cookieSecure decides the Secure attribute: on when the request itself came
// in over TLS, or when forced by configuration (TLS-terminating proxy).
func (h *AuthHandler) cookieSecure(c *gin.Context) bool {
	return h.secureCookies || c.Request.TLS != nil
}

// setSessionCookie issues the session cookie to the client.
func (h *AuthHandler) setSessionCookie(c *gin.Context, tokenString string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   h.cookieSecure(c),
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookie overwrites the session cookie with an empty value and
// Max-Age=0 on the wire. Attributes must match the ones used on set or the
// browser keeps the original cookie.
func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  unixEpoch,
		HttpOnly: true,
		Secure:   h.cookieSecure(c),
		SameSite: http.SameSiteLaxMode,
	})
}

// extractToken resolves the caller's token: session cookie first, then the
// Authorization bearer header.
func extractToken(c *gin.Context) (string, bool) {
	if cookie, err := c.Request.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	authz := c.GetHeader("Authorization")
	if strings.HasPrefix(authz, bearerPrefix) {
		if t := strings.TrimSpace(strings.TrimPrefix(authz, bearerPrefix)); t != "" {
			return t, true
		}
	}

	return "", false
}

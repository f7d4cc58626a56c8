package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	identityCtx         = "identity"
	tokenCtx            = "token"
)

// identityMiddleware accepts a bearer token only when the JWT parses
// and the session store still has it flagged as logged in.
func (h *Handler) identityMiddleware(c *gin.Context) {
	header := c.GetHeader(authorizationHeader)
	if header == "" {
		respond(c, http.StatusUnauthorized, "token is missing", nil)
		c.Abort()
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		respond(c, http.StatusUnauthorized, "invalid authorization header", nil)
		c.Abort()
		return
	}
	token := parts[1]

	identity, err := h.tokenManager.Parse(token)
	if err != nil {
		respond(c, http.StatusUnauthorized, "token is invalid or expired", nil)
		c.Abort()
		return
	}

	record, err := h.sessions.Get(c.Request.Context(), token)
	if err != nil || !record.LoggedIn {
		respond(c, http.StatusUnauthorized, "token is invalid or expired", nil)
		c.Abort()
		return
	}

	c.Set(identityCtx, identity)
	c.Set(tokenCtx, token)
	c.Next()
}

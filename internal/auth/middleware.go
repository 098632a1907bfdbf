package auth

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/promissoria/backend/internal/access"
	"github.com/rs/zerolog/log"
)

type contextKey string

const subjectKey contextKey = "auth-subject"

type httpError struct {
	Error string `json:"error"`
}

// Middleware rejects requests without a valid bearer token and stores the
// authenticated subject in the context.
//
// OPTIONS requests pass without a token, browsers send CORS preflight
// requests without credentials.
func Middleware(issuer Issuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: ErrMissingToken.Error()})
			return
		}

		subject, err := issuer.Parse(strings.TrimSpace(token))
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("Authentication")
			c.AbortWithStatusJSON(http.StatusUnauthorized, httpError{Error: ErrInvalidToken.Error()})
			return
		}

		c.Set(string(subjectKey), subject)
		c.Next()
	}
}

// RequireRole only lets subjects with the given role pass.
func RequireRole(role access.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		subject, ok := Subject(c)
		if !ok || subject.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, httpError{Error: access.ErrForbidden.Error()})
			return
		}

		c.Next()
	}
}

// Subject returns the authenticated subject of the request.
func Subject(c *gin.Context) (access.Subject, bool) {
	value, ok := c.Get(string(subjectKey))
	if !ok {
		return access.Subject{}, false
	}

	subject, ok := value.(access.Subject)
	return subject, ok
}

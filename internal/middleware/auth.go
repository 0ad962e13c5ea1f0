package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/surveyhub/internal/apperror"
	"github.com/lshigami/surveyhub/internal/auth"
	"github.com/lshigami/surveyhub/internal/dto"
	"github.com/lshigami/surveyhub/internal/policy"
	"github.com/lshigami/surveyhub/internal/service"
	"github.com/rs/zerolog/log"
)

const scopeKey = "policy.scope"

// Authenticate resolves an optional bearer token into the request principal.
// Requests without a token continue anonymously; a bad token is rejected.
func Authenticate(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.Next()
			return
		}

		p, err := authService.Authenticate(c.Request.Context(), token)
		if err != nil {
			var appErr *apperror.Error
			if errors.As(err, &appErr) && appErr.Kind == apperror.KindUnauthenticated {
				c.AbortWithStatusJSON(http.StatusUnauthorized, dto.DetailResponse{Detail: appErr.Message})
				return
			}
			log.Error().Err(err).Msg("Authentication failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal server error"})
			return
		}
		auth.SetPrincipal(c, p)
		c.Next()
	}
}

// bearerToken accepts both "Bearer <token>" and "Token <token>".
func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return ""
	}
	switch strings.ToLower(scheme) {
	case "bearer", "token":
		return strings.TrimSpace(token)
	default:
		return ""
	}
}

// Authorize evaluates an entity policy before the handler runs and stores the
// resulting scope for the handler.
func Authorize(fn policy.Func) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := auth.PrincipalFrom(c)
		decision := fn(p, policy.ActionFromMethod(c.Request.Method))
		if !decision.Allowed {
			log.Debug().
				Str("method", c.Request.Method).
				Str("path", c.FullPath()).
				Str("reason", decision.Reason).
				Msg("Request denied by policy")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.DetailResponse{Detail: decision.Reason})
			return
		}
		c.Set(scopeKey, decision.Scope)
		c.Next()
	}
}

// ScopeFrom returns the scope stored by Authorize, or policy.Unscoped.
func ScopeFrom(c *gin.Context) policy.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if scope, ok := v.(policy.Scope); ok && scope != nil {
			return scope
		}
	}
	return policy.Unscoped
}

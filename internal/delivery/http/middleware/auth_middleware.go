package middleware

import (
	"strings"

	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware resolves the bearer token to an Actor and stores it on both
// the gin context and the request context.
func AuthMiddleware(authUC domain.AuthUsecase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			c.Error(apperror.Unauthorized("Authentication credentials were not provided."))
			c.Abort()
			return
		}

		actor, err := authUC.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.Error(err)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyActor), actor)
		c.Request = c.Request.WithContext(domain.WithActor(c.Request.Context(), actor))
		c.Next()
	}
}

// CurrentActor returns the Actor set by AuthMiddleware.
func CurrentActor(c *gin.Context) (domain.Actor, bool) {
	v, ok := c.Get(string(domain.KeyActor))
	if !ok {
		return nil, false
	}
	actor, ok := v.(domain.Actor)
	return actor, ok
}

package v1

import (
	"errors"
	"io"
	"strconv"

	"opportunityhub-backend/internal/delivery/http/middleware"
	"opportunityhub-backend/internal/domain"
	"opportunityhub-backend/pkg/apperror"
	"opportunityhub-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into req and pushes a field-keyed validation
// error on failure. An empty body binds to the zero value.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.Error(apperror.Validation("Validation failed", validation.FormatValidationErrors(err)))
		return false
	}
	return true
}

// pathID parses an integer path parameter. Non-numeric ids never match a
// resource, so they are reported as not found.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.Error(apperror.NotFound("Not found."))
		return 0, false
	}
	return id, true
}

func currentActor(c *gin.Context) (domain.Actor, bool) {
	actor, ok := middleware.CurrentActor(c)
	if !ok {
		c.Error(apperror.Unauthorized("Authentication credentials were not provided."))
		return nil, false
	}
	return actor, true
}

func queryInt(c *gin.Context, name string) int {
	n, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return n
}


package api

import (
	"github.com/gin-gonic/gin"

	"github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/validation"
)

// bindJSON decodes the request body into dst and validates its tags.
func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return errors.Validation("request body is not valid JSON").WithCause(err)
	}
	return validation.Validate(dst)
}

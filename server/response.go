package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/traduckxion/transcribe/errors"
	"github.com/traduckxion/transcribe/logger"
)

// DataResponse is the standard success envelope.
type DataResponse struct {
	Data any   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta carries list metadata.
type Meta struct {
	Total int `json:"total,omitempty"`
}

// RespondWithError writes the AppError envelope and status for err. Errors
// outside the taxonomy become a logged 500.
func RespondWithError(c *gin.Context, err error) {
	appErr, ok := apperrors.AsAppError(err)
	if !ok {
		logger.Get("server").WithContext(c.Request.Context()).Error("unhandled error",
			logger.ErrorFields(c.FullPath(), err))
		appErr = apperrors.Internal(err)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToResponse())
}

// RespondOK sends a 200 response wrapping data.
func RespondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, DataResponse{Data: data})
}

// RespondList sends a 200 response with data and its length.
func RespondList[T any](c *gin.Context, items []T) {
	c.JSON(http.StatusOK, DataResponse{Data: items, Meta: &Meta{Total: len(items)}})
}

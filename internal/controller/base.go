package controller

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slidelens/slidelens/internal/core/pdf"
	"github.com/slidelens/slidelens/internal/static"
	"github.com/slidelens/slidelens/internal/storage"
	"github.com/slidelens/slidelens/internal/types"
)

func BindRequest[T any](r *gin.Context, success func(T)) {
	var request T
	var err error

	context_type := r.GetHeader("Content-Type")
	if context_type == "application/json" {
		err = r.ShouldBindJSON(&request)
	} else {
		err = r.ShouldBind(&request)
	}

	if err != nil {
		resp := types.ErrorResponse(-400, err.Error())
		r.JSON(http.StatusBadRequest, resp)
		return
	}
	success(request)
}

// ErrorStatus maps service errors to the http status, the envelope code is
// the negated status.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, pdf.ErrEmptyUpload),
		errors.Is(err, pdf.ErrNotPDF),
		errors.Is(err, static.ErrUnknownModel):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrReportNotFound):
		return http.StatusNotFound
	case errors.Is(err, pdf.ErrUploadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := ErrorStatus(err)
	c.AbortWithStatusJSON(status, types.ErrorResponse(-status, err.Error()))
}

package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/slidelens/slidelens/internal/report"
	"github.com/slidelens/slidelens/internal/service"
	"github.com/slidelens/slidelens/internal/types"
)

type listReportsResponse struct {
	Reports []types.ReportSummary `json:"reports"`
}

func (h *handlers) Reports(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse(-400, "invalid limit"))
		return
	}

	reports, err := h.service.Reports(c.Request.Context(), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.SuccessResponse(&listReportsResponse{Reports: reports}))
}

func (h *handlers) Report(c *gin.Context) {
	result, err := h.service.Report(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, types.SuccessResponse(result))
	case "markdown", "md":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown(result)))
	case "html":
		html, err := report.HTML(result)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	default:
		c.JSON(http.StatusBadRequest, types.ErrorResponse(-400, "unsupported format"))
	}
}

func Models(c *gin.Context) {
	c.JSON(http.StatusOK, types.SuccessResponse(service.Models()))
}

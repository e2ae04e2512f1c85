package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slidelens/slidelens/internal/service"
	"github.com/slidelens/slidelens/internal/types"
)

type fullAnalysisRequest struct {
	LLMModelID  int      `form:"llm_model_id"`
	VLMModelID  int      `form:"vlm_model_id"`
	MaxTokens   int      `form:"max_tokens"`
	Temperature *float64 `form:"temperature"`
}

func (h *handlers) Analyze(c *gin.Context) {
	withUpload(c, func(upload service.Upload) {
		result, err := h.service.Quick(c.Request.Context(), upload)
		if err != nil {
			abortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, types.SuccessResponse(result))
	})
}

func (h *handlers) AnalyzeFull(c *gin.Context) {
	BindRequest(c, func(req fullAnalysisRequest) {
		options := types.AnalysisOptions{
			LLMModelID:  req.LLMModelID,
			VLMModelID:  req.VLMModelID,
			MaxTokens:   req.MaxTokens,
			Temperature: -1,
		}
		if req.Temperature != nil {
			options.Temperature = *req.Temperature
		}

		withUpload(c, func(upload service.Upload) {
			report, err := h.service.Full(c.Request.Context(), upload, options)
			if err != nil {
				abortWithError(c, err)
				return
			}
			c.JSON(http.StatusOK, types.SuccessResponse(report))
		})
	})
}

func withUpload(c *gin.Context, handle func(service.Upload)) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse(-400, "file is required: "+err.Error()))
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse(-400, err.Error()))
		return
	}
	defer file.Close()

	handle(service.Upload{Filename: header.Filename, Reader: file})
}

package http

import (
	"fmt"
	"net/http"
	"strconv"

	"ember-scriptorium/domain/dto"
	"ember-scriptorium/domain/model"
	"ember-scriptorium/usecase"

	"github.com/gin-gonic/gin"
)

type IQuoteHandler interface {
	Upload(ctx *gin.Context)
	List(ctx *gin.Context)
}

type QuoteHandler struct {
	quoteUsecase usecase.IQuoteUsecase
}

func NewQuoteHandler(uc usecase.IQuoteUsecase) IQuoteHandler {
	return &QuoteHandler{quoteUsecase: uc}
}

// Upload replaces the whole quote bank with the posted rows.
func (h *QuoteHandler) Upload(ctx *gin.Context) {
	var req dto.QuoteUploadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	count, err := h.quoteUsecase.ReplaceAll(ctx.Request.Context(), req.Quotes)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: fmt.Sprintf("Successfully uploaded %d quotes", count)})
}

func (h *QuoteHandler) List(ctx *gin.Context) {
	skip := parseQueryInt(ctx, "skip", 0)
	limit := parseQueryInt(ctx, "limit", 50)

	quotes, total, err := h.quoteUsecase.List(ctx.Request.Context(), skip, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if quotes == nil {
		quotes = []model.Quote{}
	}
	ctx.JSON(http.StatusOK, dto.QuoteListResponse{
		Quotes: quotes,
		Total:  total,
		Skip:   skip,
		Limit:  limit,
	})
}

func parseQueryInt(ctx *gin.Context, name string, fallback int64) int64 {
	if v := ctx.Query(name); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			return n
		}
	}
	return fallback
}

package http

import (
	"errors"
	"fmt"
	"net/http"

	"ember-scriptorium/domain/dto"
	"ember-scriptorium/domain/model"
	"ember-scriptorium/infrastructure/logger"
	"ember-scriptorium/usecase"

	"github.com/gin-gonic/gin"
)

type IPostHandler interface {
	Generate(ctx *gin.Context)
	Queue(ctx *gin.Context)
	Approved(ctx *gin.Context)
	Approve(ctx *gin.Context)
	Regenerate(ctx *gin.Context)
	Download(ctx *gin.Context)
}

type PostHandler struct {
	postUsecase usecase.IPostUsecase
}

func NewPostHandler(uc usecase.IPostUsecase) IPostHandler {
	return &PostHandler{postUsecase: uc}
}

func (h *PostHandler) Generate(ctx *gin.Context) {
	post, err := h.postUsecase.Generate(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, post)
}

func (h *PostHandler) Queue(ctx *gin.Context) {
	posts, err := h.postUsecase.Queue(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	ctx.JSON(http.StatusOK, dto.PostListResponse{Posts: posts})
}

func (h *PostHandler) Approved(ctx *gin.Context) {
	posts, err := h.postUsecase.Approved(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	if posts == nil {
		posts = []model.Post{}
	}
	ctx.JSON(http.StatusOK, dto.PostListResponse{Posts: posts})
}

func (h *PostHandler) Approve(ctx *gin.Context) {
	postID := ctx.Param("postId")
	if err := h.postUsecase.Approve(ctx.Request.Context(), postID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Post approved successfully"})
}

func (h *PostHandler) Regenerate(ctx *gin.Context) {
	postID := ctx.Param("postId")
	post, err := h.postUsecase.Regenerate(ctx.Request.Context(), postID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, post)
}

func (h *PostHandler) Download(ctx *gin.Context) {
	postID := ctx.Param("postId")
	data, filename, err := h.postUsecase.Export(ctx.Request.Context(), postID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	ctx.Data(http.StatusOK, "application/zip", data)
}

// respondError maps the error taxonomy onto transport status codes so
// callers can tell "not configured" from "upstream failed" from "not found".
func respondError(ctx *gin.Context, err error) {
	var genErr *model.GenerationError
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, model.ErrPostNotFound), errors.Is(err, model.ErrNoQuotesAvailable):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrCredentialsMissing), errors.Is(err, usecase.ErrEncryptionUnavailable):
		status = http.StatusBadRequest
	case errors.As(err, &genErr), errors.Is(err, model.ErrImageDecodeFailed):
		status = http.StatusBadGateway
	}
	if status == http.StatusInternalServerError {
		logger.GetLogger().WithField("error", err.Error()).Error("Request failed")
	} else {
		logger.GetLogger().WithField("error", err.Error()).Warn("Request rejected")
	}
	ctx.JSON(status, gin.H{"error": err.Error()})
}

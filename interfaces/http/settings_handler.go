package http

import (
	"net/http"

	"ember-scriptorium/domain/dto"
	"ember-scriptorium/usecase"

	"github.com/gin-gonic/gin"
)

type ISettingsHandler interface {
	Update(ctx *gin.Context)
	Status(ctx *gin.Context)
}

type SettingsHandler struct {
	settingsUsecase usecase.ISettingsUsecase
}

func NewSettingsHandler(uc usecase.ISettingsUsecase) ISettingsHandler {
	return &SettingsHandler{settingsUsecase: uc}
}

func (h *SettingsHandler) Update(ctx *gin.Context) {
	var req dto.SettingsUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.settingsUsecase.Update(ctx.Request.Context(), &req); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Settings updated successfully"})
}

// Status reports presence flags only; stored values never leave encrypted
// form on any read path.
func (h *SettingsHandler) Status(ctx *gin.Context) {
	status, err := h.settingsUsecase.Status(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, status)
}

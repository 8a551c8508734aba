package handler

import (
	"net/http"

	"lpgpos/internal/apierror"
	"lpgpos/internal/dto"
	"lpgpos/internal/middleware"
	"lpgpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PromosHandler struct{ svc service.PromoService }

func NewPromosHandler(svc service.PromoService) *PromosHandler { return &PromosHandler{svc: svc} }

func (h *PromosHandler) Create(c *gin.Context) {
	var req dto.CreatePromoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *PromosHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PromosHandler) Discontinue(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid promo id"))
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	if err := h.svc.Discontinue(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

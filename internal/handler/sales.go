package handler

import (
	"net/http"
	"strings"

	"lpgpos/internal/apierror"
	"lpgpos/internal/clock"
	"lpgpos/internal/dto"
	"lpgpos/internal/middleware"
	"lpgpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct {
	checkout  service.CheckoutService
	discounts service.DiscountService
	clk       clock.Clock
}

func NewSalesHandler(checkout service.CheckoutService, discounts service.DiscountService, clk clock.Clock) *SalesHandler {
	return &SalesHandler{checkout: checkout, discounts: discounts, clk: clk}
}

// Checkout runs the full sale pipeline. Atomic: on any failure nothing is
// persisted and the cart can be retried as-is.
func (h *SalesHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	cashierID, _ := uuid.Parse(claims.UserID)

	resp, err := h.checkout.Checkout(c.Request.Context(), req, cashierID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SalesHandler) GetSale(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid sale id"))
		return
	}
	resp, err := h.checkout.GetSale(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) ListSales(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.checkout.ListSales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ValidateCode is the POS pre-check before a code lands in the cart. Read
// only; redemption happens at checkout under a row lock.
func (h *SalesHandler) ValidateCode(c *gin.Context) {
	var req dto.ValidateCodeRequest
	if !bindAndValidate(c, &req) {
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	now := h.clk.Now()
	promo, err := h.discounts.ValidatePromoCode(c.Request.Context(), req.Kind, code, now)
	if err != nil {
		respondError(c, err)
		return
	}

	summary, err := h.discounts.ValidateDiscounts(c.Request.Context(), []dto.DiscountRequest{{
		Kind: req.Kind,
		Code: code,
	}}, nil, uuid.Nil, req.Subtotal, now)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ValidateCodeResponse{
		Code:           promo.Code,
		Name:           promo.Name,
		Kind:           promo.Kind,
		DiscountType:   promo.DiscountType,
		Value:          promo.Value,
		DiscountAmount: summary.Total,
	})
}

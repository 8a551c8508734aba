package handler

import (
	"net/http"

	"lpgpos/internal/apierror"
	"lpgpos/internal/clock"
	"lpgpos/internal/dto"
	"lpgpos/internal/middleware"
	"lpgpos/internal/model"
	"lpgpos/internal/repository"
	"lpgpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type InventoryHandler struct {
	stock         service.StockService
	costing       service.CostingService
	inventoryRepo repository.InventoryRepository
	clk           clock.Clock
}

func NewInventoryHandler(stock service.StockService, costing service.CostingService, inventoryRepo repository.InventoryRepository, clk clock.Clock) *InventoryHandler {
	return &InventoryHandler{stock: stock, costing: costing, inventoryRepo: inventoryRepo, clk: clk}
}

func (h *InventoryHandler) ReceiveStock(c *gin.Context) {
	var req dto.ReceiveStockRequest
	if !bindAndValidate(c, &req) {
		return
	}

	variantID, err := uuid.Parse(req.ProductVariantID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product variant id"))
		return
	}
	locationID, err := uuid.Parse(req.LocationID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid location id"))
		return
	}
	referenceID, err := uuid.Parse(req.ReferenceID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid reference id"))
		return
	}

	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	err = h.stock.ReceiveStock(c.Request.Context(), locationID, variantID, req.Qty, req.UnitCost,
		model.Reference{Kind: model.RefPurchase, ID: referenceID}, userID, h.clk.Now(), req.Notes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) ListBalances(c *gin.Context) {
	locationID, err := uuid.Parse(c.Param("location_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid location id"))
		return
	}

	balances, err := h.inventoryRepo.ListBalances(c.Request.Context(), locationID)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]dto.BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = dto.BalanceResponse{
			ProductVariantID: b.ProductVariantID.String(),
			LocationID:       b.LocationID.String(),
			QtyFilled:        b.QtyFilled,
			QtyEmpty:         b.QtyEmpty,
			QtyReserved:      b.QtyReserved,
		}
	}
	c.JSON(http.StatusOK, resp)
}

// GetUnitCost returns the weighted-average unit cost of a variant as of now.
func (h *InventoryHandler) GetUnitCost(c *gin.Context) {
	variantID, err := uuid.Parse(c.Param("variant_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("invalid product variant id"))
		return
	}

	asOf := h.clk.Now()
	cost, err := h.costing.WeightedAverageCost(c.Request.Context(), variantID, asOf)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnitCostResponse{
		ProductVariantID: variantID.String(),
		AsOf:             asOf.Format("2006-01-02 15:04:05"),
		UnitCost:         cost,
	})
}

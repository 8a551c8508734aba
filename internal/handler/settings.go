package handler

import (
	"net/http"

	"lpgpos/internal/clock"
	"lpgpos/internal/dto"
	"lpgpos/internal/middleware"
	"lpgpos/internal/model"
	"lpgpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SettingsHandler struct {
	settings   service.SettingsService
	dailyClose service.DailyCloseService
	clk        clock.Clock
}

func NewSettingsHandler(settings service.SettingsService, dailyClose service.DailyCloseService, clk clock.Clock) *SettingsHandler {
	return &SettingsHandler{settings: settings, dailyClose: dailyClose, clk: clk}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	setting, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	vatActive, err := h.settings.IsVatActiveForDate(c.Request.Context(), h.clk.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settingsResponse(setting, vatActive))
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if !bindAndValidate(c, &req) {
		return
	}
	setting, err := h.settings.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	vatActive, err := h.settings.IsVatActiveForDate(c.Request.Context(), h.clk.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settingsResponse(setting, vatActive))
}

// CloseDay locks a business date; no further sales can be recorded on it.
func (h *SettingsHandler) CloseDay(c *gin.Context) {
	var req dto.CloseDayRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	if err := h.dailyClose.CloseDay(c.Request.Context(), req.BusinessDate, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func settingsResponse(setting *model.CompanySetting, vatActive bool) dto.SettingsResponse {
	var effectiveDate *string
	if setting.VatEffectiveDate != nil {
		d := setting.VatEffectiveDate.Format("2006-01-02")
		effectiveDate = &d
	}
	return dto.SettingsResponse{
		VatRegistered:    setting.VatRegistered,
		VatRate:          setting.VatRate,
		VatMode:          setting.VatMode,
		VatEffectiveDate: effectiveDate,
		VatActive:        vatActive,
		ManagerPinSet:    setting.ManagerPinHash != nil,
	}
}

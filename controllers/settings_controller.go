package controllers

import (
	"net/http"

	"hotel-folio/services"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	Settings *services.SettingsService
}

func NewSettingsController(settings *services.SettingsService) *SettingsController {
	return &SettingsController{Settings: settings}
}

func (sc *SettingsController) GetHotelSettings(c *gin.Context) {
	hotel, err := sc.Settings.Hotel(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotel": hotel})
}

func (sc *SettingsController) UpdateHotelSettings(c *gin.Context) {
	var payload services.HotelSettingsInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		badRequest(c, err.Error())
		return
	}
	hotel, err := sc.Settings.UpdateHotel(c.Request.Context(), payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotel": hotel})
}

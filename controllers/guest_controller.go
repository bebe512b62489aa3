package controllers

import (
	"net/http"

	"hotel-folio/services"
	"hotel-folio/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	Guests *services.GuestService
}

func NewGuestController(guests *services.GuestService) *GuestController {
	return &GuestController{Guests: guests}
}

// GET /api/guests?q=
func (gc *GuestController) GetGuests(c *gin.Context) {
	guests, err := gc.Guests.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guests)
}

// GET /api/guests/:id
func (gc *GuestController) GetGuestByID(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	guest, err := gc.Guests.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

// PUT /api/guests/:id
func (gc *GuestController) UpdateGuest(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in services.GuestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	guest, err := gc.Guests.Update(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, guest)
}

package controllers

import (
	"net/http"

	"hotel-folio/models"
	"hotel-folio/services"
	"hotel-folio/utils"

	"github.com/gin-gonic/gin"
)

type RoomController struct {
	Rooms *services.RoomService
}

func NewRoomController(rooms *services.RoomService) *RoomController {
	return &RoomController{Rooms: rooms}
}

// ----------------------------------------------------
// GET /api/rooms?status=
// ----------------------------------------------------
func (rc *RoomController) GetRooms(c *gin.Context) {
	status := c.Query("status")
	switch status {
	case "", models.RoomStatusFree, models.RoomStatusOccupied, models.RoomStatusHousekeeping:
	default:
		badRequest(c, "unknown room status "+status)
		return
	}
	rooms, err := rc.Rooms.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rooms)
}

// ----------------------------------------------------
// POST /api/rooms
// ----------------------------------------------------
func (rc *RoomController) CreateRoom(c *gin.Context) {
	var in services.RoomInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	room, err := rc.Rooms.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, room)
}

// ----------------------------------------------------
// POST /api/rooms/:id/clean
// ----------------------------------------------------
func (rc *RoomController) MarkClean(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	room, err := rc.Rooms.MarkClean(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, room)
}

package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"hotel-folio/services"
	"hotel-folio/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto status codes and the error body.
func respondError(c *gin.Context, err error) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, "error.validation", err.Error())
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "error.notFound", err.Error())
	case errors.Is(err, services.ErrStayNotCheckedIn):
		utils.JSONError(c, http.StatusConflict, "error.stayNotCheckedIn", err.Error())
	case errors.Is(err, services.ErrAuditAlreadyRun):
		utils.JSONError(c, http.StatusConflict, "error.auditAlreadyRun", err.Error())
	case errors.Is(err, services.ErrAuditInProgress):
		utils.JSONError(c, http.StatusConflict, "error.auditInProgress", err.Error())
	case errors.Is(err, services.ErrRoomNotAvailable):
		utils.JSONError(c, http.StatusConflict, "error.roomNotAvailable", err.Error())
	case errors.Is(err, services.ErrConflict):
		utils.JSONError(c, http.StatusConflict, "error.conflict", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "error.internal", "internal server error")
	}
}

func badRequest(c *gin.Context, message string) {
	utils.JSONError(c, http.StatusBadRequest, "error.invalidRequest", message)
}

// idParam parses a positive numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

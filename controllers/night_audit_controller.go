package controllers

import (
	"fmt"
	"net/http"

	"hotel-folio/services"
	"hotel-folio/utils"

	"github.com/gin-gonic/gin"
)

type NightAuditController struct {
	Audits   *services.NightAuditService
	Exporter *services.AuditExporter
}

func NewNightAuditController(audits *services.NightAuditService, exporter *services.AuditExporter) *NightAuditController {
	return &NightAuditController{Audits: audits, Exporter: exporter}
}

type runAuditPayload struct {
	Date string `json:"date"`
}

// POST /api/night-audits
// An empty body closes yesterday in the hotel timezone.
func (nc *NightAuditController) Run(c *gin.Context) {
	var payload runAuditPayload
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	date := payload.Date
	if date == "" {
		date = nc.Audits.PreviousBusinessDate()
	}
	rec, err := nc.Audits.Run(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, rec)
}

// GET /api/night-audits?from&to
func (nc *NightAuditController) List(c *gin.Context) {
	records, err := nc.Audits.List(c.Request.Context(), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, records)
}

// GET /api/night-audits/:date
func (nc *NightAuditController) Get(c *gin.Context) {
	rec, err := nc.Audits.Get(c.Request.Context(), c.Param("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, rec)
}

// GET /api/night-audits/export?from&to
func (nc *NightAuditController) Export(c *gin.Context) {
	from, to := c.Query("from"), c.Query("to")

	name := "night-audit.xlsx"
	if from != "" || to != "" {
		name = fmt.Sprintf("night-audit_%s_%s.xlsx", from, to)
	}
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+name)
	c.Status(http.StatusOK)
	if err := nc.Exporter.Export(c.Request.Context(), c.Writer, from, to); err != nil {
		if c.Writer.Written() {
			_ = c.Error(err)
			return
		}
		c.Writer.Header().Del("Content-Type")
		c.Writer.Header().Del("Content-Disposition")
		respondError(c, err)
	}
}

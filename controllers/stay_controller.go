package controllers

import (
	"net/http"
	"time"

	"hotel-folio/services"
	"hotel-folio/utils"

	"github.com/gin-gonic/gin"
)

type StayController struct {
	Stays       *services.StayService
	Charges     *services.ChargeService
	Settlements *services.SettlementService
}

func NewStayController(stays *services.StayService, charges *services.ChargeService, settlements *services.SettlementService) *StayController {
	return &StayController{Stays: stays, Charges: charges, Settlements: settlements}
}

// POST /api/stays
func (sc *StayController) CheckIn(c *gin.Context) {
	var in services.CheckInInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	stay, err := sc.Stays.CheckIn(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, stay)
}

// GET /api/stays/:id
func (sc *StayController) GetStay(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	stay, err := sc.Stays.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stay)
}

// PATCH /api/stays/:id/adjustments
func (sc *StayController) UpdateAdjustments(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in services.AdjustmentsInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	stay, err := sc.Stays.UpdateAdjustments(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, stay)
}

// POST /api/stays/:id/charges
func (sc *StayController) PostCharge(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var in services.ChargeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	charge, err := sc.Charges.Post(c.Request.Context(), id, in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, charge)
}

// GET /api/stays/:id/bill?at=RFC3339
func (sc *StayController) PreviewBill(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var at time.Time
	if raw := c.Query("at"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			badRequest(c, "at must be RFC3339")
			return
		}
		at = t.UTC()
	}
	bill, err := sc.Settlements.PreviewBill(c.Request.Context(), id, at)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, bill)
}

type checkoutPayload struct {
	Payments []services.PaymentInput `json:"payments"`
}

// POST /api/stays/:id/checkout
func (sc *StayController) Checkout(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var payload checkoutPayload
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			badRequest(c, err.Error())
			return
		}
	}
	res, err := sc.Settlements.Checkout(c.Request.Context(), services.CheckoutInput{
		StayID:   id,
		Payments: payload.Payments,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, res)
}

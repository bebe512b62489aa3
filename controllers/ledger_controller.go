package controllers

import (
	"net/http"

	"hotel-folio/services"
	"hotel-folio/utils"

	"github.com/gin-gonic/gin"
)

type LedgerController struct {
	Ledger         *services.LedgerService
	Reconciliation *services.ReconciliationService
}

func NewLedgerController(ledger *services.LedgerService, recon *services.ReconciliationService) *LedgerController {
	return &LedgerController{Ledger: ledger, Reconciliation: recon}
}

// POST /api/ledger/revenue
func (lc *LedgerController) PostRevenue(c *gin.Context) {
	var in services.RevenueInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err.Error())
		return
	}
	entry, err := lc.Ledger.PostRevenue(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, entry)
}

// GET /api/reconciliation/settlements
func (lc *LedgerController) IncompleteSettlements(c *gin.Context) {
	issues, err := lc.Reconciliation.IncompleteSettlements(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, issues)
}

// GET /api/ledger/cash-balance
func (lc *LedgerController) CashBalance(c *gin.Context) {
	balance, err := lc.Ledger.CashBalance(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, gin.H{"balance": balance})
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegisterID is the single running-balance row.
const CashRegisterID uint = 1

type CashRegister struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	Balance   decimal.Decimal `gorm:"column:balance;type:decimal(14,2);not null;default:0" json:"balance"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

const (
	CashReasonCheckinAdvance = "checkin-advance"
	CashReasonCheckout       = "checkout-payment"
)

// CashMovement records every change applied to the register balance.
type CashMovement struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	StayID *uint           `gorm:"column:stay_id;index" json:"stayId,omitempty"`
	Amount decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	Reason string          `gorm:"column:reason;size:32;not null" json:"reason"`
}

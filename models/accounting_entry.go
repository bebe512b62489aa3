package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

const (
	EntryCategoryRoom  = "room"
	EntryCategoryEvent = "event"
	EntryCategoryOther = "other"
)

// AccountingEntry is the shared ledger row. Settlement writes one per checkout;
// events and other revenue producers append with the same shape.
type AccountingEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	Category      string          `gorm:"column:category;size:32;index;not null" json:"category"`
	StayID        *uint           `gorm:"column:stay_id;index" json:"stayId,omitempty"`
	BaseAmount    decimal.Decimal `gorm:"column:base_amount;type:decimal(12,2);not null;default:0" json:"baseAmount"`
	TotalAmount   decimal.Decimal `gorm:"column:total_amount;type:decimal(12,2);not null;default:0" json:"totalAmount"`
	AdvanceAmount decimal.Decimal `gorm:"column:advance_amount;type:decimal(12,2);not null;default:0" json:"advanceAmount"`
	Balance       decimal.Decimal `gorm:"column:balance;type:decimal(12,2);not null;default:0" json:"balance"`
	PaymentMethod string          `gorm:"column:payment_method;size:64" json:"paymentMethod"`
	Description   string          `gorm:"column:description;size:255" json:"description,omitempty"`
	SettlementRef *string         `gorm:"column:settlement_ref;size:36;uniqueIndex" json:"settlementRef,omitempty"`
	Breakdown     datatypes.JSON  `gorm:"column:breakdown" json:"breakdown,omitempty"`
}

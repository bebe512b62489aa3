package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	InstrumentCash    = "cash"
	InstrumentBank    = "bank"
	InstrumentUPI     = "upi"
	InstrumentAdvance = "advance"
)

const PaymentStatusCompleted = "completed"

// PaymentRecord is append-only.
type PaymentRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`

	StayID        uint            `gorm:"column:stay_id;index;not null" json:"stayId"`
	RoomID        *uint           `gorm:"column:room_id" json:"roomId,omitempty"`
	Amount        decimal.Decimal `gorm:"column:amount;type:decimal(12,2);not null" json:"amount"`
	Instrument    string          `gorm:"column:instrument;size:16;index;not null" json:"instrument"`
	Reference     string          `gorm:"column:reference;size:128" json:"reference,omitempty"`
	Status        string          `gorm:"column:status;size:32;not null" json:"status"`
	SettlementRef *string         `gorm:"column:settlement_ref;size:36;index" json:"settlementRef,omitempty"`
}

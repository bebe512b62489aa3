package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// NightAuditRecord is the closed snapshot of one business day. The unique
// index on audit_date is what makes a day closable only once.
type NightAuditRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`

	AuditDate   string    `gorm:"column:audit_date;size:10;uniqueIndex;not null" json:"auditDate"`
	WindowStart time.Time `gorm:"column:window_start;not null" json:"windowStart"`
	WindowEnd   time.Time `gorm:"column:window_end;not null" json:"windowEnd"`

	TotalRoomRevenue decimal.Decimal `gorm:"column:total_room_revenue;type:decimal(14,2);not null;default:0" json:"totalRoomRevenue"`
	TotalPayments    decimal.Decimal `gorm:"column:total_payments;type:decimal(14,2);not null;default:0" json:"totalPayments"`
	PendingAmount    decimal.Decimal `gorm:"column:pending_amount;type:decimal(14,2);not null;default:0" json:"pendingAmount"`
	CashTotal        decimal.Decimal `gorm:"column:cash_total;type:decimal(14,2);not null;default:0" json:"cashTotal"`
	BankTotal        decimal.Decimal `gorm:"column:bank_total;type:decimal(14,2);not null;default:0" json:"bankTotal"`
	UPITotal         decimal.Decimal `gorm:"column:upi_total;type:decimal(14,2);not null;default:0" json:"upiTotal"`
	GSTAmount        decimal.Decimal `gorm:"column:gst_amount;type:decimal(14,2);not null;default:0" json:"gstAmount"`

	OccupiedRooms int64 `gorm:"column:occupied_rooms;not null;default:0" json:"occupiedRooms"`
	VacantRooms   int64 `gorm:"column:vacant_rooms;not null;default:0" json:"vacantRooms"`
}

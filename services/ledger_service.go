package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"hotel-folio/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// RevenueInput is revenue booked outside a room settlement: events, banquets,
// walk-in sales.
type RevenueInput struct {
	Category      string          `json:"category" validate:"required,oneof=event other"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"paymentMethod" validate:"max=32"`
	Description   string          `json:"description" validate:"max=255"`
}

type LedgerService struct {
	DB     *gorm.DB
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewLedgerService(db *gorm.DB, logger *logrus.Logger) *LedgerService {
	return &LedgerService{DB: db, Logger: logger, Now: utcNow}
}

// PostRevenue appends a non-room accounting entry. Night audit picks it up
// with the room settlements of the same business day.
func (s *LedgerService) PostRevenue(ctx context.Context, in RevenueInput) (models.AccountingEntry, error) {
	if err := validateStruct(in); err != nil {
		return models.AccountingEntry{}, err
	}
	if err := requirePositive("amount", in.Amount); err != nil {
		return models.AccountingEntry{}, err
	}

	at := utcNow()
	if s.Now != nil {
		at = s.Now().UTC()
	}
	entry := models.AccountingEntry{
		CreatedAt:     at,
		Category:      in.Category,
		BaseAmount:    in.Amount,
		TotalAmount:   in.Amount,
		AdvanceAmount: decimal.Zero,
		Balance:       decimal.Zero,
		PaymentMethod: strings.TrimSpace(in.PaymentMethod),
		Description:   strings.TrimSpace(in.Description),
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return models.AccountingEntry{}, fmt.Errorf("post revenue: %w", err)
	}

	s.Logger.WithFields(logrus.Fields{
		"entry_id": entry.ID,
		"category": entry.Category,
		"amount":   entry.TotalAmount.String(),
	}).Info("revenue posted")
	return entry, nil
}

func (s *LedgerService) CashBalance(ctx context.Context) (decimal.Decimal, error) {
	return CashBalance(ctx, s.DB)
}

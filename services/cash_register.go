package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-folio/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// creditCashRegister adds amount to the running cash balance inside tx.
func creditCashRegister(tx *gorm.DB, amount decimal.Decimal, stayID uint, reason string, at time.Time) error {
	if !amount.IsPositive() {
		return nil
	}

	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.CashRegister{ID: models.CashRegisterID, UpdatedAt: at}).Error; err != nil {
		return fmt.Errorf("ensure cash register: %w", err)
	}

	if err := tx.Model(&models.CashRegister{}).
		Where("id = ?", models.CashRegisterID).
		Updates(map[string]interface{}{
			"balance":    gorm.Expr("balance + ?", amount),
			"updated_at": at,
		}).Error; err != nil {
		return fmt.Errorf("credit cash register: %w", err)
	}

	sid := stayID
	movement := models.CashMovement{
		CreatedAt: at,
		StayID:    &sid,
		Amount:    amount,
		Reason:    reason,
	}
	if err := tx.Create(&movement).Error; err != nil {
		return fmt.Errorf("record cash movement: %w", err)
	}
	return nil
}

// CashBalance returns the current register balance; zero before the first cash payment.
func CashBalance(ctx context.Context, db *gorm.DB) (decimal.Decimal, error) {
	var reg models.CashRegister
	err := db.WithContext(ctx).First(&reg, models.CashRegisterID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("load cash register: %w", err)
	}
	return reg.Balance, nil
}

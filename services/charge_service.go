package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-folio/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChargeInput struct {
	Category    string          `json:"category" validate:"required,oneof=restaurant damage"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" validate:"max=255"`
	Source      string          `json:"source" validate:"max=64"`
}

// ChargeService accepts postings from the restaurant and maintenance modules.
type ChargeService struct {
	DB     *gorm.DB
	Logger *logrus.Logger
}

func NewChargeService(db *gorm.DB, logger *logrus.Logger) *ChargeService {
	return &ChargeService{DB: db, Logger: logger}
}

// Post appends a charge to an open stay. Damage charges also accumulate on
// the stay's damage amount, which is what the bill reads.
func (s *ChargeService) Post(ctx context.Context, stayID uint, in ChargeInput) (models.AncillaryCharge, error) {
	if err := validateStruct(in); err != nil {
		return models.AncillaryCharge{}, err
	}
	if err := requirePositive("amount", in.Amount); err != nil {
		return models.AncillaryCharge{}, err
	}

	charge := models.AncillaryCharge{
		StayID:      stayID,
		Category:    in.Category,
		Amount:      in.Amount,
		Description: strings.TrimSpace(in.Description),
		Source:      strings.TrimSpace(in.Source),
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var stay models.Stay
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&stay, stayID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundf("stay %d", stayID)
			}
			return fmt.Errorf("load stay %d: %w", stayID, err)
		}
		if stay.Status != models.StayStatusCheckedIn {
			return ErrStayNotCheckedIn
		}

		charge.CreatedAt = utcNow()
		if err := tx.Create(&charge).Error; err != nil {
			return fmt.Errorf("create charge: %w", err)
		}

		if in.Category == models.ChargeCategoryDamage {
			if err := tx.Model(&models.Stay{}).
				Where("id = ?", stayID).
				Update("damage_charge", gorm.Expr("damage_charge + ?", in.Amount)).Error; err != nil {
				return fmt.Errorf("accumulate damage: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return models.AncillaryCharge{}, err
	}

	s.Logger.WithFields(logrus.Fields{
		"stay_id":  stayID,
		"category": charge.Category,
		"amount":   charge.Amount.String(),
	}).Info("charge posted")
	return charge, nil
}

func (s *ChargeService) ListForStay(ctx context.Context, stayID uint) ([]models.AncillaryCharge, error) {
	var charges []models.AncillaryCharge
	if err := s.DB.WithContext(ctx).
		Where("stay_id = ?", stayID).
		Order("id ASC").
		Find(&charges).Error; err != nil {
		return nil, fmt.Errorf("list charges for stay %d: %w", stayID, err)
	}
	return charges, nil
}

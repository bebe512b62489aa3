package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-folio/models"

	"gorm.io/gorm"
)

type HotelSettingsInput struct {
	Name    string `json:"name" validate:"max=255"`
	Address string `json:"address"`
	Phone   string `json:"phone" validate:"max=50"`
	Email   string `json:"email" validate:"omitempty,email,max=150"`
	GSTIN   string `json:"gstin" validate:"max=32"`
}

type SettingsService struct {
	DB *gorm.DB
}

func NewSettingsService(db *gorm.DB) *SettingsService {
	return &SettingsService{DB: db}
}

// Hotel returns the property header, or an empty one when none is stored.
func (s *SettingsService) Hotel(ctx context.Context) (models.HotelSetting, error) {
	var hotel models.HotelSetting
	err := s.DB.WithContext(ctx).Order("id ASC").First(&hotel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.HotelSetting{}, nil
	}
	if err != nil {
		return hotel, fmt.Errorf("load hotel settings: %w", err)
	}
	return hotel, nil
}

// UpdateHotel overwrites the header, creating it on first use.
func (s *SettingsService) UpdateHotel(ctx context.Context, in HotelSettingsInput) (models.HotelSetting, error) {
	if err := validateStruct(in); err != nil {
		return models.HotelSetting{}, err
	}

	hotel, err := s.Hotel(ctx)
	if err != nil {
		return hotel, err
	}
	hotel.Name = strings.TrimSpace(in.Name)
	hotel.Address = strings.TrimSpace(in.Address)
	hotel.Phone = strings.TrimSpace(in.Phone)
	hotel.Email = strings.TrimSpace(in.Email)
	hotel.GSTIN = strings.TrimSpace(in.GSTIN)

	if err := s.DB.WithContext(ctx).Save(&hotel).Error; err != nil {
		return hotel, fmt.Errorf("save hotel settings: %w", err)
	}
	return hotel, nil
}

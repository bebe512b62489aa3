package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-folio/models"

	"gorm.io/gorm"
)

type GuestService struct {
	DB *gorm.DB
}

func NewGuestService(db *gorm.DB) *GuestService {
	return &GuestService{DB: db}
}

// List returns guests newest first. q matches name, phone or id number.
func (s *GuestService) List(ctx context.Context, q string) ([]models.Guest, error) {
	tx := s.DB.WithContext(ctx).Model(&models.Guest{})
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("full_name LIKE ? OR phone LIKE ? OR id_number LIKE ?", like, like, like)
	}

	var guests []models.Guest
	if err := tx.Order("guests.id DESC").Limit(200).Find(&guests).Error; err != nil {
		return nil, fmt.Errorf("list guests: %w", err)
	}
	return guests, nil
}

func (s *GuestService) Get(ctx context.Context, id uint) (models.Guest, error) {
	var guest models.Guest
	err := s.DB.WithContext(ctx).First(&guest, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return guest, notFoundf("guest %d", id)
	}
	if err != nil {
		return guest, fmt.Errorf("load guest %d: %w", id, err)
	}
	return guest, nil
}

// Update corrects identity details captured at check-in.
func (s *GuestService) Update(ctx context.Context, id uint, in GuestInput) (models.Guest, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validateStruct(in); err != nil {
		return models.Guest{}, err
	}
	guest, err := s.Get(ctx, id)
	if err != nil {
		return guest, err
	}
	guest.FullName = in.FullName
	guest.Phone = strings.TrimSpace(in.Phone)
	guest.Email = strings.TrimSpace(in.Email)
	guest.IDType = strings.TrimSpace(in.IDType)
	guest.IDNumber = strings.TrimSpace(in.IDNumber)

	if err := s.DB.WithContext(ctx).Save(&guest).Error; err != nil {
		return guest, fmt.Errorf("update guest %d: %w", id, err)
	}
	return guest, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"hotel-folio/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type RoomInput struct {
	RoomNumber  string          `json:"roomNumber" validate:"required,max=50"`
	Category    string          `json:"category" validate:"max=50"`
	Floor       string          `json:"floor" validate:"max=10"`
	PricePerDay decimal.Decimal `json:"pricePerDay"`
}

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

// List returns rooms ordered by number; status filters when non-empty.
func (s *RoomService) List(ctx context.Context, status string) ([]models.Room, error) {
	q := s.DB.WithContext(ctx).Model(&models.Room{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var rooms []models.Room
	if err := q.Order("room_number ASC").Find(&rooms).Error; err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return rooms, nil
}

func (s *RoomService) Create(ctx context.Context, in RoomInput) (models.Room, error) {
	in.RoomNumber = strings.TrimSpace(in.RoomNumber)
	if err := validateStruct(in); err != nil {
		return models.Room{}, err
	}
	if err := requireNonNegative("pricePerDay", in.PricePerDay); err != nil {
		return models.Room{}, err
	}

	room := models.Room{
		RoomNumber:  in.RoomNumber,
		Category:    strings.TrimSpace(in.Category),
		Floor:       strings.TrimSpace(in.Floor),
		PricePerDay: in.PricePerDay,
		Status:      models.RoomStatusFree,
	}
	if err := s.DB.WithContext(ctx).Create(&room).Error; err != nil {
		if isDuplicateKeyError(err) {
			return models.Room{}, fmt.Errorf("%w: room number %s already exists", ErrConflict, room.RoomNumber)
		}
		return models.Room{}, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

// MarkClean returns a room from housekeeping to free.
func (s *RoomService) MarkClean(ctx context.Context, id uint) (models.Room, error) {
	db := s.DB.WithContext(ctx)
	res := db.Model(&models.Room{}).
		Where("id = ? AND status = ?", id, models.RoomStatusHousekeeping).
		Update("status", models.RoomStatusFree)
	if res.Error != nil {
		return models.Room{}, fmt.Errorf("mark room %d clean: %w", id, res.Error)
	}

	var room models.Room
	err := db.First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return room, notFoundf("room %d", id)
	}
	if err != nil {
		return room, fmt.Errorf("load room %d: %w", id, err)
	}
	if res.RowsAffected == 0 {
		return room, ErrRoomNotInHousekeeping
	}
	return room, nil
}

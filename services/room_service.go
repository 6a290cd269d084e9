package services

import (
	"errors"

	"gorm.io/gorm"

	"resort-backend/models"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

func (s *RoomService) List() ([]models.Room, error) {
	var out []models.Room
	err := s.DB.Order("price ASC").Find(&out).Error
	return out, err
}

func (s *RoomService) Get(id uint) (models.Room, error) {
	var r models.Room
	if err := s.DB.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return r, ErrRoomNotFound
		}
		return r, err
	}
	return r, nil
}

func (s *RoomService) Create(room models.Room) (models.Room, error) {
	if err := s.DB.Create(&room).Error; err != nil {
		return models.Room{}, err
	}
	return room, nil
}

func (s *RoomService) Update(id uint, room models.Room) (models.Room, error) {
	existing, err := s.Get(id)
	if err != nil {
		return models.Room{}, err
	}
	if err := s.DB.Model(&existing).
		Select("title", "description", "price", "capacity", "image_url", "amenities").
		Updates(&room).Error; err != nil {
		return models.Room{}, err
	}
	return s.Get(id)
}

func (s *RoomService) Delete(id uint) error {
	res := s.DB.Delete(&models.Room{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrRoomNotFound
	}
	return nil
}

// PricedRoom is the public listing shape: Price reflects the caller's active
// discount when one exists.
type PricedRoom struct {
	models.Room
	BasePrice       float64 `json:"basePrice"`
	DiscountPercent int     `json:"discountPercent,omitempty"`
}

// PricedRoomFrom prices a single room for the caller.
func PricedRoomFrom(room models.Room, discountPercent int) PricedRoom {
	pr := PricedRoom{Room: room, BasePrice: room.Price, DiscountPercent: discountPercent}
	pr.Price = discountedPrice(room.Price, discountPercent)
	return pr
}

// ListPriced applies a discount session to the public room list.
func (s *RoomService) ListPriced(discountPercent int) ([]PricedRoom, error) {
	rooms, err := s.List()
	if err != nil {
		return nil, err
	}
	out := make([]PricedRoom, 0, len(rooms))
	for _, r := range rooms {
		pr := PricedRoom{Room: r, BasePrice: r.Price, DiscountPercent: discountPercent}
		pr.Price = discountedPrice(r.Price, discountPercent)
		out = append(out, pr)
	}
	return out, nil
}

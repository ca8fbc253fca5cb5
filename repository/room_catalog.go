package repository

import (
	"errors"

	"github.com/fiesc/exam_planner/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RoomCatalog implements scheduling.RoomCatalog over the synced room table.
type RoomCatalog struct {
	db *gorm.DB
}

func NewRoomCatalog(db *gorm.DB) *RoomCatalog {
	return &RoomCatalog{db: db}
}

func (c *RoomCatalog) ListRooms(minCapacity *int) ([]models.Room, error) {
	query := c.db.Model(&models.Room{}).Order("name")
	if minCapacity != nil {
		query = query.Where("capacity >= ?", *minCapacity)
	}

	var rooms []models.Room
	if err := query.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (c *RoomCatalog) GetRoom(id uuid.UUID) (*models.Room, error) {
	var room models.Room
	if err := c.db.First(&room, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

// services/tower_service.go
package services

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"regalia-backend/models"
)

type TowerService struct {
	DB *gorm.DB
}

func NewTowerService(db *gorm.DB) *TowerService {
	return &TowerService{DB: db}
}

func (s *TowerService) List() ([]models.Tower, error) {
	var towers []models.Tower
	if err := s.DB.Order("tower_name").Find(&towers).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch towers: %w", err)
	}
	if towers == nil {
		towers = []models.Tower{}
	}
	return towers, nil
}

func (s *TowerService) Create(name string, floors int) (*models.Tower, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, NewValidationError("tower_name")
	}
	if floors <= 0 {
		return nil, NewValidationError("number_floors")
	}
	tower := models.Tower{TowerName: name, NumberFloors: floors}
	if err := s.DB.Create(&tower).Error; err != nil {
		return nil, fmt.Errorf("failed to create tower: %w", err)
	}
	return &tower, nil
}

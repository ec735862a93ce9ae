// services/unit_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"regalia-backend/models"
)

// UnitService handles unit CRUD for the admin screens. The price and
// image_urls columns arrived after launch, so listing shares the same
// unknown-column fallback the booking store uses.
type UnitService struct {
	DB *gorm.DB
}

func NewUnitService(db *gorm.DB) *UnitService {
	return &UnitService{DB: db}
}

// UnitDetail is a unit row joined with its tower for display.
type UnitDetail struct {
	models.Unit `gorm:"embedded"`

	TowerName    *string `gorm:"column:tower_name" json:"tower_name"`
	NumberFloors *int    `gorm:"column:number_floors" json:"number_floors,omitempty"`
}

const (
	unitBaseColumns = `u.unit_id, u.tower_id, u.unit_number, u.floor_number, u.unit_type, u.unit_size,
  u.description, t.tower_name, t.number_floors`

	unitOptionalColumns = `u.image_urls, u.price`

	unitFromJoin = ` FROM units u LEFT JOIN towers t ON t.tower_id = u.tower_id`

	unitOrder = ` ORDER BY t.tower_name, u.floor_number, u.unit_number`
)

// List returns all units with tower context, tolerating databases that
// predate the price/image_urls columns.
func (s *UnitService) List() ([]UnitDetail, error) {
	full := "SELECT " + unitBaseColumns + ", " + unitOptionalColumns + unitFromJoin + unitOrder
	reduced := "SELECT " + unitBaseColumns + unitFromJoin + unitOrder

	var rows []UnitDetail
	err := s.DB.Raw(full).Scan(&rows).Error
	if isUnknownColumnErr(err) {
		rows = nil
		err = s.DB.Raw(reduced).Scan(&rows).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch units: %w", err)
	}
	if rows == nil {
		rows = []UnitDetail{}
	}
	return rows, nil
}

// Get returns one unit for the public guest booking page.
func (s *UnitService) Get(id uint) (*UnitDetail, error) {
	full := "SELECT " + unitBaseColumns + ", " + unitOptionalColumns + unitFromJoin + " WHERE u.unit_id = ?"
	reduced := "SELECT " + unitBaseColumns + unitFromJoin + " WHERE u.unit_id = ?"

	var rows []UnitDetail
	err := s.DB.Raw(full, id).Scan(&rows).Error
	if isUnknownColumnErr(err) {
		rows = nil
		err = s.DB.Raw(reduced, id).Scan(&rows).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch unit %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrUnitNotFound
	}
	return &rows[0], nil
}

// Create inserts a unit, retrying without the optional columns when the
// database predates them.
func (s *UnitService) Create(unit *models.Unit) (*models.Unit, error) {
	if unit.TowerID == nil || *unit.TowerID == 0 {
		return nil, NewValidationError("tower_id")
	}
	if strings.TrimSpace(unit.UnitNumber) == "" {
		return nil, NewValidationError("unit_number")
	}
	unit.UnitNumber = strings.TrimSpace(unit.UnitNumber)

	err := s.DB.Create(unit).Error
	if err != nil && isUnknownColumnErr(err) {
		log.Printf("units insert hit missing column, retrying without optional columns: %v", err)
		unit.ID = 0
		err = s.DB.Omit("ImageURLs", "Price").Create(unit).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return unit, nil
}

// UpdateFields applies a partial update. Keys must already be column
// names; optional columns that are missing from the schema surface a
// SchemaMissingError without touching the rest of the row.
func (s *UnitService) UpdateFields(id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return NewValidationError("fields")
	}

	required := map[string]interface{}{}
	optional := map[string]interface{}{}
	for k, v := range fields {
		if optionalColumns["units"][k] {
			optional[k] = v
		} else {
			required[k] = v
		}
	}

	if len(required) > 0 {
		res := s.DB.Model(&models.Unit{}).Where("unit_id = ?", id).Updates(required)
		if res.Error != nil {
			return fmt.Errorf("failed to update unit %d: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			var n int64
			s.DB.Model(&models.Unit{}).Where("unit_id = ?", id).Count(&n)
			if n == 0 {
				return ErrUnitNotFound
			}
		}
	}

	for column, value := range optional {
		res := s.DB.Exec("UPDATE units SET "+column+" = ? WHERE unit_id = ?", value, id)
		if res.Error != nil {
			if isUnknownColumnErr(res.Error) {
				return &SchemaMissingError{Table: "units", Column: column}
			}
			return fmt.Errorf("failed to update units.%s: %w", column, res.Error)
		}
	}
	return nil
}

// Delete removes a unit; ErrUnitNotFound when nothing matched.
func (s *UnitService) Delete(id uint) error {
	res := s.DB.Where("unit_id = ?", id).Delete(&models.Unit{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete unit %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUnitNotFound
	}
	return nil
}

// IsNotFound reports whether err is one of the entity not-found
// sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBookingNotFound) ||
		errors.Is(err, ErrUnitNotFound) ||
		errors.Is(err, ErrTowerNotFound) ||
		errors.Is(err, ErrEmployeeNotFound)
}

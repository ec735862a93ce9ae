package models

import (
	"time"

	"gorm.io/datatypes"
)

// Unit belongs to a Tower. Price and ImageURLs were added to the schema
// after the first deployments, so reads must tolerate their absence
// (see services.BookingStore).
type Unit struct {
	ID uint `gorm:"primaryKey;column:unit_id" json:"unit_id"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	// Nullable so a unit can exist transiently before tower assignment.
	TowerID *uint `gorm:"column:tower_id;index" json:"tower_id"`

	UnitNumber  string   `gorm:"column:unit_number;size:50;not null" json:"unit_number"`
	FloorNumber *string  `gorm:"column:floor_number;size:10" json:"floor_number"`
	UnitType    *string  `gorm:"column:unit_type;size:100" json:"unit_type"`
	UnitSize    *float64 `gorm:"column:unit_size" json:"unit_size"`
	Description *string  `gorm:"column:description;type:text" json:"description"`

	// Up to four image references, stored as a JSON array of opaque
	// strings (data URIs or URLs).
	ImageURLs datatypes.JSON `gorm:"column:image_urls" json:"image_urls"`
	Price     *float64       `gorm:"column:price" json:"price"`

	Tower Tower `gorm:"foreignKey:TowerID;references:ID" json:"-"`
}

func (Unit) TableName() string { return "units" }

package models

import "time"

type Tower struct {
	ID uint `gorm:"primaryKey;column:tower_id" json:"tower_id"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	TowerName    string `gorm:"column:tower_name;size:255;not null" json:"tower_name"`
	NumberFloors int    `gorm:"column:number_floors" json:"number_floors"`
}

func (Tower) TableName() string { return "towers" }

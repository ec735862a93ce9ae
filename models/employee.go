package models

import "time"

type Employee struct {
	ID uint `gorm:"primaryKey;column:employee_id" json:"employee_id"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	FullName      string  `gorm:"column:full_name;size:255;not null" json:"full_name"`
	Address       *string `gorm:"column:address;size:255" json:"address"`
	Username      string  `gorm:"column:username;size:100;uniqueIndex;not null" json:"username"`
	Password      string  `gorm:"column:password;size:255;not null" json:"-"`
	ContactNumber *string `gorm:"column:contact_number;size:50" json:"contact_number"`
	Email         string  `gorm:"column:email;size:255;uniqueIndex;not null" json:"email"`

	// Added after launch so owners can scope the employee list to the
	// accounts they created. May be missing from older databases.
	CreatedByEmployeeID *uint `gorm:"column:created_by_employee_id" json:"created_by_employee_id,omitempty"`

	Roles []EmployeeRole `gorm:"foreignKey:EmployeeID" json:"-"`
}

func (Employee) TableName() string { return "employees" }

// EmployeeRole keeps role history: updates deactivate the old row and
// insert a fresh active one.
type EmployeeRole struct {
	ID uint `gorm:"primaryKey;column:role_id" json:"role_id"`

	EmployeeID uint   `gorm:"column:employee_id;index;not null" json:"employee_id"`
	RoleType   string `gorm:"column:role_type;size:50;not null" json:"role_type"`
	Status     string `gorm:"column:status;size:20;default:active" json:"status"`
}

func (EmployeeRole) TableName() string { return "employee_roles" }

// EmployeeTower assigns an employee to at most one tower.
type EmployeeTower struct {
	ID uint `gorm:"primaryKey" json:"-"`

	EmployeeID uint `gorm:"column:employee_id;index;not null" json:"employee_id"`
	TowerID    uint `gorm:"column:tower_id;not null" json:"tower_id"`
}

func (EmployeeTower) TableName() string { return "employee_towers" }

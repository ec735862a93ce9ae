// services/employee_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"regalia-backend/models"
)

const (
	RoleOwner     = "OWNER"
	DefaultRole   = "Front Desk"
	activeStatus  = "active"
	retiredStatus = "inactive"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidPassword = errors.New("invalid password")
	ErrDuplicateUser   = errors.New("username or email already exists")
)

// EmployeeService covers the staff account plumbing: signup/login,
// the admin employee list and role/tower assignment.
type EmployeeService struct {
	DB *gorm.DB
}

func NewEmployeeService(db *gorm.DB) *EmployeeService {
	return &EmployeeService{DB: db}
}

// EmployeeSummary is an employee row with its active role and tower
// assignment resolved for the admin screen.
type EmployeeSummary struct {
	EmployeeID    uint    `gorm:"column:employee_id" json:"employee_id"`
	FullName      string  `gorm:"column:full_name" json:"full_name"`
	Username      string  `gorm:"column:username" json:"username"`
	ContactNumber *string `gorm:"column:contact_number" json:"contact_number"`
	Email         string  `gorm:"column:email" json:"email"`
	Address       *string `gorm:"column:address" json:"address"`
	RoleType      *string `gorm:"column:role_type" json:"role_type"`
	AssignedTower *string `gorm:"column:assigned_tower" json:"assigned_tower"`
}

type EmployeeInput struct {
	FullName      string `json:"full_name"`
	Address       string `json:"address"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	ContactNumber string `json:"contact_number"`
	Email         string `json:"email"`
	RoleType      string `json:"role_type"`
}

const employeeListSelect = `SELECT e.employee_id, e.full_name, e.username, e.contact_number, e.email, e.address,
  (SELECT r.role_type FROM employee_roles r WHERE r.employee_id = e.employee_id AND r.status = 'active' ORDER BY r.role_id DESC LIMIT 1) AS role_type,
  (SELECT t.tower_name FROM employee_towers et JOIN towers t ON t.tower_id = et.tower_id WHERE et.employee_id = e.employee_id LIMIT 1) AS assigned_tower
  FROM employees e`

func (s *EmployeeService) hashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (s *EmployeeService) userExists(username, email string) (bool, error) {
	var n int64
	err := s.DB.Model(&models.Employee{}).
		Where("username = ? OR email = ?", username, email).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check existing employee: %w", err)
	}
	return n > 0, nil
}

// Signup self-registers an account; the first kind of account the
// system knows is an OWNER, matching the single shared-secret,
// OWNER/staff auth model.
func (s *EmployeeService) Signup(in EmployeeInput) (*models.Employee, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, NewValidationError("full_name")
	}
	if strings.TrimSpace(in.Username) == "" {
		return nil, NewValidationError("username")
	}
	if in.Password == "" {
		return nil, NewValidationError("password")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, NewValidationError("email")
	}

	exists, err := s.userExists(strings.TrimSpace(in.Username), strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateUser
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	emp := models.Employee{
		FullName:      strings.TrimSpace(in.FullName),
		Address:       trimPtr(in.Address),
		Username:      strings.TrimSpace(in.Username),
		Password:      hash,
		ContactNumber: trimPtr(in.ContactNumber),
		Email:         strings.TrimSpace(in.Email),
	}
	if err := s.DB.Create(&emp).Error; err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	role := models.EmployeeRole{EmployeeID: emp.ID, RoleType: RoleOwner, Status: activeStatus}
	if err := s.DB.Create(&role).Error; err != nil {
		return nil, fmt.Errorf("failed to assign owner role: %w", err)
	}
	return &emp, nil
}

// Authenticate verifies credentials and returns the employee with its
// active role.
func (s *EmployeeService) Authenticate(username, password string) (*models.Employee, string, error) {
	var emp models.Employee
	err := s.DB.Where("username = ?", strings.TrimSpace(username)).First(&emp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to look up employee: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidPassword
	}

	role, err := s.activeRole(emp.ID)
	if err != nil {
		return nil, "", err
	}
	return &emp, role, nil
}

func (s *EmployeeService) activeRole(employeeID uint) (string, error) {
	var role models.EmployeeRole
	err := s.DB.Where("employee_id = ? AND status = ?", employeeID, activeStatus).
		Order("role_id DESC").First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load role: %w", err)
	}
	return role.RoleType, nil
}

// List returns the employee roster. An OWNER caller sees only accounts
// they created; when the created_by_employee_id column has not been
// migrated in yet, the scope silently widens to everyone. OWNER rows
// are always hidden from the roster.
func (s *EmployeeService) List(actorID *uint, actorRole string) ([]EmployeeSummary, error) {
	if actorID != nil && actorRole == RoleOwner {
		var rows []EmployeeSummary
		err := s.DB.Raw(employeeListSelect+
			` WHERE e.created_by_employee_id = ?
        AND (SELECT r.role_type FROM employee_roles r WHERE r.employee_id = e.employee_id AND r.status = 'active' ORDER BY r.role_id DESC LIMIT 1) != 'OWNER'
        ORDER BY e.full_name`, *actorID).Scan(&rows).Error
		if err == nil {
			if rows == nil {
				rows = []EmployeeSummary{}
			}
			return rows, nil
		}
		if !isUnknownColumnErr(err) {
			return nil, fmt.Errorf("failed to fetch employees: %w", err)
		}
		log.Printf("employees.created_by_employee_id missing, listing without owner scope: %v", err)
	}

	var rows []EmployeeSummary
	if err := s.DB.Raw(employeeListSelect + ` ORDER BY e.full_name`).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch employees: %w", err)
	}

	filtered := make([]EmployeeSummary, 0, len(rows))
	for _, r := range rows {
		if r.RoleType != nil && *r.RoleType == RoleOwner {
			continue
		}
		filtered = append(filtered, r)
	}
	return filtered, nil
}

// Create adds a staff account from the admin screen. The creator link
// is written when possible; on schema drift the insert retries
// without it.
func (s *EmployeeService) Create(in EmployeeInput, creatorID *uint) (*models.Employee, string, error) {
	if strings.TrimSpace(in.FullName) == "" {
		return nil, "", NewValidationError("full_name")
	}
	if strings.TrimSpace(in.Username) == "" {
		return nil, "", NewValidationError("username")
	}
	if in.Password == "" {
		return nil, "", NewValidationError("password")
	}
	if strings.TrimSpace(in.Email) == "" {
		return nil, "", NewValidationError("email")
	}

	exists, err := s.userExists(strings.TrimSpace(in.Username), strings.TrimSpace(in.Email))
	if err != nil {
		return nil, "", err
	}
	if exists {
		return nil, "", ErrDuplicateUser
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, "", err
	}

	emp := models.Employee{
		FullName:            strings.TrimSpace(in.FullName),
		Address:             trimPtr(in.Address),
		Username:            strings.TrimSpace(in.Username),
		Password:            hash,
		ContactNumber:       trimPtr(in.ContactNumber),
		Email:               strings.TrimSpace(in.Email),
		CreatedByEmployeeID: creatorID,
	}

	createErr := s.DB.Create(&emp).Error
	if createErr != nil && isUnknownColumnErr(createErr) {
		log.Printf("employees insert hit missing column, retrying without creator link: %v", createErr)
		emp.ID = 0
		emp.CreatedByEmployeeID = nil
		createErr = s.DB.Omit("CreatedByEmployeeID").Create(&emp).Error
	}
	if createErr != nil {
		return nil, "", fmt.Errorf("failed to create employee: %w", createErr)
	}

	roleType := strings.TrimSpace(in.RoleType)
	if roleType == "" {
		roleType = DefaultRole
	}
	role := models.EmployeeRole{EmployeeID: emp.ID, RoleType: roleType, Status: activeStatus}
	if err := s.DB.Create(&role).Error; err != nil {
		return nil, "", fmt.Errorf("failed to assign role: %w", err)
	}
	return &emp, roleType, nil
}

// UpdateFields applies partial employee edits; a role change retires
// the old role row and inserts a fresh active one.
func (s *EmployeeService) UpdateFields(id uint, fields map[string]interface{}, roleType *string) error {
	ok, err := s.exists(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrEmployeeNotFound
	}

	if len(fields) > 0 {
		if err := s.DB.Model(&models.Employee{}).Where("employee_id = ?", id).Updates(fields).Error; err != nil {
			return fmt.Errorf("failed to update employee %d: %w", id, err)
		}
	}

	if roleType != nil && strings.TrimSpace(*roleType) != "" {
		if err := s.DB.Model(&models.EmployeeRole{}).
			Where("employee_id = ?", id).
			Update("status", retiredStatus).Error; err != nil {
			return fmt.Errorf("failed to retire roles for employee %d: %w", id, err)
		}
		role := models.EmployeeRole{EmployeeID: id, RoleType: strings.TrimSpace(*roleType), Status: activeStatus}
		if err := s.DB.Create(&role).Error; err != nil {
			return fmt.Errorf("failed to create role for employee %d: %w", id, err)
		}
	}
	return nil
}

// AssignTower replaces the employee's tower assignment.
func (s *EmployeeService) AssignTower(employeeID, towerID uint) error {
	if towerID == 0 {
		return NewValidationError("tower_id")
	}
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", employeeID).Delete(&models.EmployeeTower{}).Error; err != nil {
			return fmt.Errorf("failed to clear tower assignment: %w", err)
		}
		link := models.EmployeeTower{EmployeeID: employeeID, TowerID: towerID}
		if err := tx.Create(&link).Error; err != nil {
			return fmt.Errorf("failed to assign tower: %w", err)
		}
		return nil
	})
}

// Delete removes the employee with its role and tower links.
func (s *EmployeeService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("employee_id = ?", id).Delete(&models.EmployeeRole{}).Error; err != nil {
			return fmt.Errorf("failed to delete roles: %w", err)
		}
		if err := tx.Where("employee_id = ?", id).Delete(&models.EmployeeTower{}).Error; err != nil {
			return fmt.Errorf("failed to delete tower links: %w", err)
		}
		res := tx.Where("employee_id = ?", id).Delete(&models.Employee{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete employee: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrEmployeeNotFound
		}
		return nil
	})
}

func (s *EmployeeService) exists(id uint) (bool, error) {
	var n int64
	if err := s.DB.Model(&models.Employee{}).Where("employee_id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check employee %d: %w", id, err)
	}
	return n > 0, nil
}

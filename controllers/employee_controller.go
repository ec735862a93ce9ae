// controllers/employee_controller.go
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"regalia-backend/middleware"
	"regalia-backend/services"
	"regalia-backend/utils"
)

type EmployeeController struct {
	Svc *services.EmployeeService
}

func NewEmployeeController(svc *services.EmployeeService) *EmployeeController {
	return &EmployeeController{Svc: svc}
}

type updateEmployeePayload struct {
	FullName      *string `json:"full_name"`
	ContactNumber *string `json:"contact_number"`
	Email         *string `json:"email"`
	Address       *string `json:"address"`
	RoleType      *string `json:"role_type"`
}

type assignTowerPayload struct {
	TowerID uint `json:"tower_id"`
}

// GetEmployees lists staff accounts. An authenticated OWNER sees only
// accounts they created (when the schema supports that); owners
// themselves never appear in the roster.
func (ctrl *EmployeeController) GetEmployees(c *gin.Context) {
	var actorID *uint
	role := ""
	if actor := middleware.ActorFrom(c); actor != nil {
		actorID = &actor.EmployeeID
		role = actor.Role
	}

	employees, err := ctrl.Svc.List(actorID, role)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch employees")
		return
	}
	c.JSON(http.StatusOK, employees)
}

func (ctrl *EmployeeController) CreateEmployee(c *gin.Context) {
	var payload services.EmployeeInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "full_name, username, password, and email required"})
		return
	}

	var creatorID *uint
	if actor := middleware.ActorFrom(c); actor != nil {
		creatorID = &actor.EmployeeID
	}

	emp, roleType, err := ctrl.Svc.Create(payload, creatorID)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			utils.JSONError(c, http.StatusBadRequest, "Username or email already exists")
			return
		}
		respondServiceError(c, err, "Failed to create employee")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":     "Employee created",
		"employee_id": emp.ID,
		"role_type":   roleType,
	})
}

func (ctrl *EmployeeController) UpdateEmployee(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		utils.JSONError(c, http.StatusNotFound, "Employee not found")
		return
	}
	var payload updateEmployeePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	fields := map[string]interface{}{}
	if payload.FullName != nil && strings.TrimSpace(*payload.FullName) != "" {
		fields["full_name"] = strings.TrimSpace(*payload.FullName)
	}
	if payload.ContactNumber != nil {
		fields["contact_number"] = nilIfEmpty(*payload.ContactNumber)
	}
	if payload.Email != nil && strings.TrimSpace(*payload.Email) != "" {
		fields["email"] = strings.TrimSpace(*payload.Email)
	}
	if payload.Address != nil {
		fields["address"] = nilIfEmpty(*payload.Address)
	}

	if err := ctrl.Svc.UpdateFields(id, fields, payload.RoleType); err != nil {
		respondServiceError(c, err, "Failed to update employee")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee updated"})
}

func (ctrl *EmployeeController) AssignTower(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		utils.JSONError(c, http.StatusNotFound, "Employee not found")
		return
	}
	var payload assignTowerPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.TowerID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tower_id required"})
		return
	}
	if err := ctrl.Svc.AssignTower(id, payload.TowerID); err != nil {
		respondServiceError(c, err, "Failed to assign tower")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Assignment saved"})
}

func (ctrl *EmployeeController) DeleteEmployee(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		utils.JSONError(c, http.StatusNotFound, "Employee not found")
		return
	}
	if err := ctrl.Svc.Delete(id); err != nil {
		respondServiceError(c, err, "Failed to delete employee")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

// controllers/auth_controller.go
package controllers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"regalia-backend/middleware"
	"regalia-backend/services"
	"regalia-backend/utils"
)

type AuthController struct {
	Svc *services.EmployeeService
}

func NewAuthController(svc *services.EmployeeService) *AuthController {
	return &AuthController{Svc: svc}
}

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Signup self-registers an OWNER account.
func (ctrl *AuthController) Signup(c *gin.Context) {
	var payload services.EmployeeInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	emp, err := ctrl.Svc.Signup(payload)
	if err != nil {
		if errors.Is(err, services.ErrDuplicateUser) {
			utils.JSONError(c, http.StatusBadRequest, "Username or email already exists")
			return
		}
		respondServiceError(c, err, "Failed to create account")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Account created successfully!", "employee_id": emp.ID})
}

// Login verifies credentials and issues the one-hour access token.
func (ctrl *AuthController) Login(c *gin.Context) {
	var payload loginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	emp, role, err := ctrl.Svc.Authenticate(payload.Username, payload.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			utils.JSONError(c, http.StatusBadRequest, "User not found")
		case errors.Is(err, services.ErrInvalidPassword):
			utils.JSONError(c, http.StatusBadRequest, "Invalid password")
		default:
			respondServiceError(c, err, "Failed to log in")
		}
		return
	}

	token, err := middleware.SignAccessToken(emp.ID, role)
	if err != nil {
		log.Printf("failed to sign access token: %v", err)
		utils.JSONError(c, http.StatusInternalServerError, "Failed to log in")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Login successful",
		"token":    token,
		"employee": emp,
		"role":     role,
	})
}

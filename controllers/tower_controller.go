// controllers/tower_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"regalia-backend/services"
)

type TowerController struct {
	Svc *services.TowerService
}

func NewTowerController(svc *services.TowerService) *TowerController {
	return &TowerController{Svc: svc}
}

type createTowerPayload struct {
	TowerName    string `json:"tower_name"`
	NumberFloors int    `json:"number_floors"`
}

func (ctrl *TowerController) GetTowers(c *gin.Context) {
	towers, err := ctrl.Svc.List()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch towers")
		return
	}
	c.JSON(http.StatusOK, towers)
}

func (ctrl *TowerController) CreateTower(c *gin.Context) {
	var payload createTowerPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tower_name and number_floors required"})
		return
	}
	tower, err := ctrl.Svc.Create(payload.TowerName, payload.NumberFloors)
	if err != nil {
		respondServiceError(c, err, "Failed to create tower")
		return
	}
	c.JSON(http.StatusCreated, tower)
}

// controllers/unit_controller.go
package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"regalia-backend/models"
	"regalia-backend/services"
	"regalia-backend/utils"
)

type UnitController struct {
	Svc *services.UnitService
}

func NewUnitController(svc *services.UnitService) *UnitController {
	return &UnitController{Svc: svc}
}

type createUnitPayload struct {
	TowerID     uint            `json:"tower_id"`
	UnitNumber  string          `json:"unit_number"`
	FloorNumber *string         `json:"floor_number"`
	UnitType    *string         `json:"unit_type"`
	UnitSize    *float64        `json:"unit_size"`
	Description *string         `json:"description"`
	ImageURLs   json.RawMessage `json:"image_urls"`
	Price       *float64        `json:"price"`
}

// updateUnitPayload uses pointers so an absent field is distinguishable
// from an explicit null/empty value.
type updateUnitPayload struct {
	UnitNumber  *string          `json:"unit_number"`
	FloorNumber *string          `json:"floor_number"`
	UnitType    *string          `json:"unit_type"`
	UnitSize    *float64         `json:"unit_size"`
	Description *string          `json:"description"`
	ImageURLs   *json.RawMessage `json:"image_urls"`
	Price       *float64         `json:"price"`
}

// GetUnits also backs /properties: the admin list is units joined with
// their tower, with price/image_urls backfilled as null on databases
// that predate those columns.
func (ctrl *UnitController) GetUnits(c *gin.Context) {
	units, err := ctrl.Svc.List()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch units")
		return
	}
	c.JSON(http.StatusOK, units)
}

// GetUnit serves the public guest booking page; no auth.
func (ctrl *UnitController) GetUnit(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		utils.JSONError(c, http.StatusNotFound, "Unit not found")
		return
	}
	unit, err := ctrl.Svc.Get(id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch unit")
		return
	}
	c.JSON(http.StatusOK, unit)
}

func (ctrl *UnitController) CreateUnit(c *gin.Context) {
	var payload createUnitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "tower_id and unit_number required"})
		return
	}

	towerID := payload.TowerID
	unit := models.Unit{
		TowerID:     &towerID,
		UnitNumber:  payload.UnitNumber,
		FloorNumber: payload.FloorNumber,
		UnitType:    payload.UnitType,
		UnitSize:    payload.UnitSize,
		Description: payload.Description,
		Price:       payload.Price,
	}
	if len(payload.ImageURLs) > 0 {
		unit.ImageURLs = datatypes.JSON(payload.ImageURLs)
	}

	created, err := ctrl.Svc.Create(&unit)
	if err != nil {
		respondServiceError(c, err, "Failed to create unit")
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"unit_id":     created.ID,
		"tower_id":    towerID,
		"unit_number": created.UnitNumber,
	})
}

func (ctrl *UnitController) UpdateUnit(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		utils.JSONError(c, http.StatusNotFound, "Unit not found")
		return
	}
	var payload updateUnitPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if payload.UnitNumber != nil && strings.TrimSpace(*payload.UnitNumber) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unit_number required"})
		return
	}

	fields := map[string]interface{}{}
	if payload.UnitNumber != nil {
		fields["unit_number"] = strings.TrimSpace(*payload.UnitNumber)
	}
	if payload.FloorNumber != nil {
		fields["floor_number"] = nilIfEmpty(*payload.FloorNumber)
	}
	if payload.UnitType != nil {
		fields["unit_type"] = nilIfEmpty(*payload.UnitType)
	}
	if payload.UnitSize != nil {
		fields["unit_size"] = *payload.UnitSize
	}
	if payload.Description != nil {
		fields["description"] = nilIfEmpty(*payload.Description)
	}
	if payload.ImageURLs != nil {
		fields["image_urls"] = string(*payload.ImageURLs)
	}
	if payload.Price != nil {
		fields["price"] = *payload.Price
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := ctrl.Svc.UpdateFields(id, fields); err != nil {
		respondServiceError(c, err, "Failed to update unit")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unit updated"})
}

func (ctrl *UnitController) DeleteUnit(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		utils.JSONError(c, http.StatusNotFound, "Unit not found")
		return
	}
	if err := ctrl.Svc.Delete(id); err != nil {
		respondServiceError(c, err, "Failed to delete unit")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unit deleted"})
}

func nilIfEmpty(s string) interface{} {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return t
}

// controllers/helpers.go
package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"regalia-backend/services"
	"regalia-backend/utils"
)

// parseID reads a numeric path parameter; 0 means not a valid id.
func parseID(c *gin.Context, name string) uint {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0
	}
	return uint(id)
}

var notFoundMessages = map[error]string{
	services.ErrBookingNotFound:  "Booking not found",
	services.ErrUnitNotFound:     "Unit not found",
	services.ErrTowerNotFound:    "Tower not found",
	services.ErrEmployeeNotFound: "Employee not found",
}

// respondServiceError maps the service error taxonomy onto status
// codes: validation → 400, not-found → 404, missing schema column →
// operator-facing 500, anything else → logged 500 with a generic
// message.
func respondServiceError(c *gin.Context, err error, fallback string) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		utils.JSONError(c, http.StatusBadRequest, ve.Error())
		return
	}
	for sentinel, msg := range notFoundMessages {
		if errors.Is(err, sentinel) {
			utils.JSONError(c, http.StatusNotFound, msg)
			return
		}
	}
	if services.IsSchemaMissing(err) {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	log.Printf("%s: %v", fallback, err)
	utils.JSONError(c, http.StatusInternalServerError, fallback)
}

// controllers/booking_controller.go
package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"regalia-backend/middleware"
	"regalia-backend/services"
	"regalia-backend/utils"
)

type BookingController struct {
	Svc *services.BookingService
}

func NewBookingController(svc *services.BookingService) *BookingController {
	return &BookingController{Svc: svc}
}

type rejectPayload struct {
	Reason string `json:"reason"`
}

// CreateBooking accepts a guest submission and stores it as pending.
func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var payload services.SubmitBookingInput
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload")
		return
	}

	var createdBy *uint
	if actor := middleware.ActorFrom(c); actor != nil {
		createdBy = &actor.EmployeeID
	}

	id, err := ctrl.Svc.Submit(payload, createdBy)
	if err != nil {
		respondServiceError(c, err, "Failed to submit booking")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking submitted", "booking_id": id})
}

func (ctrl *BookingController) GetBookings(c *gin.Context) {
	bookings, err := ctrl.Svc.List()
	if err != nil {
		respondServiceError(c, err, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBookingBuckets serves the staff triage view grouped by check-in
// proximity.
func (ctrl *BookingController) GetBookingBuckets(c *gin.Context) {
	buckets, err := ctrl.Svc.ListBuckets(time.Now())
	if err != nil {
		respondServiceError(c, err, "Failed to fetch bookings")
		return
	}
	c.JSON(http.StatusOK, buckets)
}

func (ctrl *BookingController) GetBooking(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		utils.JSONError(c, http.StatusNotFound, "Booking not found")
		return
	}
	booking, err := ctrl.Svc.Get(id)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch booking")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ConfirmBooking commits the durable state change, then reports the
// best-effort email outcome alongside it.
func (ctrl *BookingController) ConfirmBooking(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		utils.JSONError(c, http.StatusNotFound, "Booking not found")
		return
	}
	result, err := ctrl.Svc.Confirm(id)
	if err != nil {
		respondServiceError(c, err, "Failed to confirm booking")
		return
	}
	resp := gin.H{"message": "Booking confirmed", "emailSent": result.Sent}
	if result.Error != "" {
		resp["emailError"] = result.Error
	} else {
		resp["emailError"] = nil
	}
	c.JSON(http.StatusOK, resp)
}

func (ctrl *BookingController) RejectBooking(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		utils.JSONError(c, http.StatusNotFound, "Booking not found")
		return
	}
	var payload rejectPayload
	_ = c.ShouldBindJSON(&payload) // reason is optional

	if err := ctrl.Svc.Reject(id, payload.Reason); err != nil {
		respondServiceError(c, err, "Failed to reject booking")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking rejected"})
}

func (ctrl *BookingController) CheckIn(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		utils.JSONError(c, http.StatusNotFound, "Booking not found")
		return
	}
	booking, err := ctrl.Svc.CheckIn(id)
	if err != nil {
		respondServiceError(c, err, "Failed to check in")
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (ctrl *BookingController) CheckOut(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		utils.JSONError(c, http.StatusNotFound, "Booking not found")
		return
	}
	booking, err := ctrl.Svc.CheckOut(id)
	if err != nil {
		respondServiceError(c, err, "Failed to check out")
		return
	}
	c.JSON(http.StatusOK, booking)
}

// ResendEntryPass re-sends the confirmation email for a confirmed
// booking without touching its state.
func (ctrl *BookingController) ResendEntryPass(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		utils.JSONError(c, http.StatusNotFound, "Booking not found")
		return
	}
	result, err := ctrl.Svc.ResendEntryPass(id)
	if err != nil {
		respondServiceError(c, err, "Failed to resend entry pass")
		return
	}
	msg := "Entry pass sent"
	if !result.Sent {
		msg = "Entry pass not sent: " + result.Error
	}
	c.JSON(http.StatusOK, gin.H{"sent": result.Sent, "message": msg})
}

// EntryPassQR serves the addressable QR image. It is regenerated from
// the deterministic payload on every request, so a day of caching is
// safe.
func (ctrl *BookingController) EntryPassQR(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		utils.JSONError(c, http.StatusNotFound, "Booking not found")
		return
	}
	png, err := ctrl.Svc.EntryPassPNG(id)
	if err != nil {
		respondServiceError(c, err, "Failed to render entry pass")
		return
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, "image/png", png)
}

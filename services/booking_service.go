// services/booking_service.go
package services

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"regalia-backend/models"
	"regalia-backend/utils"
)

// ConfirmationSender is what the lifecycle engine needs from the
// notifier; tests substitute a stub.
type ConfirmationSender interface {
	SendConfirmation(b *models.BookingDetail) EmailResult
}

// BookingService owns the booking state machine: pending →
// confirmed/rejected, with idempotent check-in/check-out sub-states on
// confirmed rows. State writes are durable and synchronous; the
// confirmation email is a best-effort second phase whose outcome is
// reported, never able to undo the transition.
type BookingService struct {
	Store    *BookingStore
	Notifier ConfirmationSender
}

func NewBookingService(db *gorm.DB, notifier ConfirmationSender) *BookingService {
	return &BookingService{Store: NewBookingStore(db), Notifier: notifier}
}

// SubmitBookingInput carries a guest submission. Everything except the
// unit, name and email is optional and stored as given.
type SubmitBookingInput struct {
	UnitID           uint   `json:"unit_id"`
	GuestName        string `json:"guest_name"`
	PermanentAddress string `json:"permanent_address"`
	Age              string `json:"age"`
	Nationality      string `json:"nationality"`
	RelationToOwner  string `json:"relation_to_owner"`
	Occupation       string `json:"occupation"`
	Email            string `json:"email"`
	ContactNumber    string `json:"contact_number"`
	OwnerName        string `json:"owner_name"`
	OwnerContact     string `json:"owner_contact"`
	InclusiveDates   string `json:"inclusive_dates"`
	CheckInDate      string `json:"check_in_date"`
	CheckOutDate     string `json:"check_out_date"`
	PurposeOfStay    string `json:"purpose_of_stay"`
	PaidYesNo        string `json:"paid_yes_no"`
	AmountPaid       string `json:"amount_paid"`
	BookingPlatform  string `json:"booking_platform"`
	PaymentMethod    string `json:"payment_method"`
	IDDocument       string `json:"id_document"`
	PaymentProof     string `json:"payment_proof"`
	SignatureData    string `json:"signature_data"`
}

func trimPtr(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

// blobPtr keeps opaque blobs (data URIs, signatures) byte-for-byte.
func blobPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parseStayDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	return nil, &ValidationError{Field: field, Message: "invalid " + field + " format"}
}

// Submit validates the mandatory fields and persists a pending booking.
// No side effects beyond the write.
func (s *BookingService) Submit(in SubmitBookingInput, createdBy *uint) (uint, error) {
	if in.UnitID == 0 {
		return 0, NewValidationError("unit_id")
	}
	if strings.TrimSpace(in.GuestName) == "" {
		return 0, NewValidationError("guest_name")
	}
	if strings.TrimSpace(in.Email) == "" {
		return 0, NewValidationError("email")
	}

	checkIn, err := parseStayDate("check_in_date", in.CheckInDate)
	if err != nil {
		return 0, err
	}
	checkOut, err := parseStayDate("check_out_date", in.CheckOutDate)
	if err != nil {
		return 0, err
	}

	booking := models.Booking{
		UnitID:              in.UnitID,
		GuestName:           strings.TrimSpace(in.GuestName),
		PermanentAddress:    trimPtr(in.PermanentAddress),
		Age:                 trimPtr(in.Age),
		Nationality:         trimPtr(in.Nationality),
		RelationToOwner:     trimPtr(in.RelationToOwner),
		Occupation:          trimPtr(in.Occupation),
		Email:               strings.TrimSpace(in.Email),
		ContactNumber:       trimPtr(in.ContactNumber),
		OwnerName:           trimPtr(in.OwnerName),
		OwnerContact:        trimPtr(in.OwnerContact),
		InclusiveDates:      trimPtr(in.InclusiveDates),
		CheckInDate:         checkIn,
		CheckOutDate:        checkOut,
		PurposeOfStay:       trimPtr(in.PurposeOfStay),
		PaidYesNo:           trimPtr(in.PaidYesNo),
		AmountPaid:          trimPtr(in.AmountPaid),
		BookingPlatform:     trimPtr(in.BookingPlatform),
		PaymentMethod:       trimPtr(in.PaymentMethod),
		IDDocument:          blobPtr(in.IDDocument),
		PaymentProof:        blobPtr(in.PaymentProof),
		SignatureData:       blobPtr(in.SignatureData),
		Status:              models.BookingPending,
		RejectionReason:     nil,
		CreatedByEmployeeID: createdBy,
	}

	if err := s.Store.Create(&booking); err != nil {
		return 0, err
	}
	return booking.ID, nil
}

// Get returns one booking with its unit/tower context.
func (s *BookingService) Get(id uint) (*models.BookingDetail, error) {
	return s.Store.Get(id)
}

// List returns every booking, soonest check-in first.
func (s *BookingService) List() ([]models.BookingDetail, error) {
	return s.Store.List()
}

// Confirm always moves the booking to confirmed and clears any
// rejection reason — re-confirming and un-rejecting are allowed, and a
// repeat confirm still resends the email. The status write commits
// before the notification is attempted, so a provider outage can never
// block a legitimate confirmation.
func (s *BookingService) Confirm(id uint) (EmailResult, error) {
	detail, err := s.Store.Get(id)
	if err != nil {
		return EmailResult{}, err
	}

	if err := s.Store.SetStatus(id, models.BookingConfirmed, nil); err != nil {
		return EmailResult{}, err
	}
	detail.Status = models.BookingConfirmed
	detail.RejectionReason = nil

	return s.Notifier.SendConfirmation(detail), nil
}

// Reject marks the booking rejected with an optional reason. No
// notification is sent.
func (s *BookingService) Reject(id uint, reason string) error {
	ok, err := s.Store.Exists(id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrBookingNotFound
	}
	return s.Store.SetStatus(id, models.BookingRejected, trimPtr(reason))
}

// CheckIn stamps checked_in_at on a confirmed booking. First check-in
// wins: a second call leaves the original timestamp untouched. A
// missing and an unconfirmed booking both surface ErrBookingNotFound.
func (s *BookingService) CheckIn(id uint) (*models.BookingDetail, error) {
	return s.stampLifecycle(id, "checked_in_at")
}

// CheckOut is the independent counterpart of CheckIn, same guard and
// idempotency.
func (s *BookingService) CheckOut(id uint) (*models.BookingDetail, error) {
	return s.stampLifecycle(id, "checked_out_at")
}

func (s *BookingService) stampLifecycle(id uint, column string) (*models.BookingDetail, error) {
	detail, err := s.Store.Get(id)
	if err != nil {
		return nil, err
	}
	if detail.Status != models.BookingConfirmed {
		return nil, ErrBookingNotFound
	}
	if err := s.Store.SetTimestampIfUnset(id, column, time.Now().UTC()); err != nil {
		return nil, err
	}
	return s.Store.Get(id)
}

// ResendEntryPass re-triggers the confirmation email without touching
// the booking. Only confirmed bookings have an entry pass.
func (s *BookingService) ResendEntryPass(id uint) (EmailResult, error) {
	detail, err := s.Store.Get(id)
	if err != nil {
		return EmailResult{}, err
	}
	if detail.Status != models.BookingConfirmed {
		return EmailResult{}, ErrBookingNotFound
	}
	return s.Notifier.SendConfirmation(detail), nil
}

// BookingBuckets groups bookings by check-in proximity for staff
// triage: within seven days, within the current month, everything else
// (including undated submissions).
type BookingBuckets struct {
	Next7 []models.BookingDetail `json:"next7"`
	Month []models.BookingDetail `json:"month"`
	Later []models.BookingDetail `json:"later"`
}

// ListBuckets partitions the full list by check-in date.
func (s *BookingService) ListBuckets(now time.Time) (BookingBuckets, error) {
	buckets := BookingBuckets{
		Next7: []models.BookingDetail{},
		Month: []models.BookingDetail{},
		Later: []models.BookingDetail{},
	}

	list, err := s.Store.List()
	if err != nil {
		return buckets, err
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	in7 := today.AddDate(0, 0, 7)
	endOfMonth := time.Date(now.Year(), now.Month()+1, 0, 23, 59, 59, 0, now.Location())

	for _, b := range list {
		switch {
		case b.CheckInDate == nil:
			buckets.Later = append(buckets.Later, b)
		case !b.CheckInDate.Before(today) && !b.CheckInDate.After(in7):
			buckets.Next7 = append(buckets.Next7, b)
		case !b.CheckInDate.After(endOfMonth):
			buckets.Month = append(buckets.Month, b)
		default:
			buckets.Later = append(buckets.Later, b)
		}
	}
	return buckets, nil
}

// EntryPassPNG renders the addressable QR image for a booking id. The
// image is regenerated per request; the payload is deterministic so the
// bytes always carry the same scan semantics.
func (s *BookingService) EntryPassPNG(id uint) ([]byte, error) {
	ok, err := s.Store.Exists(id)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBookingNotFound
	}
	png, err := utils.EntryPassPNG(id)
	if err != nil {
		return nil, fmt.Errorf("failed to render entry pass for booking %d: %w", id, err)
	}
	return png, nil
}

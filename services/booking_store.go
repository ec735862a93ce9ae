// services/booking_store.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"

	"regalia-backend/models"
)

// BookingStore is the schema-tolerant access layer for booking rows.
// The deployed database may lag behind the code: checked_in_at,
// checked_out_at and created_by_employee_id were added after launch.
// Every read tries the full column set first and falls back to a
// reduced query when the store reports an unknown column, backfilling
// the missing fields with nil so callers never special-case schema
// drift. Nothing outside this file inspects driver error codes.
type BookingStore struct {
	DB *gorm.DB
}

func NewBookingStore(db *gorm.DB) *BookingStore {
	return &BookingStore{DB: db}
}

// Columns that may be missing from older databases. Only names listed
// here are ever interpolated into SQL.
var optionalColumns = map[string]map[string]bool{
	"bookings": {
		"checked_in_at":          true,
		"checked_out_at":         true,
		"created_by_employee_id": true,
	},
	"units": {
		"price":      true,
		"image_urls": true,
	},
}

// bookingOmitOnDrift is the insert-retry omit list.
var bookingOmitOnDrift = []string{"CheckedInAt", "CheckedOutAt", "CreatedByEmployeeID"}

const (
	bookingBaseColumns = `b.booking_id, b.created_at, b.unit_id, b.guest_name, b.permanent_address, b.age,
  b.nationality, b.relation_to_owner, b.occupation, b.email, b.contact_number, b.owner_name, b.owner_contact,
  b.inclusive_dates, b.check_in_date, b.check_out_date, b.purpose_of_stay, b.paid_yes_no, b.amount_paid,
  b.booking_platform, b.payment_method, b.id_document, b.payment_proof, b.signature_data, b.status,
  b.rejection_reason, u.unit_number, u.unit_type, t.tower_name`

	bookingOptionalColumns = `b.checked_in_at, b.checked_out_at, b.created_by_employee_id`

	bookingFromJoin = ` FROM bookings b
  LEFT JOIN units u ON u.unit_id = b.unit_id
  LEFT JOIN towers t ON t.tower_id = u.tower_id`
)

// isUnknownColumnErr recognizes the "column does not exist" failure for
// the drivers in play: MySQL 1054 (ER_BAD_FIELD_ERROR) in production,
// sqlite's "no such column" in tests.
func isUnknownColumnErr(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == 1054 {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unknown column") ||
		strings.Contains(msg, "no such column") ||
		strings.Contains(msg, "has no column named")
}

// Create persists a new booking. When the insert trips over a missing
// optional column the write is retried without those fields.
func (s *BookingStore) Create(b *models.Booking) error {
	err := s.DB.Create(b).Error
	if err == nil {
		return nil
	}
	if !isUnknownColumnErr(err) {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	log.Printf("bookings insert hit missing column, retrying without optional columns: %v", err)
	if err := s.DB.Omit(bookingOmitOnDrift...).Create(b).Error; err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// Get returns one booking joined with its unit and tower, or
// ErrBookingNotFound.
func (s *BookingStore) Get(id uint) (*models.BookingDetail, error) {
	full := "SELECT " + bookingBaseColumns + ", " + bookingOptionalColumns + bookingFromJoin + " WHERE b.booking_id = ?"
	reduced := "SELECT " + bookingBaseColumns + bookingFromJoin + " WHERE b.booking_id = ?"

	var rows []models.BookingDetail
	err := s.DB.Raw(full, id).Scan(&rows).Error
	if isUnknownColumnErr(err) {
		rows = nil
		err = s.DB.Raw(reduced, id).Scan(&rows).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, ErrBookingNotFound
	}
	return &rows[0], nil
}

// List returns all bookings for staff triage, soonest check-in first.
func (s *BookingStore) List() ([]models.BookingDetail, error) {
	const order = " ORDER BY b.check_in_date ASC, b.created_at DESC"
	full := "SELECT " + bookingBaseColumns + ", " + bookingOptionalColumns + bookingFromJoin + order
	reduced := "SELECT " + bookingBaseColumns + bookingFromJoin + order

	var rows []models.BookingDetail
	err := s.DB.Raw(full).Scan(&rows).Error
	if isUnknownColumnErr(err) {
		rows = nil
		err = s.DB.Raw(reduced).Scan(&rows).Error
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	if rows == nil {
		rows = []models.BookingDetail{}
	}
	return rows, nil
}

// Exists reports whether a booking row is present at all, independent
// of any optional columns.
func (s *BookingStore) Exists(id uint) (bool, error) {
	var n int64
	if err := s.DB.Model(&models.Booking{}).Where("booking_id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check booking %d: %w", id, err)
	}
	return n > 0, nil
}

// SetStatus overwrites status and rejection_reason unconditionally;
// last writer wins, matching the storage-level tie-break for
// concurrent confirm/reject.
func (s *BookingStore) SetStatus(id uint, status string, rejectionReason *string) error {
	res := s.DB.Model(&models.Booking{}).Where("booking_id = ?", id).
		Updates(map[string]interface{}{"status": status, "rejection_reason": rejectionReason})
	if res.Error != nil {
		return fmt.Errorf("failed to update booking %d status: %w", id, res.Error)
	}
	return nil
}

// SetTimestampIfUnset writes a lifecycle timestamp only when the row is
// confirmed and the column is still NULL — first write wins, so repeat
// calls are no-ops. Returns SchemaMissingError when the column was
// never migrated in.
func (s *BookingStore) SetTimestampIfUnset(id uint, column string, t time.Time) error {
	if !optionalColumns["bookings"][column] {
		return fmt.Errorf("column %q is not an optional booking column", column)
	}
	res := s.DB.Exec(
		"UPDATE bookings SET "+column+" = ? WHERE booking_id = ? AND status = ? AND "+column+" IS NULL",
		t, id, models.BookingConfirmed,
	)
	if res.Error != nil {
		if isUnknownColumnErr(res.Error) {
			return &SchemaMissingError{Table: "bookings", Column: column}
		}
		return fmt.Errorf("failed to set %s on booking %d: %w", column, id, res.Error)
	}
	return nil
}

// WriteOptionalColumn is a best-effort single-column write. A missing
// column surfaces a descriptive SchemaMissingError and leaves every
// other column untouched.
func (s *BookingStore) WriteOptionalColumn(table string, id uint, column string, value interface{}) error {
	if !optionalColumns[table][column] {
		return fmt.Errorf("column %q is not an optional column of %q", column, table)
	}
	idColumn := strings.TrimSuffix(table, "s") + "_id"
	res := s.DB.Exec("UPDATE "+table+" SET "+column+" = ? WHERE "+idColumn+" = ?", value, id)
	if res.Error != nil {
		if isUnknownColumnErr(res.Error) {
			return &SchemaMissingError{Table: table, Column: column}
		}
		return fmt.Errorf("failed to write %s.%s: %w", table, column, res.Error)
	}
	return nil
}

package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"regalia-backend/models"
)

// newDriftDB builds the schema an older deployment would have: the
// bookings table without its late-added columns, units without price
// and image_urls.
func newDriftDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get raw db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	ddl := []string{
		`CREATE TABLE towers (
			tower_id INTEGER PRIMARY KEY AUTOINCREMENT,
			tower_name TEXT NOT NULL,
			number_floors INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE units (
			unit_id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME,
			updated_at DATETIME,
			tower_id INTEGER,
			unit_number TEXT NOT NULL,
			floor_number TEXT,
			unit_type TEXT,
			unit_size REAL,
			description TEXT
		)`,
		`CREATE TABLE bookings (
			booking_id INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at DATETIME,
			unit_id INTEGER NOT NULL,
			guest_name TEXT NOT NULL,
			permanent_address TEXT,
			age TEXT,
			nationality TEXT,
			relation_to_owner TEXT,
			occupation TEXT,
			email TEXT NOT NULL,
			contact_number TEXT,
			owner_name TEXT,
			owner_contact TEXT,
			inclusive_dates TEXT,
			check_in_date DATETIME,
			check_out_date DATETIME,
			purpose_of_stay TEXT,
			paid_yes_no TEXT,
			amount_paid TEXT,
			booking_platform TEXT,
			payment_method TEXT,
			id_document TEXT,
			payment_proof TEXT,
			signature_data TEXT,
			status TEXT DEFAULT 'pending',
			rejection_reason TEXT
		)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to build drifted schema: %v", err)
		}
	}

	if err := db.Exec(`INSERT INTO towers (tower_name, number_floors) VALUES ('South Tower', 8)`).Error; err != nil {
		t.Fatalf("failed to seed tower: %v", err)
	}
	if err := db.Exec(`INSERT INTO units (tower_id, unit_number, unit_type) VALUES (1, '803', 'Studio')`).Error; err != nil {
		t.Fatalf("failed to seed unit: %v", err)
	}
	return db
}

func TestCreateRetriesWithoutMissingColumns(t *testing.T) {
	store := NewBookingStore(newDriftDB(t))

	empID := uint(9)
	booking := models.Booking{
		UnitID:              1,
		GuestName:           "Drift Guest",
		Email:               "drift@example.com",
		Status:              models.BookingPending,
		CreatedByEmployeeID: &empID,
	}
	assert.NoError(t, store.Create(&booking))
	assert.NotZero(t, booking.ID)

	got, err := store.Get(booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Drift Guest", got.GuestName)
	assert.Nil(t, got.CreatedByEmployeeID, "unpersistable field reads back as nil")
}

func TestGetBackfillsMissingColumnsWithNil(t *testing.T) {
	store := NewBookingStore(newDriftDB(t))

	booking := models.Booking{UnitID: 1, GuestName: "Jane", Email: "j@x.com", Status: models.BookingConfirmed}
	assert.NoError(t, store.Create(&booking))

	got, err := store.Get(booking.ID)
	assert.NoError(t, err)
	assert.Equal(t, models.BookingConfirmed, got.Status)
	assert.Nil(t, got.CheckedInAt)
	assert.Nil(t, got.CheckedOutAt)
	assert.Nil(t, got.CreatedByEmployeeID)
	if assert.NotNil(t, got.UnitNumber) {
		assert.Equal(t, "803", *got.UnitNumber)
	}
	if assert.NotNil(t, got.TowerName) {
		assert.Equal(t, "South Tower", *got.TowerName)
	}
}

func TestListSurvivesSchemaDrift(t *testing.T) {
	store := NewBookingStore(newDriftDB(t))

	for _, name := range []string{"One", "Two"} {
		b := models.Booking{UnitID: 1, GuestName: name, Email: "x@x.com", Status: models.BookingPending}
		assert.NoError(t, store.Create(&b))
	}

	list, err := store.List()
	assert.NoError(t, err)
	assert.Len(t, list, 2)
	for _, b := range list {
		assert.Nil(t, b.CheckedInAt)
	}
}

func TestListEmptyIsNotNil(t *testing.T) {
	store := NewBookingStore(newTestDB(t))

	list, err := store.List()
	assert.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestSetTimestampIfUnset(t *testing.T) {
	db := newTestDB(t)
	unitID := seedUnit(t, db)
	store := NewBookingStore(db)

	booking := models.Booking{UnitID: unitID, GuestName: "Jane", Email: "j@x.com", Status: models.BookingConfirmed}
	assert.NoError(t, db.Create(&booking).Error)

	first := time.Date(2024, 6, 12, 14, 0, 0, 0, time.UTC)
	assert.NoError(t, store.SetTimestampIfUnset(booking.ID, "checked_in_at", first))

	got, err := store.Get(booking.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, got.CheckedInAt) {
		assert.True(t, got.CheckedInAt.Equal(first))
	}

	// Second write is a no-op.
	assert.NoError(t, store.SetTimestampIfUnset(booking.ID, "checked_in_at", first.Add(time.Hour)))
	got, err = store.Get(booking.ID)
	assert.NoError(t, err)
	if assert.NotNil(t, got.CheckedInAt) {
		assert.True(t, got.CheckedInAt.Equal(first))
	}
}

func TestSetTimestampIgnoresUnconfirmedRows(t *testing.T) {
	db := newTestDB(t)
	unitID := seedUnit(t, db)
	store := NewBookingStore(db)

	booking := models.Booking{UnitID: unitID, GuestName: "Jane", Email: "j@x.com", Status: models.BookingPending}
	assert.NoError(t, db.Create(&booking).Error)

	assert.NoError(t, store.SetTimestampIfUnset(booking.ID, "checked_in_at", time.Now()))

	got, err := store.Get(booking.ID)
	assert.NoError(t, err)
	assert.Nil(t, got.CheckedInAt, "pending rows are never stamped")
}

func TestSetTimestampOnDriftedSchema(t *testing.T) {
	store := NewBookingStore(newDriftDB(t))

	booking := models.Booking{UnitID: 1, GuestName: "Jane", Email: "j@x.com", Status: models.BookingConfirmed}
	assert.NoError(t, store.Create(&booking))

	err := store.SetTimestampIfUnset(booking.ID, "checked_in_at", time.Now())
	assert.True(t, IsSchemaMissing(err))

	var sm *SchemaMissingError
	if assert.ErrorAs(t, err, &sm) {
		assert.Equal(t, "bookings", sm.Table)
		assert.Equal(t, "checked_in_at", sm.Column)
	}
}

func TestOptionalColumnWhitelist(t *testing.T) {
	store := NewBookingStore(newTestDB(t))

	err := store.SetTimestampIfUnset(1, "status", time.Now())
	assert.Error(t, err)
	assert.False(t, IsSchemaMissing(err))

	err = store.WriteOptionalColumn("bookings", 1, "guest_name", "evil")
	assert.Error(t, err)

	err = store.WriteOptionalColumn("employees", 1, "created_by_employee_id", 1)
	assert.Error(t, err, "only tables with declared optional columns are writable")
}

func TestGetMissingBooking(t *testing.T) {
	store := NewBookingStore(newTestDB(t))

	_, err := store.Get(77)
	assert.ErrorIs(t, err, ErrBookingNotFound)

	ok, err := store.Exists(77)
	assert.NoError(t, err)
	assert.False(t, ok)
}

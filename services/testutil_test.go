package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"regalia-backend/models"
)

// newTestDB opens an isolated in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
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
	// A fresh connection would see a fresh empty :memory: database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.Tower{},
		&models.Unit{},
		&models.Employee{},
		&models.EmployeeRole{},
		&models.EmployeeTower{},
		&models.Booking{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

// seedUnit creates a tower and one unit, returning the unit id.
func seedUnit(t *testing.T, db *gorm.DB) uint {
	t.Helper()

	tower := models.Tower{TowerName: "North Tower", NumberFloors: 12}
	if err := db.Create(&tower).Error; err != nil {
		t.Fatalf("failed to seed tower: %v", err)
	}
	unit := models.Unit{TowerID: &tower.ID, UnitNumber: "1204"}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("failed to seed unit: %v", err)
	}
	return unit.ID
}

// stubSender records notification attempts without talking to any
// provider.
type stubSender struct {
	result EmailResult
	calls  []uint
}

func (s *stubSender) SendConfirmation(b *models.BookingDetail) EmailResult {
	s.calls = append(s.calls, b.ID)
	if b.Email == "" {
		return EmailResult{Sent: false, Error: "no guest email on booking"}
	}
	return s.result
}

func mustDate(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return &d
}

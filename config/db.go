package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"regalia-backend/models"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "Local")
	}
	if q.Get("tls") == "" {
		q.Set("tls", envOrDefault("DB_TLS", "skip-verify"))
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

// resolveMySQLDSN builds the DSN from MYSQL_URL / DATABASE_URL or the
// DB_* pieces. The managed database requires TLS, so the DSN always
// carries a tls parameter (DB_TLS overrides the mode).
func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "regalia_db")
	tlsMode := envOrDefault("DB_TLS", "skip-verify")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&tls=%s",
		user, pass, host, port, dbName, tlsMode,
	), nil
}

// SeedDatabase ensures a default owner account exists so a fresh
// deployment is reachable.
func SeedDatabase() {
	var ownerCount int64
	DB.Model(&models.Employee{}).Count(&ownerCount)
	if ownerCount > 0 {
		return
	}

	password := envOrDefault("SEED_OWNER_PASSWORD", "owner123")
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("warning: failed to hash default owner password: %v", err)
		return
	}

	owner := models.Employee{
		FullName: "Owner Account",
		Username: "owner@regalia.local",
		Password: string(hash),
		Email:    "owner@regalia.local",
	}
	if err := DB.Create(&owner).Error; err != nil {
		log.Printf("warning: failed to create default owner: %v", err)
		return
	}
	role := models.EmployeeRole{EmployeeID: owner.ID, RoleType: "OWNER", Status: "active"}
	if err := DB.Create(&role).Error; err != nil {
		log.Printf("warning: failed to create default owner role: %v", err)
		return
	}
	log.Println("Default owner seeded")
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	// Parent->child order. AutoMigrate adds the optional late columns
	// when it runs; environments that skip migration keep working
	// through the schema-tolerant access layer.
	if err := DB.AutoMigrate(
		&models.Tower{},
		&models.Unit{},
		&models.Employee{},
		&models.EmployeeRole{},
		&models.EmployeeTower{},
		&models.Booking{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"resort-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
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

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

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
	dbName := envOrDefault("DB_NAME", "resort_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		user, pass, host, port, dbName,
	), nil
}

// SeedDatabase is idempotent: only empty tables are filled.
func SeedDatabase() {
	// ---------------- Admins ----------------
	var adminCount int64
	DB.Model(&models.Admin{}).Count(&adminCount)
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("warning: failed to hash default admin password: %v", err)
		} else {
			admin := models.Admin{
				FullName: "Admin User",
				Username: envOrDefault("ADMIN_USERNAME", "admin@resort.local"),
				Password: string(hash),
			}
			if err := DB.Create(&admin).Error; err != nil {
				log.Printf("warning: failed to create default admin: %v", err)
			} else {
				log.Println("Default admin seeded")
			}
		}
	}

	// ---------------- Rooms ----------------
	var roomCount int64
	DB.Model(&models.Room{}).Count(&roomCount)
	if roomCount == 0 {
		rooms := []models.Room{
			{Title: "Standard Single", Description: "Cozy single with garden view", Price: 2400, Capacity: 1},
			{Title: "Deluxe Double", Description: "Sea-facing double with balcony", Price: 4200, Capacity: 2},
			{Title: "Family Suite", Description: "Two rooms, living area, up to four guests", Price: 7600, Capacity: 4},
			{Title: "Beachfront Villa", Description: "Private villa on the shore", Price: 12500, Capacity: 6},
		}
		DB.Create(&rooms)
		log.Println("Rooms seeded")
	}

	// ---------------- Offers ----------------
	var offerCount int64
	DB.Model(&models.Offer{}).Count(&offerCount)
	if offerCount == 0 {
		offers := []models.Offer{
			{
				ID:              "welcome-10",
				Title:           "Welcome Discount",
				Description:     "10% off your first stay",
				DiscountPercent: 10,
				CTAText:         "Claim your welcome gift",
				IsOneTime:       true,
			},
			{
				ID:              "weekday-5",
				Title:           "Weekday Getaway",
				Description:     "5% off, claim as often as you like",
				DiscountPercent: 5,
				CTAText:         "Book a weekday escape",
				IsOneTime:       false,
			},
		}
		DB.Create(&offers)
		log.Println("Offers seeded")
	}
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

	// AutoMigrate in parent->child order
	if err := DB.AutoMigrate(
		&models.Admin{},
		&models.UserProfile{},
		&models.UsernameIndex{},
		&models.Room{},
		&models.Offer{},
		&models.Booking{},
		&models.Guest{},
		&models.Notification{},
		&models.DiscountSession{},
		&models.ChatMessage{},
		&models.ActiveChat{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

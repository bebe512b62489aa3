package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"hotel-folio/models"

	"github.com/shopspring/decimal"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// SeedDatabase creates a small room inventory on an empty database.
func SeedDatabase(db *gorm.DB) error {
	var roomCount int64
	if err := db.Model(&models.Room{}).Count(&roomCount).Error; err != nil {
		return err
	}
	if roomCount > 0 {
		return nil
	}

	rooms := []models.Room{
		{RoomNumber: "101", Category: "Standard", Floor: "1", PricePerDay: decimal.NewFromInt(2800), Status: models.RoomStatusFree},
		{RoomNumber: "102", Category: "Standard", Floor: "1", PricePerDay: decimal.NewFromInt(2800), Status: models.RoomStatusFree},
		{RoomNumber: "201", Category: "Deluxe", Floor: "2", PricePerDay: decimal.NewFromInt(4800), Status: models.RoomStatusFree},
		{RoomNumber: "202", Category: "Deluxe", Floor: "2", PricePerDay: decimal.NewFromInt(4800), Status: models.RoomStatusFree},
		{RoomNumber: "301", Category: "Suite", Floor: "3", PricePerDay: decimal.NewFromInt(7500), Status: models.RoomStatusFree},
	}
	if err := db.Create(&rooms).Error; err != nil {
		return fmt.Errorf("seed rooms: %w", err)
	}

	var settingCount int64
	db.Model(&models.HotelSetting{}).Count(&settingCount)
	if settingCount == 0 {
		if err := db.Create(&models.HotelSetting{Name: "Hotel"}).Error; err != nil {
			return fmt.Errorf("seed hotel setting: %w", err)
		}
	}

	GetLogger().WithField("rooms", len(rooms)).Info("demo data seeded")
	return nil
}

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
	// instants are persisted in UTC; the hotel timezone is applied in code
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
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
	dbName := envOrDefault("DB_NAME", "hotel_folio")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

func gormLogLevel(raw string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

// GormConfig is shared by the MySQL connection and the test store so both
// translate unique-key violations into gorm.ErrDuplicatedKey.
func GormConfig(level logger.LogLevel) *gorm.Config {
	return &gorm.Config{
		Logger: logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  level,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Migrate creates or updates every table, parents before children.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.HotelSetting{},
		&models.Guest{},
		&models.Room{},
		&models.Stay{},
		&models.StayRoom{},
		&models.AncillaryCharge{},
		&models.PaymentRecord{},
		&models.AccountingEntry{},
		&models.NightAuditRecord{},
		&models.CashRegister{},
		&models.CashMovement{},
	)
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	db, err := gorm.Open(mysql.Open(dsn), GormConfig(gormLogLevel(os.Getenv("DB_LOG_LEVEL"))))
	if err != nil {
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetConnMaxLifetime(5 * time.Minute)
	} else {
		GetLogger().WithError(err).Warn("cannot get raw sql.DB")
	}

	if err := db.Use(otelgorm.NewPlugin()); err != nil {
		GetLogger().WithError(err).Warn("db connected but failed to install otelgorm plugin")
	}

	if err := Migrate(db); err != nil {
		return err
	}

	DB = db

	if strings.EqualFold(envOrDefault("SEED_DEMO_DATA", "false"), "true") {
		if err := SeedDatabase(db); err != nil {
			return err
		}
	}
	return nil
}

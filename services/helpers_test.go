package services

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"hotel-folio/config"
	"hotel-folio/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), config.GormConfig(logger.Silent))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func assertDecimal(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(dec(want)) {
		t.Errorf("%s = %s, want %s", name, got.String(), want)
	}
}

func mustCreateRoom(t *testing.T, db *gorm.DB, number, price string) models.Room {
	t.Helper()
	room := models.Room{RoomNumber: number, Category: "Standard", PricePerDay: dec(price), Status: models.RoomStatusFree}
	if err := db.Create(&room).Error; err != nil {
		t.Fatalf("create room %s: %v", number, err)
	}
	return room
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// checkInAt opens a stay through StayService at the given instant.
func checkInAt(t *testing.T, db *gorm.DB, at time.Time, in CheckInInput) models.Stay {
	t.Helper()
	svc := NewStayService(db, testLogger())
	svc.Now = fixedClock(at)
	if in.Guest.FullName == "" {
		in.Guest.FullName = "Asha Rao"
	}
	stay, err := svc.CheckIn(context.Background(), in)
	if err != nil {
		t.Fatalf("check in: %v", err)
	}
	return stay
}

package cmd

import (
	"context"
	"fmt"

	"hotel-folio/config"
	"hotel-folio/controllers"
	"hotel-folio/routes"
	"hotel-folio/services"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// app is the wired service graph shared by every command.
type app struct {
	cfg    config.AppConfig
	db     *gorm.DB
	logger *logrus.Logger

	stays          *services.StayService
	guests         *services.GuestService
	charges        *services.ChargeService
	settlements    *services.SettlementService
	rooms          *services.RoomService
	ledger         *services.LedgerService
	audits         *services.NightAuditService
	exporter       *services.AuditExporter
	reconciliation *services.ReconciliationService
	settings       *services.SettingsService
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadAppConfig()
	if err != nil {
		return nil, err
	}
	logger := config.GetLogger()

	if err := config.ConnectDatabase(); err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	db := config.DB

	var locker services.AuditLocker
	if err := config.ConnectRedis(ctx, cfg.RedisAddress); err != nil {
		logger.WithError(err).Warn("redis unavailable; night audit runs without a distributed lock")
	} else if l := config.GetRedisLock(); l != nil {
		locker = services.RedisAuditLocker{Client: l}
	}

	tariff := services.TariffConfig{
		HourlyOverstayRate: cfg.OverstayHourlyRate,
	}

	a := &app{cfg: cfg, db: db, logger: logger}
	a.stays = services.NewStayService(db, logger)
	a.guests = services.NewGuestService(db)
	a.charges = services.NewChargeService(db, logger)
	a.settlements = services.NewSettlementService(db, tariff, logger)
	a.rooms = services.NewRoomService(db)
	a.ledger = services.NewLedgerService(db, logger)
	a.audits = services.NewNightAuditService(db, cfg.HotelLocation, locker, logger)
	a.settings = services.NewSettingsService(db)
	a.exporter = services.NewAuditExporter(a.audits, a.settings)
	a.reconciliation = services.NewReconciliationService(db)
	return a, nil
}

func (a *app) controllers() routes.Controllers {
	return routes.Controllers{
		Stays:      controllers.NewStayController(a.stays, a.charges, a.settlements),
		Guests:     controllers.NewGuestController(a.guests),
		Rooms:      controllers.NewRoomController(a.rooms),
		NightAudit: controllers.NewNightAuditController(a.audits, a.exporter),
		Ledger:     controllers.NewLedgerController(a.ledger, a.reconciliation),
		Settings:   controllers.NewSettingsController(a.settings),
	}
}

func (a *app) close() {
	config.CloseRedis()
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

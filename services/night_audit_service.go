package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotel-folio/config"
	"hotel-folio/models"
	"hotel-folio/utils"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const auditLockTTL = 2 * time.Minute

// NightAuditService closes business days into NightAuditRecords.
type NightAuditService struct {
	DB       *gorm.DB
	Location *time.Location
	// Locker is optional; the unique index on audit_date is the real guard.
	Locker AuditLocker
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewNightAuditService(db *gorm.DB, loc *time.Location, locker AuditLocker, logger *logrus.Logger) *NightAuditService {
	if loc == nil {
		loc = time.UTC
	}
	return &NightAuditService{DB: db, Location: loc, Locker: locker, Logger: logger, Now: utcNow}
}

type paymentRow struct {
	Instrument string
	Amount     decimal.Decimal
}

// DayTotals is the money side of a business day.
type DayTotals struct {
	Revenue  decimal.Decimal
	Cash     decimal.Decimal
	Bank     decimal.Decimal
	UPI      decimal.Decimal
	Payments decimal.Decimal
	Pending  decimal.Decimal
}

// Totals sums every ledger producer and every cash/bank/upi payment in
// [start, end). Payments may exceed revenue, so Pending can be negative.
func (s *NightAuditService) Totals(ctx context.Context, start, end time.Time) (DayTotals, error) {
	db := s.DB.WithContext(ctx)
	t := DayTotals{
		Revenue: decimal.Zero,
		Cash:    decimal.Zero,
		Bank:    decimal.Zero,
		UPI:     decimal.Zero,
	}

	var amounts []decimal.Decimal
	if err := db.Model(&models.AccountingEntry{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Pluck("total_amount", &amounts).Error; err != nil {
		return t, fmt.Errorf("sum ledger entries: %w", err)
	}
	for _, a := range amounts {
		t.Revenue = t.Revenue.Add(a)
	}

	var rows []paymentRow
	if err := db.Model(&models.PaymentRecord{}).
		Select("instrument, amount").
		Where("created_at >= ? AND created_at < ?", start, end).
		Scan(&rows).Error; err != nil {
		return t, fmt.Errorf("sum payments: %w", err)
	}
	for _, r := range rows {
		switch r.Instrument {
		case models.InstrumentCash:
			t.Cash = t.Cash.Add(r.Amount)
		case models.InstrumentBank:
			t.Bank = t.Bank.Add(r.Amount)
		case models.InstrumentUPI:
			t.UPI = t.UPI.Add(r.Amount)
		}
	}

	t.Payments = t.Cash.Add(t.Bank).Add(t.UPI)
	t.Pending = t.Revenue.Sub(t.Payments)
	return t, nil
}

func (s *NightAuditService) roomCounts(ctx context.Context) (occupied, vacant int64, err error) {
	db := s.DB.WithContext(ctx)
	if err = db.Model(&models.Room{}).Where("status = ?", models.RoomStatusOccupied).Count(&occupied).Error; err != nil {
		return 0, 0, fmt.Errorf("count occupied rooms: %w", err)
	}
	if err = db.Model(&models.Room{}).Where("status = ?", models.RoomStatusFree).Count(&vacant).Error; err != nil {
		return 0, 0, fmt.Errorf("count vacant rooms: %w", err)
	}
	return occupied, vacant, nil
}

func (s *NightAuditService) exists(ctx context.Context, date string) (bool, error) {
	var n int64
	if err := s.DB.WithContext(ctx).Model(&models.NightAuditRecord{}).
		Where("audit_date = ?", date).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("check night audit %s: %w", date, err)
	}
	return n > 0, nil
}

// Run closes the given business date. A date can be closed once; later runs
// return ErrAuditAlreadyRun and write nothing.
func (s *NightAuditService) Run(ctx context.Context, rawDate string) (models.NightAuditRecord, error) {
	date, err := utils.NormalizeBusinessDate(rawDate)
	if err != nil {
		return models.NightAuditRecord{}, invalidf("%v", err)
	}
	start, end, err := utils.BusinessDayWindow(date, s.Location)
	if err != nil {
		return models.NightAuditRecord{}, invalidf("%v", err)
	}

	log := s.Logger.WithField("audit_date", date)

	if s.Locker != nil {
		release, err := s.Locker.Obtain(ctx, "night-audit:"+date, auditLockTTL)
		if err != nil {
			log.WithError(err).Warn("night audit lock not obtained")
			return models.NightAuditRecord{}, err
		}
		defer release()
	}

	done, err := s.exists(ctx, date)
	if err != nil {
		return models.NightAuditRecord{}, err
	}
	if done {
		return models.NightAuditRecord{}, ErrAuditAlreadyRun
	}

	totals, err := s.Totals(ctx, start, end)
	if err != nil {
		return models.NightAuditRecord{}, err
	}
	occupied, vacant, err := s.roomCounts(ctx)
	if err != nil {
		return models.NightAuditRecord{}, err
	}

	now := utcNow()
	if s.Now != nil {
		now = s.Now().UTC()
	}
	rec := models.NightAuditRecord{
		CreatedAt:        now,
		AuditDate:        date,
		WindowStart:      start,
		WindowEnd:        end,
		TotalRoomRevenue: totals.Revenue,
		TotalPayments:    totals.Payments,
		PendingAmount:    totals.Pending,
		CashTotal:        totals.Cash,
		BankTotal:        totals.Bank,
		UPITotal:         totals.UPI,
		GSTAmount:        decimal.Zero,
		OccupiedRooms:    occupied,
		VacantRooms:      vacant,
	}

	if err := s.DB.WithContext(ctx).Create(&rec).Error; err != nil {
		if isDuplicateKeyError(err) {
			return models.NightAuditRecord{}, ErrAuditAlreadyRun
		}
		config.LogError(s.Logger, "services", "NightAuditService.Run", "insert night audit", date, err)
		return models.NightAuditRecord{}, fmt.Errorf("insert night audit %s: %w", date, err)
	}

	log.WithFields(logrus.Fields{
		"revenue":  rec.TotalRoomRevenue.String(),
		"payments": rec.TotalPayments.String(),
		"pending":  rec.PendingAmount.String(),
	}).Info("night audit closed")
	return rec, nil
}

func (s *NightAuditService) Get(ctx context.Context, rawDate string) (models.NightAuditRecord, error) {
	date, err := utils.NormalizeBusinessDate(rawDate)
	if err != nil {
		return models.NightAuditRecord{}, invalidf("%v", err)
	}
	var rec models.NightAuditRecord
	err = s.DB.WithContext(ctx).Where("audit_date = ?", date).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return rec, notFoundf("night audit %s", date)
	}
	if err != nil {
		return rec, fmt.Errorf("load night audit %s: %w", date, err)
	}
	return rec, nil
}

// List returns closed dates in [from, to], oldest first. Empty bounds are open.
func (s *NightAuditService) List(ctx context.Context, from, to string) ([]models.NightAuditRecord, error) {
	q := s.DB.WithContext(ctx).Model(&models.NightAuditRecord{})
	if from != "" {
		f, err := utils.NormalizeBusinessDate(from)
		if err != nil {
			return nil, invalidf("from: %v", err)
		}
		q = q.Where("audit_date >= ?", f)
	}
	if to != "" {
		t, err := utils.NormalizeBusinessDate(to)
		if err != nil {
			return nil, invalidf("to: %v", err)
		}
		q = q.Where("audit_date <= ?", t)
	}

	var out []models.NightAuditRecord
	if err := q.Order("audit_date ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list night audits: %w", err)
	}
	return out, nil
}

// PreviousBusinessDate is the date a nightly job closes: yesterday in the hotel timezone.
func (s *NightAuditService) PreviousBusinessDate() string {
	now := utcNow()
	if s.Now != nil {
		now = s.Now()
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return utils.BusinessDateOf(now.In(loc).AddDate(0, 0, -1), loc)
}

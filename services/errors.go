package services

import (
	"errors"
	"fmt"
	"strings"

	mysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// Error classes. Controllers map them to 400 / 404 / 409.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("conflict")
)

var (
	ErrStayNotCheckedIn      = fmt.Errorf("%w: stay is not checked in", ErrConflict)
	ErrRoomNotAvailable      = fmt.Errorf("%w: room is not free", ErrConflict)
	ErrRoomNotInHousekeeping = fmt.Errorf("%w: room is not in housekeeping", ErrConflict)
	ErrAuditAlreadyRun       = fmt.Errorf("%w: night audit already run for this date", ErrConflict)
	ErrAuditInProgress       = fmt.Errorf("%w: night audit for this date is running elsewhere", ErrConflict)
)

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// SettlementError reports which checkout step failed. The transaction has
// been rolled back when this is returned.
type SettlementError struct {
	StayID uint
	Step   string
	Err    error
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("checkout stay %d failed at %s: %v", e.StayID, e.Step, e.Err)
}

func (e *SettlementError) Unwrap() error {
	return e.Err
}

func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var merr *mysql.MySQLError
	if errors.As(err, &merr) {
		return merr.Number == 1062
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "duplicate entry") || strings.Contains(lower, "unique constraint failed")
}

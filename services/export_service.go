package services

import (
	"context"
	"fmt"
	"io"

	"hotel-folio/models"

	"github.com/xuri/excelize/v2"
)

const auditSheet = "Night Audit"

var auditHeadings = []interface{}{
	"Date", "Room Revenue", "Payments", "Pending", "Cash", "Bank", "UPI", "GST", "Occupied", "Vacant",
}

// AuditExporter writes closed night audits as an xlsx workbook.
type AuditExporter struct {
	Audits   *NightAuditService
	Settings *SettingsService
}

func NewAuditExporter(audits *NightAuditService, settings *SettingsService) *AuditExporter {
	return &AuditExporter{Audits: audits, Settings: settings}
}

func auditRow(r models.NightAuditRecord) []interface{} {
	return []interface{}{
		r.AuditDate,
		r.TotalRoomRevenue.InexactFloat64(),
		r.TotalPayments.InexactFloat64(),
		r.PendingAmount.InexactFloat64(),
		r.CashTotal.InexactFloat64(),
		r.BankTotal.InexactFloat64(),
		r.UPITotal.InexactFloat64(),
		r.GSTAmount.InexactFloat64(),
		r.OccupiedRooms,
		r.VacantRooms,
	}
}

// Workbook builds the report for [from, to]. Rows start below a header with
// the property name and tax id.
func (e *AuditExporter) Workbook(ctx context.Context, from, to string) (*excelize.File, error) {
	records, err := e.Audits.List(ctx, from, to)
	if err != nil {
		return nil, err
	}
	hotel, err := e.Settings.Hotel(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", auditSheet); err != nil {
		f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := [][]interface{}{
		{hotel.Name},
		{hotel.Address},
		{"GSTIN", hotel.GSTIN},
		{},
		auditHeadings,
	}
	for i, row := range header {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(auditSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	first := len(header) + 1
	for i, r := range records {
		row := auditRow(r)
		cell, _ := excelize.CoordinatesToCellName(1, first+i)
		if err := f.SetSheetRow(auditSheet, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("write audit %s: %w", r.AuditDate, err)
		}
	}
	return f, nil
}

// Export streams the workbook to w.
func (e *AuditExporter) Export(ctx context.Context, w io.Writer, from, to string) error {
	f, err := e.Workbook(ctx, from, to)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

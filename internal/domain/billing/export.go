package billing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{
	"Invoice #", "Patient", "Service", "Amount", "Due Date", "Status", "Created At",
}

// ExportCSV renders invoices as comma-separated text with a fixed 7-column
// header. Fields are joined verbatim, so a comma inside a service description
// shifts that row's columns. Amounts carry no currency symbol and keep their
// shortest decimal form. A missing patient join leaves the field empty.
func ExportCSV(invoices []*Invoice) string {
	lines := make([]string, 0, len(invoices)+1)
	lines = append(lines, strings.Join(csvHeader, ","))
	for _, inv := range invoices {
		var patient string
		if inv.PatientName != nil {
			patient = *inv.PatientName
		}
		row := []string{
			inv.InvoiceNumber,
			patient,
			inv.ServiceDescription,
			strconv.FormatFloat(inv.Amount, 'f', -1, 64),
			formatShortDate(inv.DueDate),
			inv.Status,
			formatShortDate(inv.CreatedAt),
		}
		lines = append(lines, strings.Join(row, ","))
	}
	return strings.Join(lines, "\n")
}

// ExportFilename names the download after the day it was generated.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("invoices_%s.csv", now.Format("2006-01-02"))
}

// formatShortDate renders M/D/YYYY without zero padding.
func formatShortDate(t time.Time) string {
	return fmt.Sprintf("%d/%d/%d", t.Month(), t.Day(), t.Year())
}

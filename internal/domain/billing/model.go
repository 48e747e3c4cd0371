package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Invoice statuses. Transitions are deliberately unconstrained: any status may
// be overwritten with any other, and paid invoices may still be deleted.
const (
	StatusPending = "pending"
	StatusPaid    = "paid"
	StatusOverdue = "overdue"
)

var validStatuses = map[string]bool{
	StatusPending: true, StatusPaid: true, StatusOverdue: true,
}

// Invoice maps to the invoices table. PatientName is populated by a LEFT JOIN
// on patients and stays nil when the referenced patient was deleted.
type Invoice struct {
	ID                 uuid.UUID  `db:"id" json:"id"`
	InvoiceNumber      string     `db:"invoice_number" json:"invoice_number"`
	UserID             string     `db:"user_id" json:"-"`
	PatientID          *uuid.UUID `db:"patient_id" json:"patient_id,omitempty"`
	ServiceDescription string     `db:"service_description" json:"service_description"`
	Amount             float64    `db:"amount" json:"amount"`
	DueDate            time.Time  `db:"due_date" json:"due_date"`
	Status             string     `db:"status" json:"status"`
	CreatedAt          time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt          time.Time  `db:"updated_at" json:"updated_at"`
	PatientName        *string    `db:"patient_name" json:"patient_name,omitempty"`
}

// currencySymbol is a fixed literal, not locale-derived.
const currencySymbol = "₹"

// FormatAmount renders a monetary amount with the currency glyph and exactly
// two decimal places, rounding half away from zero (99.995 -> "₹100.00").
func FormatAmount(v float64) string {
	return currencySymbol + decimal.NewFromFloat(v).StringFixed(2)
}

// billToName returns the patient display name for the Bill To block, falling
// back to a fixed literal when the join is missing.
func billToName(inv *Invoice) string {
	if inv.PatientName != nil && *inv.PatientName != "" {
		return *inv.PatientName
	}
	return "Patient Name"
}

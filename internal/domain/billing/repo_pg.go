package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doctorconnect/clinic/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.pool
}

const invoiceCols = `i.id, i.invoice_number, i.user_id, i.patient_id,
	i.service_description, i.amount, i.due_date, i.status,
	i.created_at, i.updated_at, p.full_name`

func scanInvoice(row pgx.Row) (*Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.InvoiceNumber, &inv.UserID, &inv.PatientID,
		&inv.ServiceDescription, &inv.Amount, &inv.DueDate, &inv.Status,
		&inv.CreatedAt, &inv.UpdatedAt, &inv.PatientName)
	return &inv, err
}

func (r *repoPG) Create(ctx context.Context, inv *Invoice) error {
	inv.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO invoices (id, invoice_number, user_id, patient_id,
			service_description, amount, due_date, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		inv.ID, inv.InvoiceNumber, inv.UserID, inv.PatientID,
		inv.ServiceDescription, inv.Amount, inv.DueDate, inv.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, userID string, id uuid.UUID) (*Invoice, error) {
	return scanInvoice(r.conn(ctx).QueryRow(ctx, `
		SELECT `+invoiceCols+`
		FROM invoices i LEFT JOIN patients p ON p.id = i.patient_id
		WHERE i.id = $1 AND i.user_id = $2`, id, userID))
}

func (r *repoPG) Update(ctx context.Context, inv *Invoice) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE invoices SET patient_id=$3, service_description=$4, amount=$5,
			due_date=$6, status=$7, updated_at=NOW()
		WHERE id = $1 AND user_id = $2`,
		inv.ID, inv.UserID, inv.PatientID, inv.ServiceDescription,
		inv.Amount, inv.DueDate, inv.Status)
	return err
}

func (r *repoPG) UpdateStatus(ctx context.Context, userID string, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE invoices SET status=$3, updated_at=NOW()
		WHERE id = $1 AND user_id = $2`, id, userID, status)
	return err
}

func (r *repoPG) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM invoices WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *repoPG) ListAll(ctx context.Context, userID string) ([]*Invoice, error) {
	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+invoiceCols+`
		FROM invoices i LEFT JOIN patients p ON p.id = i.patient_id
		WHERE i.user_id = $1
		ORDER BY i.created_at DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []*Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *repoPG) GenerateNumber(ctx context.Context) (string, error) {
	var number string
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT generate_invoice_number()`).Scan(&number)
	return number, err
}

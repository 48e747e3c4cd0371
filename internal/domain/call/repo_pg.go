package call

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

const callCols = `c.id, c.user_id, c.patient_id, c.appointment_id, c.call_type,
	c.call_duration, c.call_notes, c.call_outcome, c.created_at, p.full_name`

func scanCall(row pgx.Row) (*Call, error) {
	var c Call
	err := row.Scan(&c.ID, &c.UserID, &c.PatientID, &c.AppointmentID, &c.CallType,
		&c.CallDuration, &c.CallNotes, &c.CallOutcome, &c.CreatedAt, &c.PatientName)
	return &c, err
}

func (r *repoPG) Create(ctx context.Context, c *Call) error {
	c.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO calls (id, user_id, patient_id, appointment_id, call_type,
			call_duration, call_notes, call_outcome)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		c.ID, c.UserID, c.PatientID, c.AppointmentID, c.CallType,
		c.CallDuration, c.CallNotes, c.CallOutcome)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, userID string, id uuid.UUID) (*Call, error) {
	return scanCall(r.conn(ctx).QueryRow(ctx, `
		SELECT `+callCols+`
		FROM calls c LEFT JOIN patients p ON p.id = c.patient_id
		WHERE c.id = $1 AND c.user_id = $2`, id, userID))
}

func (r *repoPG) Update(ctx context.Context, c *Call) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE calls
		SET patient_id = $1, appointment_id = $2, call_type = $3,
			call_duration = $4, call_notes = $5, call_outcome = $6
		WHERE id = $7 AND user_id = $8`,
		c.PatientID, c.AppointmentID, c.CallType,
		c.CallDuration, c.CallNotes, c.CallOutcome, c.ID, c.UserID)
	return err
}

func (r *repoPG) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM calls WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *repoPG) List(ctx context.Context, userID string, limit, offset int) ([]*Call, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM calls WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+callCols+`
		FROM calls c LEFT JOIN patients p ON p.id = c.patient_id
		WHERE c.user_id = $1
		ORDER BY c.created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var calls []*Call
	for rows.Next() {
		c, err := scanCall(rows)
		if err != nil {
			return nil, 0, err
		}
		calls = append(calls, c)
	}
	return calls, total, rows.Err()
}

package dashboard

import (
	"context"
	"time"

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

func (r *repoPG) Stats(ctx context.Context, userID string, now time.Time) (*Stats, error) {
	var s Stats
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM patients WHERE user_id = $1),
			(SELECT COUNT(*) FROM appointments WHERE user_id = $1),
			(SELECT COUNT(*) FROM appointments
				WHERE user_id = $1 AND appointment_date = $2::date),
			(SELECT COALESCE(SUM(amount), 0) FROM invoices
				WHERE user_id = $1 AND status = 'paid'
				AND date_trunc('month', updated_at) = date_trunc('month', $2::timestamptz))`,
		userID, now).
		Scan(&s.TotalPatients, &s.TotalAppointments, &s.TodaysAppointments, &s.MonthlyRevenue)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

package appointment

import (
	"context"
	"time"

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

const appointmentCols = `a.id, a.user_id, a.patient_id, a.appointment_date,
	a.appointment_time, a.appointment_type, a.notes, a.status,
	a.created_at, a.updated_at, p.full_name`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	err := row.Scan(&a.ID, &a.UserID, &a.PatientID, &a.AppointmentDate,
		&a.AppointmentTime, &a.AppointmentType, &a.Notes, &a.Status,
		&a.CreatedAt, &a.UpdatedAt, &a.PatientName)
	return &a, err
}

func (r *repoPG) Create(ctx context.Context, a *Appointment) error {
	a.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appointments (id, user_id, patient_id, appointment_date,
			appointment_time, appointment_type, notes, status)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		a.ID, a.UserID, a.PatientID, a.AppointmentDate,
		a.AppointmentTime, a.AppointmentType, a.Notes, a.Status)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, userID string, id uuid.UUID) (*Appointment, error) {
	return scanAppointment(r.conn(ctx).QueryRow(ctx, `
		SELECT `+appointmentCols+`
		FROM appointments a LEFT JOIN patients p ON p.id = a.patient_id
		WHERE a.id = $1 AND a.user_id = $2`, id, userID))
}

func (r *repoPG) Update(ctx context.Context, a *Appointment) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE appointments SET patient_id=$3, appointment_date=$4,
			appointment_time=$5, appointment_type=$6, notes=$7, status=$8,
			updated_at=NOW()
		WHERE id = $1 AND user_id = $2`,
		a.ID, a.UserID, a.PatientID, a.AppointmentDate,
		a.AppointmentTime, a.AppointmentType, a.Notes, a.Status)
	return err
}

func (r *repoPG) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM appointments WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *repoPG) List(ctx context.Context, userID string, limit, offset int) ([]*Appointment, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+appointmentCols+`
		FROM appointments a LEFT JOIN patients p ON p.id = a.patient_id
		WHERE a.user_id = $1
		ORDER BY a.appointment_date DESC, a.appointment_time DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var appointments []*Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, 0, err
		}
		appointments = append(appointments, a)
	}
	return appointments, total, rows.Err()
}

func (r *repoPG) CountAll(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM appointments WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

func (r *repoPG) CountOnDate(ctx context.Context, userID string, date time.Time) (int, error) {
	var n int
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*) FROM appointments
		WHERE user_id = $1 AND appointment_date = $2::date`,
		userID, date).Scan(&n)
	return n, err
}

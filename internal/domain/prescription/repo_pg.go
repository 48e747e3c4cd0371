package prescription

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

const prescriptionCols = `rx.id, rx.user_id, rx.patient_id, rx.medication_name,
	rx.dosage, rx.frequency, rx.duration, rx.special_instructions,
	rx.prescribed_date, rx.created_at, rx.updated_at, p.full_name`

func scanPrescription(row pgx.Row) (*Prescription, error) {
	var p Prescription
	err := row.Scan(&p.ID, &p.UserID, &p.PatientID, &p.MedicationName,
		&p.Dosage, &p.Frequency, &p.Duration, &p.SpecialInstructions,
		&p.PrescribedDate, &p.CreatedAt, &p.UpdatedAt, &p.PatientName)
	return &p, err
}

func (r *repoPG) Create(ctx context.Context, p *Prescription) error {
	p.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO prescriptions (id, user_id, patient_id, medication_name,
			dosage, frequency, duration, special_instructions, prescribed_date)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		p.ID, p.UserID, p.PatientID, p.MedicationName,
		p.Dosage, p.Frequency, p.Duration, p.SpecialInstructions, p.PrescribedDate)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, userID string, id uuid.UUID) (*Prescription, error) {
	return scanPrescription(r.conn(ctx).QueryRow(ctx, `
		SELECT `+prescriptionCols+`
		FROM prescriptions rx LEFT JOIN patients p ON p.id = rx.patient_id
		WHERE rx.id = $1 AND rx.user_id = $2`, id, userID))
}

func (r *repoPG) Update(ctx context.Context, p *Prescription) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE prescriptions SET patient_id=$3, medication_name=$4, dosage=$5,
			frequency=$6, duration=$7, special_instructions=$8,
			prescribed_date=$9, updated_at=NOW()
		WHERE id = $1 AND user_id = $2`,
		p.ID, p.UserID, p.PatientID, p.MedicationName, p.Dosage,
		p.Frequency, p.Duration, p.SpecialInstructions, p.PrescribedDate)
	return err
}

func (r *repoPG) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM prescriptions WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *repoPG) List(ctx context.Context, userID string, limit, offset int) ([]*Prescription, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM prescriptions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+prescriptionCols+`
		FROM prescriptions rx LEFT JOIN patients p ON p.id = rx.patient_id
		WHERE rx.user_id = $1
		ORDER BY rx.prescribed_date DESC, rx.created_at DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var prescriptions []*Prescription
	for rows.Next() {
		p, err := scanPrescription(rows)
		if err != nil {
			return nil, 0, err
		}
		prescriptions = append(prescriptions, p)
	}
	return prescriptions, total, rows.Err()
}

package teleconsult

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

const meetingCols = `m.id, m.user_id, m.patient_id, m.title, m.scheduled_time,
	m.status, m.meeting_id, m.meeting_url, m.created_at, p.full_name`

func scanMeeting(row pgx.Row) (*Meeting, error) {
	var m Meeting
	err := row.Scan(&m.ID, &m.UserID, &m.PatientID, &m.Title, &m.ScheduledTime,
		&m.Status, &m.MeetingID, &m.MeetingURL, &m.CreatedAt, &m.PatientName)
	return &m, err
}

func (r *repoPG) Create(ctx context.Context, m *Meeting) error {
	m.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO teleconsult_meetings (id, user_id, patient_id, title,
			scheduled_time, status, meeting_id, meeting_url)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		m.ID, m.UserID, m.PatientID, m.Title,
		m.ScheduledTime, m.Status, m.MeetingID, m.MeetingURL)
	return err
}

func (r *repoPG) GetByID(ctx context.Context, userID string, id uuid.UUID) (*Meeting, error) {
	return scanMeeting(r.conn(ctx).QueryRow(ctx, `
		SELECT `+meetingCols+`
		FROM teleconsult_meetings m LEFT JOIN patients p ON p.id = m.patient_id
		WHERE m.id = $1 AND m.user_id = $2`, id, userID))
}

func (r *repoPG) UpdateStatus(ctx context.Context, userID string, id uuid.UUID, status string) error {
	_, err := r.conn(ctx).Exec(ctx, `
		UPDATE teleconsult_meetings SET status=$3
		WHERE id = $1 AND user_id = $2`, id, userID, status)
	return err
}

func (r *repoPG) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	_, err := r.conn(ctx).Exec(ctx,
		`DELETE FROM teleconsult_meetings WHERE id = $1 AND user_id = $2`, id, userID)
	return err
}

func (r *repoPG) List(ctx context.Context, userID string, limit, offset int) ([]*Meeting, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM teleconsult_meetings WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+meetingCols+`
		FROM teleconsult_meetings m LEFT JOIN patients p ON p.id = m.patient_id
		WHERE m.user_id = $1
		ORDER BY m.scheduled_time DESC
		LIMIT $2 OFFSET $3`, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var meetings []*Meeting
	for rows.Next() {
		m, err := scanMeeting(rows)
		if err != nil {
			return nil, 0, err
		}
		meetings = append(meetings, m)
	}
	return meetings, total, rows.Err()
}

package settings

import (
	"context"
	"errors"

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

func (r *repoPG) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT user_id, doctor_name, clinic_name, address, phone, email, updated_at
		FROM profiles WHERE user_id = $1`, userID).
		Scan(&p.UserID, &p.DoctorName, &p.ClinicName, &p.Address, &p.Phone, &p.Email, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) UpsertProfile(ctx context.Context, p *Profile) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO profiles (user_id, doctor_name, clinic_name, address, phone, email)
		VALUES ($1,$2,$3,$4,$5,$6)
		ON CONFLICT (user_id) DO UPDATE SET
			doctor_name=EXCLUDED.doctor_name, clinic_name=EXCLUDED.clinic_name,
			address=EXCLUDED.address, phone=EXCLUDED.phone, email=EXCLUDED.email,
			updated_at=NOW()`,
		p.UserID, p.DoctorName, p.ClinicName, p.Address, p.Phone, p.Email)
	return err
}

func (r *repoPG) GetAppearance(ctx context.Context, userID string) (*Appearance, error) {
	var a Appearance
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT user_id, theme_mode, primary_color, updated_at
		FROM appearance_settings WHERE user_id = $1`, userID).
		Scan(&a.UserID, &a.ThemeMode, &a.PrimaryColor, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repoPG) UpsertAppearance(ctx context.Context, a *Appearance) error {
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO appearance_settings (user_id, theme_mode, primary_color)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_id) DO UPDATE SET
			theme_mode=EXCLUDED.theme_mode, primary_color=EXCLUDED.primary_color,
			updated_at=NOW()`,
		a.UserID, a.ThemeMode, a.PrimaryColor)
	return err
}

package postgres

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/fairyhunter13/ai-interview-coach/internal/domain"
)

// ProfileRepo persists career profiles, one row per user.
type ProfileRepo struct{ Pool PgxPool }

func NewProfileRepo(p PgxPool) *ProfileRepo { return &ProfileRepo{Pool: p} }

// Upsert creates or replaces the profile for a user.
func (r *ProfileRepo) Upsert(ctx domain.Context, p domain.Profile) error {
	tracer := otel.Tracer("repo.profiles")
	ctx, span := tracer.Start(ctx, "profiles.Upsert")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "UPSERT"),
		attribute.String("db.sql.table", "profiles"),
	)
	q := `INSERT INTO profiles (user_id, job_role, experience_years, updated_at)
	      VALUES ($1,$2,$3,$4)
	      ON CONFLICT (user_id) DO UPDATE SET job_role=EXCLUDED.job_role, experience_years=EXCLUDED.experience_years, updated_at=EXCLUDED.updated_at`
	_, err := r.Pool.Exec(ctx, q, p.UserID, p.JobRole, p.ExperienceYears, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("op=profile.upsert: %w", err)
	}
	return nil
}

// Get loads the profile for a user or domain.ErrNotFound.
func (r *ProfileRepo) Get(ctx domain.Context, userID string) (domain.Profile, error) {
	tracer := otel.Tracer("repo.profiles")
	ctx, span := tracer.Start(ctx, "profiles.Get")
	defer span.End()
	span.SetAttributes(
		attribute.String("db.system", "postgresql"),
		attribute.String("db.operation", "SELECT"),
		attribute.String("db.sql.table", "profiles"),
	)
	q := `SELECT user_id, job_role, experience_years, updated_at FROM profiles WHERE user_id=$1`
	row := r.Pool.QueryRow(ctx, q, userID)
	var p domain.Profile
	if err := row.Scan(&p.UserID, &p.JobRole, &p.ExperienceYears, &p.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Profile{}, fmt.Errorf("op=profile.get: %w", domain.ErrNotFound)
		}
		return domain.Profile{}, fmt.Errorf("op=profile.get: %w", err)
	}
	return p, nil
}

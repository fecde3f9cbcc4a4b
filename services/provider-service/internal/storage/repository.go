package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mbyo2/healthconnect/libs/db"
)

func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

type Repository struct {
	pool *db.Pool
}

func NewRepository(pool *db.Pool) *Repository {
	return &Repository{pool: pool}
}

type Provider struct {
	ID        string
	Name      string
	Specialty string
	Timezone  string
	IsActive  bool
	CreatedAt time.Time
}

func (r *Repository) CreateProvider(ctx context.Context, name, specialty, timezone string) (string, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	id := uuid.NewString()
	if _, err := tx.Exec(ctx, `
		INSERT INTO providers (id, name, specialty, timezone)
		VALUES ($1, $2, $3, $4)
	`, id, name, specialty, timezone); err != nil {
		return "", err
	}

	// Default weekly pattern: Mon-Fri 09:00-17:00 with a 12:00-13:00 break,
	// Sat/Sun closed.
	for wd := 0; wd <= 6; wd++ {
		working := wd >= 1 && wd <= 5
		start, end, brkStart, brkEnd := 540, 1020, 720, 780
		if !working {
			start, end, brkStart, brkEnd = 0, 0, 0, 0
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO provider_availability
				(provider_id, weekday, is_working, start_minute, end_minute, break_start_minute, break_end_minute)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (provider_id, weekday) DO NOTHING
		`, id, wd, working, start, end, brkStart, brkEnd); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) GetProvider(ctx context.Context, providerID string) (Provider, error) {
	var p Provider
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, name, COALESCE(specialty, ''), timezone, is_active, created_at
		FROM providers
		WHERE id = $1
	`, providerID).Scan(&p.ID, &p.Name, &p.Specialty, &p.Timezone, &p.IsActive, &p.CreatedAt)
	return p, err
}

func (r *Repository) ListProviders(ctx context.Context, limit int) ([]Provider, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, name, COALESCE(specialty, ''), timezone, is_active, created_at
		FROM providers
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Provider
	for rows.Next() {
		var p Provider
		if err := rows.Scan(&p.ID, &p.Name, &p.Specialty, &p.Timezone, &p.IsActive, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *Repository) UpdateProvider(ctx context.Context, providerID, name, specialty, timezone string, isActive bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE providers
		SET name = $2,
			specialty = $3,
			timezone = $4,
			is_active = $5,
			updated_at = now()
		WHERE id = $1
	`, providerID, name, specialty, timezone, isActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// WeeklyWindow is one weekday's pattern. Minutes count from midnight;
// BreakStartMinute == BreakEndMinute means no break that day.
type WeeklyWindow struct {
	ProviderID       string
	Weekday          int
	IsWorking        bool
	StartMinute      int
	EndMinute        int
	BreakStartMinute int
	BreakEndMinute   int
}

func (r *Repository) GetWeeklyWindow(ctx context.Context, providerID string, weekday int) (WeeklyWindow, error) {
	var w WeeklyWindow
	err := r.pool.QueryRow(ctx, `
		SELECT provider_id::text, weekday, is_working, start_minute, end_minute, break_start_minute, break_end_minute
		FROM provider_availability
		WHERE provider_id = $1 AND weekday = $2
	`, providerID, weekday).Scan(&w.ProviderID, &w.Weekday, &w.IsWorking, &w.StartMinute, &w.EndMinute, &w.BreakStartMinute, &w.BreakEndMinute)
	if err == nil {
		return w, nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		// No window configured means the provider is closed that day.
		return WeeklyWindow{ProviderID: providerID, Weekday: weekday, IsWorking: false}, nil
	}
	return WeeklyWindow{}, err
}

func (r *Repository) ListWeeklyWindows(ctx context.Context, providerID string) ([]WeeklyWindow, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT provider_id::text, weekday, is_working, start_minute, end_minute, break_start_minute, break_end_minute
		FROM provider_availability
		WHERE provider_id = $1
		ORDER BY weekday ASC
	`, providerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []WeeklyWindow
	for rows.Next() {
		var w WeeklyWindow
		if err := rows.Scan(&w.ProviderID, &w.Weekday, &w.IsWorking, &w.StartMinute, &w.EndMinute, &w.BreakStartMinute, &w.BreakEndMinute); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *Repository) UpsertWeeklyWindow(ctx context.Context, w WeeklyWindow) error {
	var exists bool
	if err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM providers WHERE id = $1
		)
	`, w.ProviderID).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return pgx.ErrNoRows
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO provider_availability
			(provider_id, weekday, is_working, start_minute, end_minute, break_start_minute, break_end_minute)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (provider_id, weekday) DO UPDATE
		SET is_working = EXCLUDED.is_working,
			start_minute = EXCLUDED.start_minute,
			end_minute = EXCLUDED.end_minute,
			break_start_minute = EXCLUDED.break_start_minute,
			break_end_minute = EXCLUDED.break_end_minute
	`, w.ProviderID, w.Weekday, w.IsWorking, w.StartMinute, w.EndMinute, w.BreakStartMinute, w.BreakEndMinute)
	return err
}

// Override replaces the weekly pattern for a single calendar date, either
// closing the day or substituting different hours.
type Override struct {
	ID               string
	ProviderID       string
	Date             time.Time
	IsWorking        bool
	StartMinute      int
	EndMinute        int
	BreakStartMinute int
	BreakEndMinute   int
	Reason           string
	CreatedAt        time.Time
}

func (r *Repository) UpsertOverride(ctx context.Context, o Override) (string, error) {
	var exists bool
	if err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM providers WHERE id = $1
		)
	`, o.ProviderID).Scan(&exists); err != nil {
		return "", err
	}
	if !exists {
		return "", pgx.ErrNoRows
	}

	id := uuid.NewString()
	err := r.pool.QueryRow(ctx, `
		INSERT INTO schedule_overrides
			(id, provider_id, override_date, is_working, start_minute, end_minute, break_start_minute, break_end_minute, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (provider_id, override_date) DO UPDATE
		SET is_working = EXCLUDED.is_working,
			start_minute = EXCLUDED.start_minute,
			end_minute = EXCLUDED.end_minute,
			break_start_minute = EXCLUDED.break_start_minute,
			break_end_minute = EXCLUDED.break_end_minute,
			reason = EXCLUDED.reason
		RETURNING id::text
	`, id, o.ProviderID, o.Date, o.IsWorking, o.StartMinute, o.EndMinute, o.BreakStartMinute, o.BreakEndMinute, o.Reason).Scan(&id)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repository) GetOverride(ctx context.Context, providerID string, date time.Time) (Override, bool, error) {
	var o Override
	err := r.pool.QueryRow(ctx, `
		SELECT id::text, provider_id::text, override_date, is_working,
			start_minute, end_minute, break_start_minute, break_end_minute,
			COALESCE(reason, ''), created_at
		FROM schedule_overrides
		WHERE provider_id = $1 AND override_date = $2
	`, providerID, date).Scan(
		&o.ID, &o.ProviderID, &o.Date, &o.IsWorking,
		&o.StartMinute, &o.EndMinute, &o.BreakStartMinute, &o.BreakEndMinute,
		&o.Reason, &o.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Override{}, false, nil
	}
	if err != nil {
		return Override{}, false, err
	}
	return o, true, nil
}

func (r *Repository) ListOverrides(ctx context.Context, providerID string, from, to time.Time, limit int) ([]Override, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, provider_id::text, override_date, is_working,
			start_minute, end_minute, break_start_minute, break_end_minute,
			COALESCE(reason, ''), created_at
		FROM schedule_overrides
		WHERE provider_id = $1
			AND override_date >= $2
			AND override_date < $3
		ORDER BY override_date ASC
		LIMIT $4
	`, providerID, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Override
	for rows.Next() {
		var o Override
		if err := rows.Scan(
			&o.ID, &o.ProviderID, &o.Date, &o.IsWorking,
			&o.StartMinute, &o.EndMinute, &o.BreakStartMinute, &o.BreakEndMinute,
			&o.Reason, &o.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func (r *Repository) DeleteOverride(ctx context.Context, providerID, overrideID string) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM schedule_overrides
		WHERE provider_id = $1 AND id = $2
	`, providerID, overrideID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

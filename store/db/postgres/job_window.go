package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hrygo/callwave/store"
)

func (d *DB) UpsertJobWindow(ctx context.Context, upsert *store.JobWindow) (*store.JobWindow, error) {
	stmt := `
		INSERT INTO job_window (name, enabled, start_time, end_time, updated_ts)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (name) DO UPDATE SET
			enabled = EXCLUDED.enabled,
			start_time = EXCLUDED.start_time,
			end_time = EXCLUDED.end_time,
			updated_ts = EXCLUDED.updated_ts
		RETURNING name, enabled, start_time, end_time, updated_ts`

	result := &store.JobWindow{}
	var endTime sql.NullString
	if err := d.db.QueryRowContext(ctx, stmt,
		upsert.Name, upsert.Enabled, upsert.StartTime, upsert.EndTime, time.Now().Unix(),
	).Scan(
		&result.Name,
		&result.Enabled,
		&result.StartTime,
		&endTime,
		&result.UpdatedTs,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert job window: %w", err)
	}
	if endTime.Valid {
		result.EndTime = &endTime.String
	}

	return result, nil
}

func (d *DB) GetJobWindow(ctx context.Context, name string) (*store.JobWindow, error) {
	findName := name
	windows, err := d.ListJobWindows(ctx, &store.FindJobWindow{Name: &findName})
	if err != nil {
		return nil, err
	}
	if len(windows) == 0 {
		return nil, nil
	}
	return windows[0], nil
}

func (d *DB) ListJobWindows(ctx context.Context, find *store.FindJobWindow) ([]*store.JobWindow, error) {
	where, args := []string{"1 = 1"}, []any{}
	if find != nil {
		if v := find.Name; v != nil {
			where, args = append(where, fmt.Sprintf("name = $%d", len(args)+1)), append(args, *v)
		}
		if find.OnlyEnabled {
			where = append(where, "enabled = TRUE")
		}
	}

	query := `
		SELECT name, enabled, start_time, end_time, updated_ts
		FROM job_window
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY name ASC`

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list job windows: %w", err)
	}
	defer rows.Close()

	windows := []*store.JobWindow{}
	for rows.Next() {
		jw := &store.JobWindow{}
		var endTime sql.NullString
		if err := rows.Scan(&jw.Name, &jw.Enabled, &jw.StartTime, &endTime, &jw.UpdatedTs); err != nil {
			return nil, fmt.Errorf("failed to scan job window: %w", err)
		}
		if endTime.Valid {
			jw.EndTime = &endTime.String
		}
		windows = append(windows, jw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return windows, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mlevasseur/pointage/internal/db"
	"github.com/mlevasseur/pointage/internal/domain"
)

// SQLiteEventRepo implements EventRepo over SQLite. The events table is
// append-only; there is deliberately no update or delete here.
type SQLiteEventRepo struct {
	db db.DBTX
}

func NewSQLiteEventRepo(db db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: db}
}

func (r *SQLiteEventRepo) Append(ctx context.Context, e *domain.RawEvent) error {
	// Unknown kinds are rejected at this boundary so downstream code never
	// sees one; the CHECK constraint backs this up at the schema level.
	if !e.Kind.Valid() {
		return fmt.Errorf("appending event: unknown kind %q", e.Kind)
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO events (operator_code, launch_code, kind, event_date, time_of_day, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, query,
		e.OperatorCode,
		e.LaunchCode,
		string(e.Kind),
		e.Date.String(),
		clockToValue(e.TimeOfDay),
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("appending event: %w", err)
	}
	seq, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading assigned sequence id: %w", err)
	}
	e.Seq = seq
	return nil
}

func (r *SQLiteEventRepo) ListByGroup(ctx context.Context, launchCode, operatorCode string) ([]domain.RawEvent, error) {
	query := `SELECT seq, operator_code, launch_code, kind, event_date, time_of_day, created_at
		FROM events WHERE launch_code = ? AND operator_code = ? ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query, launchCode, operatorCode)
	if err != nil {
		return nil, fmt.Errorf("listing events by group: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLiteEventRepo) List(ctx context.Context, f EventFilter) ([]domain.RawEvent, error) {
	query := `SELECT seq, operator_code, launch_code, kind, event_date, time_of_day, created_at FROM events`
	var conds []string
	var args []any
	if f.OperatorCode != "" {
		conds = append(conds, "operator_code = ?")
		args = append(args, f.OperatorCode)
	}
	if f.LaunchCode != "" {
		conds = append(conds, "launch_code = ?")
		args = append(args, f.LaunchCode)
	}
	if f.From != nil {
		conds = append(conds, "event_date >= ?")
		args = append(args, f.From.String())
	}
	if f.To != nil {
		conds = append(conds, "event_date <= ?")
		args = append(args, f.To.String())
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY seq"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLiteEventRepo) scanEvents(rows *sql.Rows) ([]domain.RawEvent, error) {
	var events []domain.RawEvent
	for rows.Next() {
		var e domain.RawEvent
		var kindStr, dateStr, createdAtStr string
		var timeOfDay sql.NullString

		if err := rows.Scan(&e.Seq, &e.OperatorCode, &e.LaunchCode, &kindStr, &dateStr, &timeOfDay, &createdAtStr); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}

		kind, err := domain.ParseEventKind(kindStr)
		if err != nil {
			return nil, fmt.Errorf("scanning event %d: %w", e.Seq, err)
		}
		e.Kind = kind

		e.Date, err = domain.ParseDate(dateStr)
		if err != nil {
			return nil, fmt.Errorf("scanning event %d: %w", e.Seq, err)
		}
		e.TimeOfDay = parseNullableClock(timeOfDay)

		e.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing event created_at: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

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

// SQLiteSummaryRepo implements SummaryRepo over SQLite.
type SQLiteSummaryRepo struct {
	db db.DBTX
}

func NewSQLiteSummaryRepo(db db.DBTX) *SQLiteSummaryRepo {
	return &SQLiteSummaryRepo{db: db}
}

func (r *SQLiteSummaryRepo) Create(ctx context.Context, s *domain.ConsolidatedSummary) error {
	query := `INSERT INTO session_summaries
		(id, operator_code, launch_code, session_date, start_time, end_time, total_min, pause_min, productive_min, event_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.OperatorCode,
		s.LaunchCode,
		s.Date.String(),
		clockToValue(s.Start),
		clockToValue(s.End),
		intToValue(s.TotalMin),
		s.PauseMin,
		intToValue(s.ProductiveMin),
		s.EventCount,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("summary for operator %s launch %s: %w", s.OperatorCode, s.LaunchCode, ErrDuplicateSummary)
		}
		return fmt.Errorf("inserting summary: %w", err)
	}
	return nil
}

func (r *SQLiteSummaryRepo) GetByKey(ctx context.Context, operatorCode, launchCode string) (*domain.ConsolidatedSummary, error) {
	query := `SELECT id, operator_code, launch_code, session_date, start_time, end_time, total_min, pause_min, productive_min, event_count, created_at
		FROM session_summaries WHERE operator_code = ? AND launch_code = ?`
	row := r.db.QueryRowContext(ctx, query, operatorCode, launchCode)
	s, err := r.scanSummary(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("summary: %w", ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

func (r *SQLiteSummaryRepo) ListRecent(ctx context.Context, days int) ([]domain.ConsolidatedSummary, error) {
	query := `SELECT id, operator_code, launch_code, session_date, start_time, end_time, total_min, pause_min, productive_min, event_count, created_at
		FROM session_summaries
		WHERE session_date >= date('now', ? || ' days')
		ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, fmt.Sprintf("-%d", days))
	if err != nil {
		return nil, fmt.Errorf("listing recent summaries: %w", err)
	}
	defer rows.Close()

	var summaries []domain.ConsolidatedSummary
	for rows.Next() {
		s, err := r.scanSummary(rows.Scan)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating summaries: %w", err)
	}
	return summaries, nil
}

func (r *SQLiteSummaryRepo) scanSummary(scan func(dest ...any) error) (*domain.ConsolidatedSummary, error) {
	var s domain.ConsolidatedSummary
	var dateStr, createdAtStr string
	var startStr, endStr sql.NullString
	var totalMin, productiveMin sql.NullInt64

	err := scan(&s.ID, &s.OperatorCode, &s.LaunchCode, &dateStr, &startStr, &endStr, &totalMin, &s.PauseMin, &productiveMin, &s.EventCount, &createdAtStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning summary: %w", err)
	}

	s.Date, err = domain.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing summary date: %w", err)
	}
	s.Start = parseNullableClock(startStr)
	s.End = parseNullableClock(endStr)
	s.TotalMin = nullableInt(totalMin)
	s.ProductiveMin = nullableInt(productiveMin)

	s.CreatedAt, err = time.Parse(time.RFC3339, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing summary created_at: %w", err)
	}
	return &s, nil
}

package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/simsieve/internal/common"
	"github.com/Veraticus/simsieve/internal/model"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

// SaveSession stores a session and its results in one transaction. An empty
// ID is filled with a new uuid and a zero CreatedAt with the current time.
// Saving an existing ID replaces it.
func (s *SQLiteStorage) SaveSession(ctx context.Context, session *model.Session) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateSession(session); err != nil {
		return err
	}

	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveSessionTx(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit session: %w", err)
	}

	slog.Debug("Saved session",
		common.FieldSessionID, session.ID,
		"results", len(session.Results))

	return nil
}

func (s *SQLiteStorage) saveSessionTx(ctx context.Context, q queryable, session *model.Session) error {
	numbers := session.Numbers
	if numbers == nil {
		numbers = []string{}
	}
	numbersJSON, err := json.Marshal(numbers)
	if err != nil {
		return fmt.Errorf("failed to encode numbers: %w", err)
	}

	if err := s.deleteSessionTx(ctx, q, session.ID); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}

	_, err = q.ExecContext(ctx, `
		INSERT INTO sessions (id, endpoint, created_at, number_count, numbers)
		VALUES (?, ?, ?, ?, ?)`,
		session.ID, session.Endpoint, session.CreatedAt.UTC(), len(session.Numbers), string(numbersJSON))
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	for i, r := range session.Results {
		_, err := q.ExecContext(ctx, `
			INSERT INTO results (
				session_id, position, sim_number, bat_cuc_score, folk_score,
				interpretation, conclusion, is_valid, error_message
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			session.ID, i, r.SimNumber, r.BatCucScore, r.FolkScore,
			r.Interpretation, r.Conclusion, r.IsValid, r.ErrorMessage)
		if err != nil {
			return fmt.Errorf("failed to insert result %d: %w", i, err)
		}
	}

	return nil
}

// GetSession loads a session with its results in submission order.
func (s *SQLiteStorage) GetSession(ctx context.Context, id string) (*model.Session, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	var (
		session     model.Session
		numbersJSON string
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, endpoint, created_at, numbers
		FROM sessions
		WHERE id = ?`, id).Scan(&session.ID, &session.Endpoint, &session.CreatedAt, &numbersJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	if err := json.Unmarshal([]byte(numbersJSON), &session.Numbers); err != nil {
		return nil, fmt.Errorf("failed to decode numbers: %w", err)
	}

	results, err := s.getResults(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	session.Results = results

	return &session, nil
}

func (s *SQLiteStorage) getResults(ctx context.Context, q queryable, sessionID string) ([]model.AnalysisResult, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT sim_number, bat_cuc_score, folk_score, interpretation,
		       conclusion, is_valid, error_message
		FROM results
		WHERE session_id = ?
		ORDER BY position`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results := []model.AnalysisResult{}
	for rows.Next() {
		var r model.AnalysisResult
		if err := rows.Scan(&r.SimNumber, &r.BatCucScore, &r.FolkScore, &r.Interpretation,
			&r.Conclusion, &r.IsValid, &r.ErrorMessage); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

// ListSessions returns session summaries, newest first. A limit of zero
// returns every session.
func (s *SQLiteStorage) ListSessions(ctx context.Context, limit int) ([]model.SessionSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if limit < 0 {
		return nil, ErrInvalidLimit
	}

	// SQLite treats a negative LIMIT as unbounded.
	sqlLimit := lo.Ternary(limit == 0, -1, limit)

	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.endpoint, s.created_at, s.number_count,
		       COUNT(r.position), COALESCE(SUM(r.is_valid), 0)
		FROM sessions s
		LEFT JOIN results r ON r.session_id = s.id
		GROUP BY s.id
		ORDER BY s.created_at DESC, s.id DESC
		LIMIT ?`, sqlLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	summaries := []model.SessionSummary{}
	for rows.Next() {
		var sum model.SessionSummary
		if err := rows.Scan(&sum.ID, &sum.Endpoint, &sum.CreatedAt, &sum.NumberCount,
			&sum.ResultCount, &sum.ValidCount); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// DeleteSession removes a session and its results.
func (s *SQLiteStorage) DeleteSession(ctx context.Context, id string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(id, "id"); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.deleteSessionTx(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) deleteSessionTx(ctx context.Context, q queryable, id string) error {
	if _, err := q.ExecContext(ctx, `DELETE FROM results WHERE session_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete results: %w", err)
	}

	res, err := q.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

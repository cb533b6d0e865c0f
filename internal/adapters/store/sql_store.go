package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/mikey/spam-bench/internal/core"
	"go.uber.org/zap"
)

// dialect captures what differs between the SQL backends
type dialect struct {
	name   string
	schema []string
	// numbered placeholders ($1, $2, ...) instead of ?
	numbered bool
}

// bind rewrites ? placeholders for the dialect
func (d dialect) bind(query string) string {
	if !d.numbered {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// SQLStore is a database/sql implementation of the ResultStore interface.
// Runs go to bench_runs and their ranked results to bench_results
type SQLStore struct {
	db      *sql.DB
	dialect dialect
	logger  *zap.Logger
}

// openSQLStore opens the database, checks the connection and creates the schema
func openSQLStore(driver, dsn string, d dialect, timeout time.Duration, logger *zap.Logger) (*SQLStore, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", d.name, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Test the connection
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w", d.name, err)
	}

	for _, stmt := range d.schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to create schema: %w", err)
		}
	}

	return &SQLStore{db: db, dialect: d, logger: logger}, nil
}

// SaveRun stores the run and its results in one transaction
func (s *SQLStore) SaveRun(ctx context.Context, run *core.Run) error {
	if run == nil {
		return ErrNilRun
	}
	prepareRun(run)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, s.dialect.bind(`
		INSERT INTO bench_runs (id, started_at, dataset)
		VALUES (?, ?, ?)
	`), run.ID, run.StartedAt.UnixNano(), run.Dataset)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for seq, r := range run.Results {
		_, err = tx.ExecContext(ctx, s.dialect.bind(`
			INSERT INTO bench_results (run_id, seq, model, score, precision_score, recall_score, f1_score, fit_nanos)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`), run.ID, seq, r.Model, r.Score, r.Precision, r.Recall, r.F1, int64(r.FitDuration))
		if err != nil {
			return fmt.Errorf("failed to insert result for %s: %w", r.Model, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}

	s.logger.Debug("Stored run",
		zap.String("backend", s.dialect.name),
		zap.String("run_id", run.ID),
		zap.Int("results", len(run.Results)))
	return nil
}

// ListRuns returns up to limit runs, newest first. A non-positive limit returns every run
func (s *SQLStore) ListRuns(ctx context.Context, limit int) ([]*core.Run, error) {
	query := `SELECT id, started_at, dataset FROM bench_runs ORDER BY started_at DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, s.dialect.bind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}

	var runs []*core.Run
	for rows.Next() {
		var run core.Run
		var startedAt int64
		if err := rows.Scan(&run.ID, &startedAt, &run.Dataset); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.StartedAt = time.Unix(0, startedAt)
		runs = append(runs, &run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}
	rows.Close()

	for _, run := range runs {
		results, err := s.results(ctx, run.ID)
		if err != nil {
			return nil, err
		}
		run.Results = results
	}
	return runs, nil
}

func (s *SQLStore) results(ctx context.Context, runID string) (core.Results, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.bind(`
		SELECT model, score, precision_score, recall_score, f1_score, fit_nanos
		FROM bench_results
		WHERE run_id = ?
		ORDER BY seq
	`), runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query results: %w", err)
	}
	defer rows.Close()

	var results core.Results
	for rows.Next() {
		var r core.Result
		var fitNanos int64
		if err := rows.Scan(&r.Model, &r.Score, &r.Precision, &r.Recall, &r.F1, &fitNanos); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		r.FitDuration = time.Duration(fitNanos)
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read results: %w", err)
	}
	return results, nil
}

// Close closes the database connection
func (s *SQLStore) Close() error {
	if err := s.db.Close(); err != nil {
		s.logger.Error("Failed to close database", zap.String("backend", s.dialect.name), zap.Error(err))
		return err
	}
	return nil
}

package store

import (
	"time"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

var postgresDialect = dialect{
	name:     "PostgreSQL",
	numbered: true,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS bench_runs (
			id UUID PRIMARY KEY,
			started_at BIGINT NOT NULL,
			dataset TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_bench_runs_started_at ON bench_runs(started_at)`,
		`CREATE TABLE IF NOT EXISTS bench_results (
			run_id UUID NOT NULL REFERENCES bench_runs(id),
			seq INTEGER NOT NULL,
			model TEXT NOT NULL,
			score DOUBLE PRECISION,
			precision_score DOUBLE PRECISION,
			recall_score DOUBLE PRECISION,
			f1_score DOUBLE PRECISION,
			fit_nanos BIGINT,
			PRIMARY KEY (run_id, seq)
		)`,
	},
}

// NewPostgresStore creates a new PostgreSQL store
func NewPostgresStore(dsn string, timeout time.Duration, logger *zap.Logger) (*SQLStore, error) {
	return openSQLStore("postgres", dsn, postgresDialect, timeout, logger)
}

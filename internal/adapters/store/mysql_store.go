package store

import (
	"time"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

var mysqlDialect = dialect{
	name: "MySQL",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS bench_runs (
			id VARCHAR(36) PRIMARY KEY,
			started_at BIGINT NOT NULL,
			dataset VARCHAR(1024),
			INDEX idx_started_at (started_at)
		)`,
		`CREATE TABLE IF NOT EXISTS bench_results (
			run_id VARCHAR(36) NOT NULL,
			seq INT NOT NULL,
			model VARCHAR(255) NOT NULL,
			score DOUBLE,
			precision_score DOUBLE,
			recall_score DOUBLE,
			f1_score DOUBLE,
			fit_nanos BIGINT,
			PRIMARY KEY (run_id, seq)
		)`,
	},
}

// NewMySQLStore creates a new MySQL store
func NewMySQLStore(dsn string, timeout time.Duration, logger *zap.Logger) (*SQLStore, error) {
	return openSQLStore("mysql", dsn, mysqlDialect, timeout, logger)
}

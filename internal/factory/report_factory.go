package factory

import (
	"io"

	"github.com/mikey/spam-bench/internal/adapters/report"
	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
	"go.uber.org/zap"
)

// ReportFactory creates result reporters based on configuration
type ReportFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewReportFactory creates a new report factory
func NewReportFactory(cfg *config.Config, logger *zap.Logger) *ReportFactory {
	return &ReportFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateReporter creates a reporter writing to out
func (f *ReportFactory) CreateReporter(out io.Writer) (core.Reporter, error) {
	reportCfg := f.cfg.GetReport()
	return report.NewConsole(out, reportCfg.Format, reportCfg.Detailed, f.logger)
}

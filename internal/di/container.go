package di

import (
	"flag"
	"os"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/mikey/spam-bench/internal/adapters/store"
	"github.com/mikey/spam-bench/internal/bench"
	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
	"github.com/mikey/spam-bench/internal/factory"
	"github.com/mikey/spam-bench/internal/logging"
	"github.com/mikey/spam-bench/internal/ports"
	"github.com/mikey/spam-bench/internal/utils"
)

// Flags contains the command line flags
type Flags struct {
	ConfigFile string
	DataPath   string
	Verbose    bool
	JSONLog    bool
	History    int
}

// ParseFlags parses command line flags and returns a Flags struct
func ParseFlags() *Flags {
	flags := &Flags{}

	flag.StringVar(&flags.ConfigFile, "config", "", "Path to config file (default: search /etc/spam-bench, $HOME/.spam-bench, ./configs, .)")
	flag.StringVar(&flags.DataPath, "data", "", "Path to the labeled CSV corpus (overrides data.path)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&flags.JSONLog, "json-log", false, "Output logs in JSON format")
	flag.IntVar(&flags.History, "history", 0, "Print the N most recent recorded runs instead of running the benchmark")

	flag.Parse()
	return flags
}

// BuildContainer creates and configures a dependency injection container
func BuildContainer(flags *Flags) (*dig.Container, error) {
	container := dig.New()

	// Register flags
	if err := container.Provide(func() *Flags { return flags }); err != nil {
		return nil, err
	}

	// Register configuration
	if err := container.Provide(func(flags *Flags) (*config.Config, error) {
		cfg, err := config.NewWithFile(flags.ConfigFile)
		if err != nil {
			return nil, err
		}
		if flags.DataPath != "" {
			cfg.Set("data.path", flags.DataPath)
		}
		return cfg, nil
	}); err != nil {
		return nil, err
	}

	// Register logger; command line switches win over the config file
	if err := container.Provide(func(flags *Flags, cfg *config.Config) (*zap.Logger, error) {
		if flags.Verbose || flags.JSONLog {
			return logging.InitConsoleLogger(flags.Verbose, flags.JSONLog)
		}
		return logging.InitLogger(cfg)
	}); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewTextProcessorFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewDatasetFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewClassifierFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewReportFactory); err != nil {
		return nil, err
	}

	// Register text processing
	if err := container.Provide(func(f *factory.TextProcessorFactory) *utils.TextProcessor {
		return f.CreateTextProcessor()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.TextProcessorFactory) (ports.TextNormalizer, error) {
		return f.CreateNormalizer()
	}); err != nil {
		return nil, err
	}

	// Register dataset stages
	if err := container.Provide(func(f *factory.DatasetFactory) ports.Loader {
		return f.CreateLoader()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.DatasetFactory) ports.Cleaner {
		return f.CreateCleaner()
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(f *factory.DatasetFactory) ports.Splitter {
		return f.CreateSplitter()
	}); err != nil {
		return nil, err
	}

	// Register evaluator
	if err := container.Provide(func(f *factory.ClassifierFactory, logger *zap.Logger) (ports.ModelEvaluator, error) {
		roster, err := f.CreateClassifiers()
		if err != nil {
			return nil, err
		}
		return core.NewEvaluator(roster, f.CreateEstimatorBuilder(), logger), nil
	}); err != nil {
		return nil, err
	}

	// Register result store; an unavailable history backend must not stop the benchmark
	if err := container.Provide(func(f *factory.StoreFactory, logger *zap.Logger) core.ResultStore {
		resultStore, err := f.CreateResultStore()
		if err != nil {
			logger.Warn("Failed to open result store, recording runs in memory only", zap.Error(err))
			return store.NewMemoryStore(logger)
		}
		return resultStore
	}); err != nil {
		return nil, err
	}

	// Register reporter
	if err := container.Provide(func(f *factory.ReportFactory) (core.Reporter, error) {
		return f.CreateReporter(os.Stdout)
	}); err != nil {
		return nil, err
	}

	// Register runner
	if err := container.Provide(bench.NewRunner); err != nil {
		return nil, err
	}

	return container, nil
}

package factory

import (
	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/dataset"
	"github.com/mikey/spam-bench/internal/labels"
	"github.com/mikey/spam-bench/internal/utils"
	"go.uber.org/zap"
)

// DatasetFactory creates the loading, cleaning and splitting stages
type DatasetFactory struct {
	cfg       *config.Config
	logger    *zap.Logger
	processor *utils.TextProcessor
}

// NewDatasetFactory creates a new dataset factory
func NewDatasetFactory(cfg *config.Config, logger *zap.Logger, processor *utils.TextProcessor) *DatasetFactory {
	return &DatasetFactory{
		cfg:       cfg,
		logger:    logger,
		processor: processor,
	}
}

// CreateLoader creates the corpus loader
func (f *DatasetFactory) CreateLoader() *dataset.Loader {
	return dataset.NewLoader(f.cfg.GetData(), f.processor, f.logger)
}

// CreateCleaner creates the corpus cleaner with its label mapping
func (f *DatasetFactory) CreateCleaner() *dataset.Cleaner {
	dataCfg := f.cfg.GetData()
	mapper := labels.NewMapper(dataCfg.HamLabel, dataCfg.SpamLabel, f.logger)
	return dataset.NewCleaner(dataCfg, mapper, f.logger)
}

// CreateSplitter creates the train/test splitter
func (f *DatasetFactory) CreateSplitter() *dataset.Splitter {
	return dataset.NewSplitter(f.cfg.GetSplit(), f.logger)
}

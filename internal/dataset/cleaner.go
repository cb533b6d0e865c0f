package dataset

import (
	"fmt"

	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
	"github.com/mikey/spam-bench/internal/labels"
	"go.uber.org/zap"
)

// Canonical column names after cleaning
const (
	ClassColumn = "Class"
	TextColumn  = "Text"
)

// Cleaner turns a raw table into a labeled corpus
type Cleaner struct {
	labelColumn string
	textColumn  string
	dropColumns []string
	mapper      *labels.Mapper
	logger      *zap.Logger
}

// NewCleaner creates a new cleaner
func NewCleaner(cfg config.DataConfig, mapper *labels.Mapper, logger *zap.Logger) *Cleaner {
	return &Cleaner{
		labelColumn: cfg.LabelColumn,
		textColumn:  cfg.TextColumn,
		dropColumns: cfg.DropColumns,
		mapper:      mapper,
		logger:      logger,
	}
}

// Clean drops the unused columns, renames label and text columns and maps
// every label to its binary class
func (c *Cleaner) Clean(t *Table) (core.Corpus, error) {
	if t == nil || len(t.Header) == 0 {
		return nil, fmt.Errorf("%w: table has no columns", ErrMissingColumn)
	}

	dropped, err := t.Drop(c.dropColumns...)
	if err != nil {
		return nil, fmt.Errorf("failed to drop columns: %w", err)
	}
	renamed, err := dropped.Rename(map[string]string{
		c.labelColumn: ClassColumn,
		c.textColumn:  TextColumn,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to rename columns: %w", err)
	}

	classIdx := renamed.ColumnIndex(ClassColumn)
	textIdx := renamed.ColumnIndex(TextColumn)

	corpus := make(core.Corpus, 0, renamed.NumRows())
	spam := 0
	for r, row := range renamed.Rows {
		class, err := c.mapper.Class(row[classIdx])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", renamed.rowName(r), err)
		}
		if class == core.ClassSpam {
			spam++
		}
		corpus = append(corpus, core.Message{Text: row[textIdx], Class: class})
	}

	c.logger.Info("Cleaned data",
		zap.Int("messages", len(corpus)),
		zap.Int("ham", len(corpus)-spam),
		zap.Int("spam", spam))
	return corpus, nil
}

package factory

import (
	"fmt"

	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/text"
	"github.com/mikey/spam-bench/internal/utils"
	"go.uber.org/zap"
)

// TextProcessorFactory creates the raw text sanitizer and the message normalizer
type TextProcessorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewTextProcessorFactory creates a new TextProcessorFactory
func NewTextProcessorFactory(cfg *config.Config, logger *zap.Logger) *TextProcessorFactory {
	return &TextProcessorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateTextProcessor creates a new TextProcessor
func (f *TextProcessorFactory) CreateTextProcessor() *utils.TextProcessor {
	return utils.NewTextProcessor(f.cfg.GetData().MaxTextLength, f.logger)
}

// CreateNormalizer builds the stopword set, stemmer and optional lemmatizer
// once and injects them into a normalizer
func (f *TextProcessorFactory) CreateNormalizer() (*text.Normalizer, error) {
	textCfg := f.cfg.GetText()

	stopwords, err := text.NewStopwords(textCfg.Language, textCfg.StopwordsFile, textCfg.ExtraStopwords)
	if err != nil {
		return nil, fmt.Errorf("failed to load stopwords: %w", err)
	}

	stemmer, err := text.NewStemmer(textCfg.Stemmer)
	if err != nil {
		return nil, err
	}

	var lemmatizer text.Lemmatizer
	if textCfg.Lemmatize {
		lemmatizer, err = text.NewEnglishLemmatizer()
		if err != nil {
			return nil, fmt.Errorf("failed to load lemmatizer: %w", err)
		}
	}

	f.logger.Debug("Created normalizer",
		zap.String("language", textCfg.Language),
		zap.String("stemmer", textCfg.Stemmer),
		zap.Bool("lemmatize", textCfg.Lemmatize))
	return text.NewNormalizer(stopwords, stemmer, lemmatizer, f.logger), nil
}

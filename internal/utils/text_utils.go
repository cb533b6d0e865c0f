package utils

import (
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"
)

// TextProcessor cleans raw message cells before they enter the corpus
type TextProcessor struct {
	maxSize int
	logger  *zap.Logger
}

// NewTextProcessor creates a new TextProcessor. maxSize <= 0 disables truncation
func NewTextProcessor(maxSize int, logger *zap.Logger) *TextProcessor {
	return &TextProcessor{
		maxSize: maxSize,
		logger:  logger,
	}
}

// TruncateText truncates text to at most maxSize bytes on a rune boundary
func (tp *TextProcessor) TruncateText(text string) string {
	if tp.maxSize <= 0 || len(text) <= tp.maxSize {
		return text
	}

	truncated := text[:tp.maxSize]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}

	tp.logger.Debug("Text truncated",
		zap.Int("original_size", len(text)),
		zap.Int("truncated_size", len(truncated)),
		zap.Int("max_size", tp.maxSize))

	return truncated
}

// SanitizeUTF8 drops invalid UTF-8 bytes
func (tp *TextProcessor) SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}

	sanitized := strings.ToValidUTF8(text, "")

	tp.logger.Debug("Text sanitized",
		zap.Int("original_size", len(text)),
		zap.Int("sanitized_size", len(sanitized)))

	return sanitized
}

// ProcessText sanitizes and truncates text in one operation
func (tp *TextProcessor) ProcessText(text string) string {
	return tp.TruncateText(tp.SanitizeUTF8(text))
}

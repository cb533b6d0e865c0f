package labels

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mikey/spam-bench/internal/core"
	"go.uber.org/zap"
)

// ErrUnknownLabel is returned for a label outside the ham/spam pair
var ErrUnknownLabel = errors.New("unknown class label")

// Mapper maps textual class labels onto binary classes
type Mapper struct {
	classes map[string]int
	logger  *zap.Logger
}

// NewMapper creates a mapper for the given ham and spam label spellings
func NewMapper(hamLabel, spamLabel string, logger *zap.Logger) *Mapper {
	// Normalize labels (lowercase)
	classes := map[string]int{
		normalize(hamLabel):  core.ClassHam,
		normalize(spamLabel): core.ClassSpam,
	}

	if logger != nil {
		logger.Debug("Initialized label mapper",
			zap.String("ham", normalize(hamLabel)),
			zap.String("spam", normalize(spamLabel)))
	}

	return &Mapper{
		classes: classes,
		logger:  logger,
	}
}

func normalize(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// Class returns the binary class of a label
func (m *Mapper) Class(label string) (int, error) {
	class, ok := m.classes[normalize(label)]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return class, nil
}

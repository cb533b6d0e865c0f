package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/utils"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

var (
	// ErrEmptyTable is returned for an input without a header row
	ErrEmptyTable = errors.New("input has no header row")
	// ErrMalformedRow is returned for a row wider than the header
	ErrMalformedRow = errors.New("row has more fields than the header")
)

// Index column modes
const (
	IndexAuto   = "auto"
	IndexAlways = "true"
	IndexNever  = "false"
)

// Loader reads a delimited corpus file into a Table
type Loader struct {
	delimiter   rune
	encoding    string
	indexColumn string
	processor   *utils.TextProcessor
	logger      *zap.Logger
}

// NewLoader creates a new loader
func NewLoader(cfg config.DataConfig, processor *utils.TextProcessor, logger *zap.Logger) *Loader {
	return &Loader{
		delimiter:   cfg.Delimiter,
		encoding:    cfg.Encoding,
		indexColumn: strings.ToLower(cfg.IndexColumn),
		processor:   processor,
		logger:      logger,
	}
}

// Load reads the file at path
func (l *Loader) Load(path string) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer file.Close()

	table, err := l.Read(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	l.logger.Info("Loaded data",
		zap.String("path", path),
		zap.Int("rows", table.NumRows()),
		zap.Strings("columns", table.Header))
	return table, nil
}

// Read parses a delimited stream. The first row is the header; blank header
// cells are named "Unnamed: <position>"
func (l *Loader) Read(r io.Reader) (*Table, error) {
	dec, err := decoder(l.encoding)
	if err != nil {
		return nil, err
	}
	if dec != nil {
		r = dec.Reader(r)
	}

	reader := csv.NewReader(r)
	if l.delimiter != 0 {
		reader.Comma = l.delimiter
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse delimited data: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrEmptyTable
	}

	header := make([]string, len(records[0]))
	for i, cell := range records[0] {
		if i == 0 {
			cell = strings.TrimPrefix(cell, "\ufeff")
		}
		cell = strings.TrimSpace(cell)
		if cell == "" {
			cell = fmt.Sprintf("Unnamed: %d", i)
		}
		header[i] = cell
	}

	useIndex := l.indexColumn == IndexAlways ||
		(l.indexColumn == IndexAuto && strings.TrimSpace(strings.TrimPrefix(records[0][0], "\ufeff")) == "")

	table := &Table{}
	start := 0
	if useIndex {
		table.IndexName = header[0]
		start = 1
	}
	table.Header = header[start:]

	for n, record := range records[1:] {
		if len(record) > len(header) {
			return nil, fmt.Errorf("%w: line %d has %d fields, header has %d",
				ErrMalformedRow, n+2, len(record), len(header))
		}
		row := make([]string, len(header))
		for i, cell := range record {
			row[i] = l.processor.ProcessText(cell)
		}
		if useIndex {
			table.Index = append(table.Index, row[0])
		}
		table.Rows = append(table.Rows, row[start:])
	}

	return table, nil
}

// decoder returns the decoder for a named charset, nil for UTF-8
func decoder(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported data encoding: %s", name)
	}
}

// Package report renders ranked results and run history for the terminal
package report

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/mikey/spam-bench/internal/core"
	"go.uber.org/zap"
)

// Output formats
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Console writes results as an aligned table or as JSON
type Console struct {
	out      io.Writer
	format   string
	detailed bool
	logger   *zap.Logger
}

// NewConsole creates a new console reporter
func NewConsole(out io.Writer, format string, detailed bool, logger *zap.Logger) (*Console, error) {
	switch format {
	case FormatTable, FormatJSON:
	case "":
		format = FormatTable
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
	return &Console{
		out:      out,
		format:   format,
		detailed: detailed,
		logger:   logger,
	}, nil
}

type jsonResult struct {
	Model       string   `json:"model"`
	Score       float64  `json:"score"`
	Precision   *float64 `json:"precision,omitempty"`
	Recall      *float64 `json:"recall,omitempty"`
	F1          *float64 `json:"f1,omitempty"`
	FitDuration string   `json:"fit_duration,omitempty"`
}

type jsonRun struct {
	ID        string       `json:"id"`
	StartedAt time.Time    `json:"started_at"`
	Dataset   string       `json:"dataset"`
	Results   []jsonResult `json:"results"`
}

// Report writes the ranked results table
func (c *Console) Report(results core.Results) error {
	c.logger.Debug("Reporting results", zap.Int("rows", len(results)), zap.String("format", c.format))

	if c.format == FormatJSON {
		return c.writeJSON(c.jsonResults(results))
	}

	header := "Model\tScore"
	if c.detailed {
		header += "\tPrecision\tRecall\tF1\tFit time"
	}
	lines := []string{header}
	for _, r := range results {
		line := fmt.Sprintf("%s\t%.6f", r.Model, r.Score)
		if c.detailed {
			line += fmt.Sprintf("\t%.4f\t%.4f\t%.4f\t%v", r.Precision, r.Recall, r.F1, r.FitDuration.Round(time.Millisecond))
		}
		lines = append(lines, line)
	}
	return c.writeTable(lines)
}

// ReportRuns writes a run history listing, one line per run with its best model
func (c *Console) ReportRuns(runs []*core.Run) error {
	if c.format == FormatJSON {
		out := make([]jsonRun, 0, len(runs))
		for _, run := range runs {
			out = append(out, jsonRun{
				ID:        run.ID,
				StartedAt: run.StartedAt,
				Dataset:   run.Dataset,
				Results:   c.jsonResults(run.Results),
			})
		}
		return c.writeJSON(out)
	}

	lines := []string{"Run\tStarted\tDataset\tBest model\tScore"}
	for _, run := range runs {
		best, score := "-", "-"
		if len(run.Results) > 0 {
			best = run.Results[0].Model
			score = fmt.Sprintf("%.6f", run.Results[0].Score)
		}
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s\t%s\t%s",
			run.ID, run.StartedAt.Format(time.RFC3339), run.Dataset, best, score))
	}
	return c.writeTable(lines)
}

func (c *Console) jsonResults(results core.Results) []jsonResult {
	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		jr := jsonResult{Model: r.Model, Score: r.Score}
		if c.detailed {
			precision, recall, f1 := r.Precision, r.Recall, r.F1
			jr.Precision, jr.Recall, jr.F1 = &precision, &recall, &f1
			jr.FitDuration = r.FitDuration.String()
		}
		out = append(out, jr)
	}
	return out
}

func (c *Console) writeJSON(v interface{}) error {
	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// writeTable aligns tab separated lines and highlights the header line
func (c *Console) writeTable(lines []string) error {
	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	for _, line := range lines {
		fmt.Fprintln(tw, line)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}

	header := color.New(color.Bold)
	scanner := bufio.NewScanner(&buf)
	first := true
	for scanner.Scan() {
		var err error
		if first {
			_, err = header.Fprintln(c.out, scanner.Text())
			first = false
		} else {
			_, err = fmt.Fprintln(c.out, scanner.Text())
		}
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return scanner.Err()
}

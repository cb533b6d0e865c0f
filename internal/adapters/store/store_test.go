package store

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mikey/spam-bench/internal/core"
	"go.uber.org/zap/zaptest"
)

func sampleRun(dataset string, startedAt time.Time) *core.Run {
	return &core.Run{
		StartedAt: startedAt,
		Dataset:   dataset,
		Results: core.Results{
			{Model: "LinearSVC", Score: 0.98, Precision: 0.97, Recall: 0.9, F1: 0.93, FitDuration: 1500 * time.Millisecond},
			{Model: "MultinomialNB", Score: 0.95, Precision: 0.8, Recall: 0.95, F1: 0.87, FitDuration: 20 * time.Millisecond},
		},
	}
}

func exerciseStore(t *testing.T, s core.ResultStore) {
	t.Helper()
	ctx := context.Background()
	base := time.Unix(1700000000, 0)

	first := sampleRun("first.csv", base)
	second := sampleRun("second.csv", base.Add(time.Hour))
	second.Results = second.Results[:1]

	for _, run := range []*core.Run{first, second} {
		if err := s.SaveRun(ctx, run); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
		if _, err := uuid.Parse(run.ID); err != nil {
			t.Errorf("run ID %q is not a UUID: %v", run.ID, err)
		}
	}

	runs, err := s.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}
	if runs[0].Dataset != "second.csv" || runs[1].Dataset != "first.csv" {
		t.Errorf("runs are not newest first: %s, %s", runs[0].Dataset, runs[1].Dataset)
	}
	if !runs[1].StartedAt.Equal(base) {
		t.Errorf("started at = %v, want %v", runs[1].StartedAt, base)
	}
	if !reflect.DeepEqual(runs[1].Results, first.Results) {
		t.Errorf("results = %+v, want %+v", runs[1].Results, first.Results)
	}
	if runs[0].ID != second.ID {
		t.Errorf("id = %s, want %s", runs[0].ID, second.ID)
	}

	limited, err := s.ListRuns(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 || limited[0].ID != second.ID {
		t.Errorf("limited = %+v, want only the newest run", limited)
	}

	if err := s.SaveRun(ctx, nil); !errors.Is(err, ErrNilRun) {
		t.Errorf("err = %v, want ErrNilRun", err)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore(zaptest.NewLogger(t))
	defer s.Close()
	exerciseStore(t, s)
}

func TestMemoryStoreCopiesRuns(t *testing.T) {
	s := NewMemoryStore(zaptest.NewLogger(t))
	run := sampleRun("data.csv", time.Now())
	if err := s.SaveRun(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	run.Results[0].Model = "changed"

	runs, err := s.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatal(err)
	}
	if runs[0].Results[0].Model != "LinearSVC" {
		t.Error("stored run must not alias the caller's results")
	}
}

func TestMemoryStoreHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore(zaptest.NewLogger(t))
	if err := s.SaveRun(ctx, sampleRun("x", time.Now())); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.db")
	s, err := NewSQLiteStore(path, 5*time.Second, zaptest.NewLogger(t))
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStoreReopens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bench.db")
	s, err := NewSQLiteStore(path, 5*time.Second, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	run := sampleRun("data.csv", time.Now())
	if err := s.SaveRun(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	s, err = NewSQLiteStore(path, 5*time.Second, zaptest.NewLogger(t))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	runs, err := s.ListRuns(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].ID != run.ID {
		t.Errorf("runs after reopening = %+v", runs)
	}
}

func TestDialectBind(t *testing.T) {
	query := "SELECT a FROM t WHERE b = ? AND c = ?"
	if got := sqliteDialect.bind(query); got != query {
		t.Errorf("sqlite bind = %q", got)
	}
	if got, want := postgresDialect.bind(query), "SELECT a FROM t WHERE b = $1 AND c = $2"; got != want {
		t.Errorf("postgres bind = %q, want %q", got, want)
	}
}

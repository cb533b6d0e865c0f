package factory

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/mikey/spam-bench/internal/adapters/store"
	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
	"go.uber.org/zap/zaptest"
)

func defaults() *config.Config {
	return config.NewFromViper(config.NewEmptyViper())
}

func TestClassifierNamesMatchModelNames(t *testing.T) {
	f := NewClassifierFactory(defaults(), zaptest.NewLogger(t))
	for _, name := range config.DefaultModels {
		clf, err := f.CreateClassifier(name)
		if err != nil {
			t.Fatalf("CreateClassifier(%q): %v", name, err)
		}
		if got := core.ModelName(clf); got != name {
			t.Errorf("ModelName = %q, want %q", got, name)
		}
	}
	if _, err := f.CreateClassifier("KNeighborsClassifier"); err == nil {
		t.Error("expected an error for an unknown classifier")
	}
}

func TestCreateClassifiersFollowsConfig(t *testing.T) {
	cfg := defaults()
	f := NewClassifierFactory(cfg, zaptest.NewLogger(t))

	roster, err := f.CreateClassifiers()
	if err != nil {
		t.Fatal(err)
	}
	if len(roster) != 6 {
		t.Errorf("default roster has %d classifiers, want 6", len(roster))
	}

	cfg.Set("models.enabled", []string{config.ModelLinearSVC, config.ModelMultinomialNB})
	roster, err = f.CreateClassifiers()
	if err != nil {
		t.Fatal(err)
	}
	if len(roster) != 2 || core.ModelName(roster[0]) != config.ModelLinearSVC {
		t.Errorf("roster = %v", roster)
	}

	cfg.Set("models.enabled", []string{"Perceptron"})
	if _, err := f.CreateClassifiers(); err == nil {
		t.Error("expected an error for an unknown roster entry")
	}
	cfg.Set("models.enabled", []string{})
	if _, err := f.CreateClassifiers(); err == nil {
		t.Error("expected an error for an empty roster")
	}

	if f.CreateEstimatorBuilder() == nil {
		t.Error("nil estimator builder")
	}
}

func TestCreateResultStore(t *testing.T) {
	cfg := defaults()
	f := NewStoreFactory(cfg, zaptest.NewLogger(t))

	s, err := f.CreateResultStore()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(*store.MemoryStore); !ok {
		t.Errorf("default store = %T, want *store.MemoryStore", s)
	}

	cfg.Set("store.type", "sqlite")
	cfg.Set("store.sqlite_path", filepath.Join(t.TempDir(), "nested", "bench.db"))
	s, err = f.CreateResultStore()
	if err != nil {
		t.Fatalf("sqlite store: %v", err)
	}
	if _, ok := s.(*store.SQLStore); !ok {
		t.Errorf("store = %T, want *store.SQLStore", s)
	}
	s.Close()

	cfg.Set("store.type", "redis")
	if _, err := f.CreateResultStore(); err == nil {
		t.Error("expected an error for an unsupported store")
	}

	cfg.Set("store.type", "memory")
	cfg.Set("store.timeout", "soon")
	if _, err := f.CreateResultStore(); err == nil {
		t.Error("expected an error for an invalid timeout")
	}
}

func TestCreateReporter(t *testing.T) {
	cfg := defaults()
	cfg.Set("report.format", "json")
	var buf bytes.Buffer
	r, err := NewReportFactory(cfg, zaptest.NewLogger(t)).CreateReporter(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if err := r.Report(core.Results{{Model: "LinearSVC", Score: 1}}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"model": "LinearSVC"`)) {
		t.Errorf("output = %s", buf.String())
	}

	cfg.Set("report.format", "yaml")
	if _, err := NewReportFactory(cfg, zaptest.NewLogger(t)).CreateReporter(&buf); err == nil {
		t.Error("expected an error for an unsupported format")
	}
}

func TestCreateNormalizer(t *testing.T) {
	cfg := defaults()
	cfg.Set("text.extra_stopwords", []string{"pizza"})
	n, err := NewTextProcessorFactory(cfg, zaptest.NewLogger(t)).CreateNormalizer()
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Normalize("The guitars and PIZZA!"); got != "guitar" {
		t.Errorf("Normalize = %q, want %q", got, "guitar")
	}

	cfg.Set("text.lemmatize", true)
	n, err = NewTextProcessorFactory(cfg, zaptest.NewLogger(t)).CreateNormalizer()
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Normalize("having guitars"); got != "guitar" {
		t.Errorf("lemmatized Normalize = %q, want %q", got, "guitar")
	}

	cfg.Set("text.language", "english")
	if _, err := NewTextProcessorFactory(cfg, zaptest.NewLogger(t)).CreateNormalizer(); err == nil {
		t.Error("expected an error for a language without a stopword list")
	}
	cfg.Set("text.language", "en")

	cfg.Set("text.stemmer", "snowball")
	if _, err := NewTextProcessorFactory(cfg, zaptest.NewLogger(t)).CreateNormalizer(); err == nil {
		t.Error("expected an error for an unknown stemmer")
	}
}

func TestDatasetFactory(t *testing.T) {
	cfg := defaults()
	logger := zaptest.NewLogger(t)
	tp := NewTextProcessorFactory(cfg, logger).CreateTextProcessor()
	f := NewDatasetFactory(cfg, logger, tp)

	table, err := f.CreateLoader().Read(bytes.NewBufferString("v1,v2,,,\nham,hello there,,,\nspam,win now,,,\n"))
	if err != nil {
		t.Fatal(err)
	}
	corpus, err := f.CreateCleaner().Clean(table)
	if err != nil {
		t.Fatal(err)
	}
	if len(corpus) != 2 || corpus[1].Class != core.ClassSpam {
		t.Errorf("corpus = %+v", corpus)
	}
	if f.CreateSplitter() == nil {
		t.Error("nil splitter")
	}
}

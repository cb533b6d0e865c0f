package pipeline

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/mikey/spam-bench/internal/adapters/classifier"
	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
	"github.com/mikey/spam-bench/internal/features"
	"go.uber.org/zap/zaptest"
)

var (
	vectorizerCfg = config.VectorizerConfig{MinDF: 2, NGramMin: 1, NGramMax: 2}
	smoteCfg      = config.SMOTEConfig{Enabled: true, KNeighbors: 5, Seed: 42}
)

func corpus() ([]string, []int) {
	var docs []string
	var labels []int
	for i := 0; i < 12; i++ {
		docs = append(docs, fmt.Sprintf("lunch meeting today room%d", i%3))
		labels = append(labels, core.ClassHam)
	}
	for i := 0; i < 4; i++ {
		docs = append(docs, fmt.Sprintf("free prize winner claim code%d", i%2))
		labels = append(labels, core.ClassSpam)
	}
	return docs, labels
}

// recorder remembers the rows it was trained on
type recorder struct {
	rows   int
	labels []int
}

func (r *recorder) Fit(X *features.Matrix, y []int) error {
	r.rows = X.NumRows()
	r.labels = append([]int(nil), y...)
	return nil
}

func (r *recorder) Predict(X *features.Matrix) ([]int, error) {
	return make([]int, X.NumRows()), nil
}

func TestPipelineClassifiesText(t *testing.T) {
	docs, labels := corpus()
	for _, clf := range []core.Classifier{
		classifier.NewMultinomialNB(config.MultinomialNBConfig{Alpha: 1}),
		classifier.NewLogisticRegression(config.LogisticRegressionConfig{C: 1, MaxIter: 300, LearningRate: 1}),
	} {
		p := New(vectorizerCfg, smoteCfg, clf, zaptest.NewLogger(t))
		if err := p.Fit(context.Background(), docs, labels); err != nil {
			t.Fatalf("%s: Fit: %v", core.ModelName(clf), err)
		}
		got, err := p.Predict(context.Background(), []string{"claim your free prize", "meeting room today", "unseen words only"})
		if err != nil {
			t.Fatal(err)
		}
		want := []int{core.ClassSpam, core.ClassHam}
		if !reflect.DeepEqual(got[:2], want) {
			t.Errorf("%s: predictions = %v, want %v first", core.ModelName(clf), got, want)
		}

		train, err := p.Predict(context.Background(), docs)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(train, labels) {
			t.Errorf("%s: training predictions = %v, want %v", core.ModelName(clf), train, labels)
		}
	}
}

func TestPipelineOversamplesTrainingRows(t *testing.T) {
	docs, labels := corpus()
	rec := &recorder{}
	p := New(vectorizerCfg, smoteCfg, rec, zaptest.NewLogger(t))
	if err := p.Fit(context.Background(), docs, labels); err != nil {
		t.Fatal(err)
	}
	if rec.rows != 24 {
		t.Errorf("classifier saw %d rows, want 24", rec.rows)
	}
	var spam int
	for _, l := range rec.labels {
		spam += l
	}
	if spam != 12 {
		t.Errorf("classifier saw %d spam rows, want 12", spam)
	}

	rec = &recorder{}
	p = New(vectorizerCfg, config.SMOTEConfig{}, rec, nil)
	if err := p.Fit(context.Background(), docs, labels); err != nil {
		t.Fatal(err)
	}
	if rec.rows != len(docs) {
		t.Errorf("with oversampling disabled the classifier saw %d rows, want %d", rec.rows, len(docs))
	}
}

func TestPipelineSpamTerms(t *testing.T) {
	docs, labels := corpus()
	p := New(vectorizerCfg, smoteCfg, classifier.NewLogisticRegression(config.LogisticRegressionConfig{C: 1, MaxIter: 300, LearningRate: 1}), zaptest.NewLogger(t))
	if got := p.SpamTerms(3); got != nil {
		t.Errorf("unfitted pipeline gave terms %v", got)
	}
	if err := p.Fit(context.Background(), docs, labels); err != nil {
		t.Fatal(err)
	}

	terms := p.SpamTerms(3)
	if len(terms) != 3 {
		t.Fatalf("terms = %v, want 3", terms)
	}
	for _, term := range terms {
		if !strings.Contains("free prize winner claim code0 code1", term) && !strings.Contains("claim code1", term) {
			t.Errorf("term %q does not come from the spam messages", term)
		}
	}

	rec := New(vectorizerCfg, smoteCfg, &recorder{}, nil)
	if err := rec.Fit(context.Background(), docs, labels); err != nil {
		t.Fatal(err)
	}
	if got := rec.SpamTerms(3); got != nil {
		t.Errorf("a classifier without weights gave terms %v", got)
	}
}

func TestPipelineVocabulary(t *testing.T) {
	docs, labels := corpus()
	p := New(vectorizerCfg, smoteCfg, &recorder{}, nil)
	if p.Vocabulary() != nil {
		t.Error("unfitted pipeline must have no vocabulary")
	}
	if err := p.Fit(context.Background(), docs, labels); err != nil {
		t.Fatal(err)
	}
	vocab := p.Vocabulary()
	for _, term := range []string{"free prize", "lunch", "room0"} {
		found := false
		for _, v := range vocab {
			found = found || v == term
		}
		if !found {
			t.Errorf("vocabulary %v lacks %q", vocab, term)
		}
	}
}

func TestPipelineErrors(t *testing.T) {
	docs, labels := corpus()
	ctx := context.Background()

	p := New(vectorizerCfg, smoteCfg, &recorder{}, nil)
	if _, err := p.Predict(ctx, docs); !errors.Is(err, core.ErrNotFitted) {
		t.Errorf("Predict before Fit: err = %v, want ErrNotFitted", err)
	}
	if err := p.Fit(ctx, docs, labels[:2]); !errors.Is(err, core.ErrLengthMismatch) {
		t.Errorf("err = %v, want ErrLengthMismatch", err)
	}

	strict := New(config.VectorizerConfig{MinDF: 50, NGramMin: 1, NGramMax: 2}, smoteCfg, &recorder{}, nil)
	if err := strict.Fit(ctx, docs, labels); !errors.Is(err, features.ErrEmptyVocabulary) {
		t.Errorf("err = %v, want ErrEmptyVocabulary", err)
	}

	if err := p.Fit(ctx, docs, make([]int, len(docs))); !errors.Is(err, core.ErrSingleClass) {
		t.Errorf("err = %v, want ErrSingleClass", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := p.Fit(cancelled, docs, labels); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}

	if _, err := Builder(vectorizerCfg, smoteCfg, nil)(nil); err == nil {
		t.Error("expected an error for a nil classifier")
	}
}

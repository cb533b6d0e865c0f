package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefaultsMatchReferenceRun(t *testing.T) {
	cfg := NewFromViper(NewEmptyViper())

	data := cfg.GetData()
	if data.LabelColumn != "v1" || data.TextColumn != "v2" {
		t.Errorf("label/text columns = %q/%q, want v1/v2", data.LabelColumn, data.TextColumn)
	}
	wantDrop := []string{"Unnamed: 2", "Unnamed: 3", "Unnamed: 4"}
	if !reflect.DeepEqual(data.DropColumns, wantDrop) {
		t.Errorf("drop columns = %v, want %v", data.DropColumns, wantDrop)
	}
	if data.Delimiter != ',' {
		t.Errorf("delimiter = %q, want ','", data.Delimiter)
	}

	split := cfg.GetSplit()
	if split.TestSize != 0.2 || split.Seed != 42 || split.Stratify {
		t.Errorf("unexpected split defaults: %+v", split)
	}

	vec := cfg.GetVectorizer()
	if vec.MinDF != 5 || vec.NGramMin != 1 || vec.NGramMax != 2 {
		t.Errorf("unexpected vectorizer defaults: %+v", vec)
	}

	models := cfg.GetModels()
	if !reflect.DeepEqual(models.Enabled, DefaultModels) {
		t.Errorf("enabled models = %v, want %v", models.Enabled, DefaultModels)
	}
	if models.RandomForest.NEstimators != 50 {
		t.Errorf("random forest estimators = %d, want 50", models.RandomForest.NEstimators)
	}
	gb := models.GradientBoosting
	if gb.NEstimators != 150 || gb.MaxDepth != 6 || gb.MinSamplesSplit != 100 || gb.RandomState != 100 {
		t.Errorf("unexpected gradient boosting defaults: %+v", gb)
	}

	if got := cfg.GetStore().Type; got != "memory" {
		t.Errorf("store type = %q, want memory", got)
	}
}

func TestNewWithFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")
	content := []byte("data:\n  path: corpus.csv\n  delimiter: \";\"\nsplit:\n  stratify: true\nmodels:\n  enabled: [MultinomialNB]\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewWithFile(path)
	if err != nil {
		t.Fatalf("NewWithFile: %v", err)
	}
	if got := cfg.GetData().Path; got != "corpus.csv" {
		t.Errorf("data.path = %q, want corpus.csv", got)
	}
	if got := cfg.GetData().Delimiter; got != ';' {
		t.Errorf("delimiter = %q, want ';'", got)
	}
	if !cfg.GetSplit().Stratify {
		t.Error("split.stratify should be true")
	}
	if got := cfg.GetModels().Enabled; !reflect.DeepEqual(got, []string{"MultinomialNB"}) {
		t.Errorf("models.enabled = %v", got)
	}
	// untouched keys keep their defaults
	if got := cfg.GetVectorizer().MinDF; got != 5 {
		t.Errorf("vectorizer.min_df = %d, want 5", got)
	}
}

func TestNewWithFileMissing(t *testing.T) {
	if _, err := NewWithFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}

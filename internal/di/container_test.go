package di

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mikey/spam-bench/internal/adapters/store"
	"github.com/mikey/spam-bench/internal/bench"
	"github.com/mikey/spam-bench/internal/config"
	"github.com/mikey/spam-bench/internal/core"
)

func TestBuildContainerResolvesRunner(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	content := "store:\n  type: sqlite\n  sqlite_path: " + filepath.Join(dir, "bench.db") + "\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	flags := &Flags{ConfigFile: cfgFile, DataPath: "corpus.csv"}
	container, err := BuildContainer(flags)
	if err != nil {
		t.Fatalf("BuildContainer: %v", err)
	}

	err = container.Invoke(func(cfg *config.Config, runner *bench.Runner) {
		if got := cfg.GetData().Path; got != "corpus.csv" {
			t.Errorf("data path = %q, want the -data override", got)
		}
		if got := cfg.GetStore().Type; got != "sqlite" {
			t.Errorf("store type = %q, want sqlite", got)
		}
		if runner == nil {
			t.Error("nil runner")
		}
	})
	if err != nil {
		t.Fatalf("Invoke: %v", err)
	}
}

func TestBuildContainerFallsBackWhenStoreIsUnreachable(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yaml")
	content := "store:\n  type: mysql\n  mysql_dsn: u:p@tcp(127.0.0.1:1)/x\n  timeout: 2s\n"
	if err := os.WriteFile(cfgFile, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	container, err := BuildContainer(&Flags{ConfigFile: cfgFile})
	if err != nil {
		t.Fatalf("BuildContainer: %v", err)
	}
	err = container.Invoke(func(runner *bench.Runner, resultStore core.ResultStore) {
		if runner == nil {
			t.Error("nil runner")
		}
		if _, ok := resultStore.(*store.MemoryStore); !ok {
			t.Errorf("result store = %T, want the in-memory fallback", resultStore)
		}
	})
	if err != nil {
		t.Fatalf("an unreachable store must not stop the benchmark: %v", err)
	}
}

func TestBuildContainerReportsBadConfig(t *testing.T) {
	container, err := BuildContainer(&Flags{ConfigFile: filepath.Join(t.TempDir(), "missing.yaml")})
	if err != nil {
		t.Fatal(err)
	}
	if err := container.Invoke(func(*bench.Runner) {}); err == nil {
		t.Error("expected an error for a missing config file")
	}
}

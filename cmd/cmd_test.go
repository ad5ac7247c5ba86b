package cmd

import (
	"path/filepath"
	"testing"

	"github.com/theirongolddev/studioplan/internal/config"
	"github.com/theirongolddev/studioplan/internal/store"
)

func execute(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("studioplan %v: %v", args, err)
	}
}

func TestTrainersAddAndRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.toml")

	execute(t, "trainers", "add", "--name", "Ayşe", "--lessons", "32", "-f", path, "-q")

	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(cfg.Trainers) != 2 {
		t.Fatalf("got %d trainers, want default + added", len(cfg.Trainers))
	}
	added := cfg.Trainers[1]
	if added.Name != "Ayşe" || added.MonthlyLessons != 32 || added.Type != defaultTrainerType {
		t.Errorf("added trainer = %+v", added)
	}
	if len(added.ID) != 36 {
		t.Errorf("expected a UUID id, got %q", added.ID)
	}

	execute(t, "trainers", "remove", "trainer-1", "-f", path, "-q")

	cfg, err = config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(cfg.Trainers) != 1 || cfg.Trainers[0].ID != added.ID {
		t.Errorf("roster after remove = %+v", cfg.Trainers)
	}
}

func TestProjectExport(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "runs.db")

	execute(t, "project", "-f", filepath.Join(dir, "missing.toml"), "-n", "14", "-s", "3", "--export", db, "-q")

	report, err := store.Open(db)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = report.Close() }()

	runs, err := report.ListRuns()
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Months != 14 || runs[0].StartMonth != 3 || runs[0].Mode != store.ModeBatch {
		t.Errorf("run = %+v", runs[0])
	}
}

func TestTaxRejectsBadAmount(t *testing.T) {
	rootCmd.SetArgs([]string{"tax", "lots", "-q"})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected an error for a non-numeric profit")
	}
}

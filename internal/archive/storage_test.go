package archive

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLocalArchiveRoundtrip(t *testing.T) {
	a := NewLocalArchive(t.TempDir())
	data := []byte(`{"run_id":"run-1"}`)

	if err := a.PutReport(context.Background(), "2026-03-02", "run-1", data); err != nil {
		t.Fatalf("PutReport: %v", err)
	}

	got, err := a.GetReport(context.Background(), "2026-03-02", "run-1")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("GetReport = %s, want %s", got, data)
	}
}

func TestLocalArchivePathLayout(t *testing.T) {
	dir := t.TempDir()
	a := NewLocalArchive(dir)

	if err := a.PutReport(context.Background(), "2026-03-02", "run-1", []byte("{}")); err != nil {
		t.Fatalf("PutReport: %v", err)
	}

	want := filepath.Join(dir, "reports", "2026-03-02", "run-1.json")
	if _, err := os.Stat(want); err != nil {
		t.Errorf("report not at %s: %v", want, err)
	}
}

func TestLocalArchiveGetMissing(t *testing.T) {
	a := NewLocalArchive(t.TempDir())
	if _, err := a.GetReport(context.Background(), "2026-03-02", "nope"); err == nil {
		t.Error("missing report should fail")
	}
}

func TestLocalArchiveOverwrite(t *testing.T) {
	a := NewLocalArchive(t.TempDir())
	ctx := context.Background()

	if err := a.PutReport(ctx, "2026-03-02", "run-1", []byte("first")); err != nil {
		t.Fatalf("PutReport: %v", err)
	}
	if err := a.PutReport(ctx, "2026-03-02", "run-1", []byte("second")); err != nil {
		t.Fatalf("PutReport: %v", err)
	}

	got, err := a.GetReport(ctx, "2026-03-02", "run-1")
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if string(got) != "second" {
		t.Errorf("GetReport = %s, want second", got)
	}
}

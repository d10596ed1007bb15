package config

import (
	"compress/gzip"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFastq(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	content := "@read1\nACGTACGT\n+\nIIIIIIII\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write fastq: %v", err)
	}
	return path
}

func TestResolveMissingInput(t *testing.T) {
	var missErr *MissingInputError

	_, err := Resolve(Options{ReadsPath: "", Model: ModelSup, RequestedCores: 4}, 8)
	if !errors.As(err, &missErr) {
		t.Errorf("empty reads path: expected MissingInputError, got %v", err)
	}

	_, err = Resolve(Options{ReadsPath: "/no/such/reads.fastq", Model: ModelSup, RequestedCores: 4}, 8)
	if !errors.As(err, &missErr) {
		t.Errorf("nonexistent reads path: expected MissingInputError, got %v", err)
	}
}

func TestResolveInvalidModel(t *testing.T) {
	reads := writeFastq(t, t.TempDir(), "sample.fastq")

	for _, model := range []string{"", "bogus", "SUP", "hac "} {
		_, err := Resolve(Options{ReadsPath: reads, Model: model, RequestedCores: 4}, 8)
		var modelErr *InvalidModelError
		if !errors.As(err, &modelErr) {
			t.Errorf("model %q: expected InvalidModelError, got %v", model, err)
		}
	}
}

func TestResolveCoreFallback(t *testing.T) {
	reads := writeFastq(t, t.TempDir(), "sample.fastq")

	// Requesting more than the host has falls back to the fixed default,
	// it is not clamped to the host maximum.
	cfg, err := Resolve(Options{ReadsPath: reads, Model: ModelHac, RequestedCores: 16, QualityThreshold: 10, MinLength: 1000}, 8)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.EffectiveCores != DefaultCores {
		t.Errorf("expected fallback to %d cores, got %d", DefaultCores, cfg.EffectiveCores)
	}

	cfg, err = Resolve(Options{ReadsPath: reads, Model: ModelHac, RequestedCores: 6, QualityThreshold: 10, MinLength: 1000}, 8)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.EffectiveCores != 6 {
		t.Errorf("expected 6 cores, got %d", cfg.EffectiveCores)
	}
}

func TestResolveAssemblyMode(t *testing.T) {
	reads := writeFastq(t, t.TempDir(), "sample.fastq")

	tests := []struct {
		model string
		mode  string
	}{
		{ModelSup, ModeHighQuality},
		{ModelHac, ModeRaw},
		{ModelFast, ModeRaw},
	}
	for _, tc := range tests {
		cfg, err := Resolve(Options{ReadsPath: reads, Model: tc.model, RequestedCores: 4}, 8)
		if err != nil {
			t.Fatalf("Resolve failed for model %s: %v", tc.model, err)
		}
		if cfg.AssemblyMode != tc.mode {
			t.Errorf("model %s: expected mode %s, got %s", tc.model, tc.mode, cfg.AssemblyMode)
		}
	}
}

func TestResolveRejectsBadNumbers(t *testing.T) {
	reads := writeFastq(t, t.TempDir(), "sample.fastq")

	if _, err := Resolve(Options{ReadsPath: reads, Model: ModelHac, RequestedCores: 0}, 8); err == nil {
		t.Error("expected error for zero cores")
	}
	if _, err := Resolve(Options{ReadsPath: reads, Model: ModelHac, RequestedCores: 4, QualityThreshold: -1}, 8); err == nil {
		t.Error("expected error for negative quality threshold")
	}
	if _, err := Resolve(Options{ReadsPath: reads, Model: ModelHac, RequestedCores: 4, MinLength: -5}, 8); err == nil {
		t.Error("expected error for negative minimum length")
	}
}

func TestSampleName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"sample.fastq.gz", "sample"},
		{"sample.fastq", "sample"},
		{"strainA.fq.gz", "strainA"},
		{"reads/strainA.fq", "reads/strainA"},
		{"/data/run3/barcode01.fastq.gz", "/data/run3/barcode01"},
		{"oddname", "oddname"},
	}
	for _, tc := range tests {
		if got := SampleName(tc.path); got != tc.want {
			t.Errorf("SampleName(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestResolveDecompressesGzInput(t *testing.T) {
	dir := t.TempDir()
	gzPath := filepath.Join(dir, "sample.fastq.gz")
	content := "@read1\nACGTACGT\n+\nIIIIIIII\n"

	gzFile, err := os.Create(gzPath)
	if err != nil {
		t.Fatalf("failed to create gz file: %v", err)
	}
	gzWriter := gzip.NewWriter(gzFile)
	if _, err := gzWriter.Write([]byte(content)); err != nil {
		t.Fatalf("failed to write gz content: %v", err)
	}
	gzWriter.Close()
	gzFile.Close()

	cfg, err := Resolve(Options{ReadsPath: gzPath, Model: ModelSup, RequestedCores: 4}, 8)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}

	wantReads := filepath.Join(dir, "sample.fastq")
	if cfg.ReadsPath != wantReads {
		t.Errorf("expected reads path %s, got %s", wantReads, cfg.ReadsPath)
	}
	if cfg.SampleName != filepath.Join(dir, "sample") {
		t.Errorf("expected sample name %s, got %s", filepath.Join(dir, "sample"), cfg.SampleName)
	}

	got, err := os.ReadFile(wantReads)
	if err != nil {
		t.Fatalf("decompressed reads not written: %v", err)
	}
	if string(got) != content {
		t.Errorf("decompressed content mismatch: %q", string(got))
	}
}

func TestResolveUncompressedInputUntouched(t *testing.T) {
	dir := t.TempDir()
	reads := writeFastq(t, dir, "sample.fastq")

	cfg, err := Resolve(Options{ReadsPath: reads, Model: ModelFast, RequestedCores: 4}, 8)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.ReadsPath != reads {
		t.Errorf("expected reads path %s, got %s", reads, cfg.ReadsPath)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("failed to read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected no extra files, found %d entries", len(entries))
	}
}

func TestResolveKeepsExistingDecompressedFile(t *testing.T) {
	dir := t.TempDir()
	gzPath := filepath.Join(dir, "sample.fastq.gz")
	if err := os.WriteFile(gzPath, []byte("not really gzip"), 0644); err != nil {
		t.Fatalf("failed to write gz file: %v", err)
	}
	existing := writeFastq(t, dir, "sample.fastq")

	// The bogus gz never gets opened because the uncompressed file is there.
	cfg, err := Resolve(Options{ReadsPath: gzPath, Model: ModelSup, RequestedCores: 4}, 8)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if cfg.ReadsPath != existing {
		t.Errorf("expected reads path %s, got %s", existing, cfg.ReadsPath)
	}
}

package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestReadConfig(t *testing.T) {
	content := `# assembly run for strain A
reads: /data/strainA.fastq.gz
model: sup
quality: 12
min_length: 500
threads: 8

species: ignored key
broken line without separator
`
	path := filepath.Join(t.TempDir(), "run.cfg")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := ReadConfig(path)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if cfg.Reads != "/data/strainA.fastq.gz" {
		t.Errorf("expected reads path, got %q", cfg.Reads)
	}
	if cfg.Model != "sup" {
		t.Errorf("expected model sup, got %q", cfg.Model)
	}
	if cfg.Quality != 12 {
		t.Errorf("expected quality 12, got %d", cfg.Quality)
	}
	if cfg.MinLength != 500 {
		t.Errorf("expected min_length 500, got %d", cfg.MinLength)
	}
	if cfg.Threads != 8 {
		t.Errorf("expected threads 8, got %d", cfg.Threads)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	if _, err := ReadConfig("/no/such/run.cfg"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestRunBashCmdVerbose(t *testing.T) {
	if err := RunBashCmdVerbose("true"); err != nil {
		t.Errorf("expected success, got %v", err)
	}
	if err := RunBashCmdVerbose("false"); err == nil {
		t.Error("expected error for failing command")
	}
}

func TestBashCmdOutput(t *testing.T) {
	out, err := BashCmdOutput("echo '  medaka 1.11.3  '")
	if err != nil {
		t.Fatalf("BashCmdOutput failed: %v", err)
	}
	if out != "medaka 1.11.3" {
		t.Errorf("expected trimmed output, got %q", out)
	}

	if _, err := BashCmdOutput("exit 7"); err == nil {
		t.Error("expected error for failing command")
	}
}

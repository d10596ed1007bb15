package stats

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fourReads is a tiny FASTQ with read lengths 100, 200, 300 and 400, all at
// quality 40 ('I' in Sanger encoding).
func fourReads() string {
	var b strings.Builder
	names := []string{"read1", "read2", "read3", "read4"}
	for i, n := range []int{100, 200, 300, 400} {
		b.WriteString("@" + names[i] + "\n")
		b.WriteString(strings.Repeat("A", n) + "\n")
		b.WriteString("+\n")
		b.WriteString(strings.Repeat("I", n) + "\n")
	}
	return b.String()
}

func TestCollect(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.fastq")
	if err := os.WriteFile(path, []byte(fourReads()), 0644); err != nil {
		t.Fatalf("failed to write fastq: %v", err)
	}

	lengths, quals, err := Collect(path)
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}
	if len(lengths) != 4 || len(quals) != 4 {
		t.Fatalf("expected 4 reads, got %d lengths and %d quals", len(lengths), len(quals))
	}

	want := []float64{100, 200, 300, 400}
	for i, l := range lengths {
		if l != want[i] {
			t.Errorf("read %d: expected length %.0f, got %.0f", i, want[i], l)
		}
		if quals[i] != 40 {
			t.Errorf("read %d: expected mean quality 40, got %.1f", i, quals[i])
		}
	}
}

func TestCollectGzipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reads.fastq.gz")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create gz file: %v", err)
	}
	gzWriter := gzip.NewWriter(f)
	if _, err := gzWriter.Write([]byte(fourReads())); err != nil {
		t.Fatalf("failed to write gz content: %v", err)
	}
	gzWriter.Close()
	f.Close()

	lengths, _, err := Collect(path)
	if err != nil {
		t.Fatalf("Collect failed on gzipped input: %v", err)
	}
	if len(lengths) != 4 {
		t.Errorf("expected 4 reads, got %d", len(lengths))
	}
}

func TestCompute(t *testing.T) {
	lengths := []float64{100, 200, 300, 400}
	quals := []float64{40, 40, 40, 40}

	s, err := Compute(lengths, quals)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	if s.Reads != 4 {
		t.Errorf("expected 4 reads, got %d", s.Reads)
	}
	if s.TotalBases != 1000 {
		t.Errorf("expected 1000 total bases, got %d", s.TotalBases)
	}
	if s.MeanLength != 250 {
		t.Errorf("expected mean length 250, got %.1f", s.MeanLength)
	}
	if s.N50 != 300 {
		t.Errorf("expected N50 300, got %d", s.N50)
	}
	if s.MaxLength != 400 {
		t.Errorf("expected max length 400, got %d", s.MaxLength)
	}
	if s.MeanQuality != 40 {
		t.Errorf("expected mean quality 40, got %.1f", s.MeanQuality)
	}
}

func TestComputeEmpty(t *testing.T) {
	if _, err := Compute(nil, nil); err == nil {
		t.Error("expected error for empty read set")
	}
}

func TestPlotLengthHist(t *testing.T) {
	out := filepath.Join(t.TempDir(), "lengths.html")

	lengths := make([]float64, 500)
	for i := range lengths {
		lengths[i] = float64(500 + i*7)
	}

	if err := PlotLengthHist(lengths, "test reads", out); err != nil {
		t.Fatalf("PlotLengthHist failed: %v", err)
	}

	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("histogram file not written: %v", err)
	}
	if !strings.Contains(string(content), "echarts") {
		t.Error("histogram file does not look like an echarts page")
	}
}

package stats

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fastq"
	"github.com/biogo/biogo/seq/linear"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// ReadSetStats are the QC metrics for one FASTQ read set.
type ReadSetStats struct {
	Reads        int
	TotalBases   int
	MeanLength   float64
	MedianLength float64
	N50          int
	MaxLength    int
	Length10     float64
	Length90     float64
	MeanQuality  float64
}

// Collect scans a FASTQ file (plain or gzipped) and returns per-read lengths
// and mean qualities.
func Collect(fastqPath string) ([]float64, []float64, error) {
	f, err := os.Open(fastqPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open FASTQ file %s: %w", fastqPath, err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(fastqPath, ".gz") {
		gzReader, err := gzip.NewReader(f)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer gzReader.Close()
		reader = gzReader
	}

	r := fastq.NewReader(reader, linear.NewQSeq("", nil, alphabet.DNAredundant, alphabet.Sanger))
	sc := seqio.NewScanner(r)

	var lengths []float64
	var quals []float64
	for sc.Next() {
		seq := sc.Seq().(*linear.QSeq)
		lengths = append(lengths, float64(seq.Len()))

		var qSum float64
		for _, ql := range seq.Seq {
			qSum += float64(ql.Q)
		}
		if seq.Len() > 0 {
			quals = append(quals, qSum/float64(seq.Len()))
		} else {
			quals = append(quals, 0)
		}
	}
	if err := sc.Error(); err != nil {
		return nil, nil, fmt.Errorf("error scanning FASTQ file %s: %w", fastqPath, err)
	}

	return lengths, quals, nil
}

// Compute derives the read-set metrics from per-read lengths and qualities.
func Compute(lengths, quals []float64) (ReadSetStats, error) {
	if len(lengths) == 0 {
		return ReadSetStats{}, fmt.Errorf("no reads found")
	}

	sorted := append([]float64(nil), lengths...)
	sort.Float64s(sorted)

	s := ReadSetStats{Reads: len(lengths)}

	var g errgroup.Group

	g.Go(func() error {
		var total float64
		for _, l := range sorted {
			total += l
		}
		s.TotalBases = int(total)
		s.MaxLength = int(sorted[len(sorted)-1])
		s.N50 = n50(sorted, total)
		return nil
	})

	g.Go(func() error {
		s.MeanLength = stat.Mean(sorted, nil)
		s.MedianLength = stat.Quantile(0.5, stat.Empirical, sorted, nil)
		s.Length10 = stat.Quantile(0.1, stat.Empirical, sorted, nil)
		s.Length90 = stat.Quantile(0.9, stat.Empirical, sorted, nil)
		return nil
	})

	g.Go(func() error {
		s.MeanQuality = stat.Mean(quals, nil)
		return nil
	})

	if err := g.Wait(); err != nil {
		return ReadSetStats{}, err
	}

	return s, nil
}

// n50 takes read lengths sorted ascending and the total base count, and
// returns the length of the read at which the longer half of the bases is
// reached.
func n50(sorted []float64, total float64) int {
	var cum float64
	for i := len(sorted) - 1; i >= 0; i-- {
		cum += sorted[i]
		if cum >= total/2 {
			return int(sorted[i])
		}
	}
	return 0
}

func (s ReadSetStats) Print(label string) {
	fmt.Printf("Read set: %s\n", label)
	fmt.Printf("  Reads:         %d\n", s.Reads)
	fmt.Printf("  Total bases:   %d\n", s.TotalBases)
	fmt.Printf("  Mean length:   %.1f\n", s.MeanLength)
	fmt.Printf("  Median length: %.1f\n", s.MedianLength)
	fmt.Printf("  N50:           %d\n", s.N50)
	fmt.Printf("  Max length:    %d\n", s.MaxLength)
	fmt.Printf("  Length p10:    %.1f\n", s.Length10)
	fmt.Printf("  Length p90:    %.1f\n", s.Length90)
	fmt.Printf("  Mean quality:  %.1f\n", s.MeanQuality)
}

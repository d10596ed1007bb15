package summary

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	"github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// AssemblyStats holds contig-level numbers for a polished assembly.
type AssemblyStats struct {
	Contigs       int
	TotalLength   int
	LongestContig int
}

// Completeness is the checkm verdict for the polished assembly.
type Completeness struct {
	MarkerLineage string
	Completeness  float64
	Contamination float64
}

// AssemblyFastaStats reads a FASTA file and counts contigs and bases.
func AssemblyFastaStats(fastaPath string) (AssemblyStats, error) {
	f, err := os.Open(fastaPath)
	if err != nil {
		return AssemblyStats{}, fmt.Errorf("failed to open FASTA file %s: %w", fastaPath, err)
	}
	defer f.Close()

	r := fasta.NewReader(f, linear.NewSeq("", nil, alphabet.DNAredundant))
	sc := seqio.NewScanner(r)

	var stats AssemblyStats
	for sc.Next() {
		seq := sc.Seq().(*linear.Seq)
		stats.Contigs++
		stats.TotalLength += seq.Len()
		if seq.Len() > stats.LongestContig {
			stats.LongestContig = seq.Len()
		}
	}
	if err := sc.Error(); err != nil {
		return AssemblyStats{}, fmt.Errorf("error scanning FASTA file %s: %w", fastaPath, err)
	}

	return stats, nil
}

// FeatureCounts loads a prokka feature table and counts features per type
// (CDS, tRNA, rRNA, ...).
func FeatureCounts(tsvPath string) (map[string]int, error) {
	f, err := os.Open(tsvPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open feature table %s: %w", tsvPath, err)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f, dataframe.WithDelimiter('\t'))
	if df.Err != nil {
		return nil, fmt.Errorf("failed to read feature table %s: %w", tsvPath, df.Err)
	}

	seen := make(map[string]bool)
	for _, ftype := range df.Col("ftype").Records() {
		seen[ftype] = true
	}

	counts := make(map[string]int)
	for ftype := range seen {
		filtered := df.Filter(dataframe.F{Colname: "ftype", Comparator: series.Eq, Comparando: ftype})
		if filtered.Err != nil {
			return nil, filtered.Err
		}
		counts[ftype] = filtered.Nrow()
	}

	return counts, nil
}

// FindFeatureTable locates the prokka .tsv in an annotation directory.
func FindFeatureTable(prokkaDir string) (string, error) {
	entries, err := os.ReadDir(prokkaDir)
	if err != nil {
		return "", fmt.Errorf("failed to read annotation directory %s: %w", prokkaDir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".tsv") {
			return filepath.Join(prokkaDir, entry.Name()), nil
		}
	}
	return "", fmt.Errorf("no .tsv feature table found in %s", prokkaDir)
}

// ParseCheckm pulls marker lineage, completeness and contamination out of a
// checkm lineage_wf summary table. The table is whitespace-aligned: the data
// row follows the dashed separator lines.
func ParseCheckm(summaryPath string) (Completeness, error) {
	f, err := os.Open(summaryPath)
	if err != nil {
		return Completeness{}, fmt.Errorf("failed to open checkm summary %s: %w", summaryPath, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "-") || strings.HasPrefix(line, "Bin Id") || strings.HasPrefix(line, "[") {
			continue
		}

		fields := strings.Fields(line)
		// Bin Id, Marker lineage (name + UID), #genomes ... Completeness,
		// Contamination, Strain heterogeneity
		if len(fields) < 5 {
			continue
		}

		completeness, cErr := strconv.ParseFloat(fields[len(fields)-3], 64)
		contamination, tErr := strconv.ParseFloat(fields[len(fields)-2], 64)
		if cErr != nil || tErr != nil {
			continue
		}

		return Completeness{
			MarkerLineage: fields[1] + " " + fields[2],
			Completeness:  completeness,
			Contamination: contamination,
		}, nil
	}
	if err := scanner.Err(); err != nil {
		return Completeness{}, fmt.Errorf("error scanning checkm summary %s: %w", summaryPath, err)
	}

	return Completeness{}, fmt.Errorf("no result row found in checkm summary %s", summaryPath)
}

// Print writes the whole post-run report for a working directory, skipping
// sections whose artifacts are not there yet.
func Print(workdir string) error {
	consensus := filepath.Join(workdir, "medaka", "consensus.fasta")
	prokkaDir := filepath.Join(workdir, "prokka_out")
	checkmSummary := filepath.Join(workdir, "checkm", "summary", "summary.txt")

	reported := false

	if _, err := os.Stat(consensus); err == nil {
		stats, aErr := AssemblyFastaStats(consensus)
		if aErr != nil {
			return aErr
		}
		fmt.Printf("Polished assembly (%s):\n", consensus)
		fmt.Printf("  Contigs:        %d\n", stats.Contigs)
		fmt.Printf("  Total length:   %d bp\n", stats.TotalLength)
		fmt.Printf("  Longest contig: %d bp\n\n", stats.LongestContig)
		reported = true
	}

	if _, err := os.Stat(prokkaDir); err == nil {
		tsvPath, tErr := FindFeatureTable(prokkaDir)
		if tErr == nil {
			counts, fErr := FeatureCounts(tsvPath)
			if fErr != nil {
				return fErr
			}
			var ftypes []string
			for ftype := range counts {
				ftypes = append(ftypes, ftype)
			}
			sort.Strings(ftypes)
			fmt.Printf("Annotation (%s):\n", tsvPath)
			for _, ftype := range ftypes {
				fmt.Printf("  %-10s %d\n", ftype, counts[ftype])
			}
			fmt.Printf("\n")
			reported = true
		}
	}

	if _, err := os.Stat(checkmSummary); err == nil {
		verdict, cErr := ParseCheckm(checkmSummary)
		if cErr != nil {
			return cErr
		}
		fmt.Printf("Completeness (%s):\n", checkmSummary)
		fmt.Printf("  Marker lineage: %s\n", verdict.MarkerLineage)
		fmt.Printf("  Completeness:   %.2f%%\n", verdict.Completeness)
		fmt.Printf("  Contamination:  %.2f%%\n", verdict.Contamination)
		reported = true
	}

	if !reported {
		return fmt.Errorf("no pipeline artifacts found in %s, run the pipeline first", workdir)
	}
	return nil
}

package config

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// DefaultCores is what the run falls back to when more cores are requested
// than the host has. The request is not clamped to the host maximum.
const DefaultCores = 4

const (
	ModelFast = "fast"
	ModelHac  = "hac"
	ModelSup  = "sup"
)

const (
	ModeHighQuality = "high-quality"
	ModeRaw         = "raw"
)

// Options holds the raw run parameters as given on the command line or in a
// run file, before any validation.
type Options struct {
	ReadsPath        string
	QualityThreshold int
	MinLength        int
	RequestedCores   int
	Model            string
}

// RunConfig is the validated run configuration. It is handed by value to
// every downstream component and never mutated.
type RunConfig struct {
	ReadsPath        string
	QualityThreshold int
	MinLength        int
	RequestedCores   int
	Model            string
	SampleName       string
}

// EffectiveConfig adds the settings derived from a RunConfig: the core count
// actually passed to external tools and the assembly mode picked from the
// basecalling model.
type EffectiveConfig struct {
	RunConfig
	EffectiveCores int
	AssemblyMode   string
	MedakaModel    string
}

type MissingInputError struct {
	Path string
}

func (e *MissingInputError) Error() string {
	return fmt.Sprintf("reads file %q does not exist", e.Path)
}

type InvalidModelError struct {
	Model string
}

func (e *InvalidModelError) Error() string {
	if e.Model == "" {
		return "basecalling model not specified, must be one of: fast, hac, sup"
	}
	return fmt.Sprintf("basecalling model %q not recognised, must be one of: fast, hac, sup", e.Model)
}

// medaka model strings per basecalling tier.
var medakaModels = map[string]string{
	ModelFast: "r941_min_fast_g303",
	ModelHac:  "r941_min_hac_g507",
	ModelSup:  "r941_min_sup_g507",
}

// Resolve validates the raw options and derives the effective settings.
// hostCores is detected once at the CLI layer with runtime.NumCPU and passed
// in explicitly. If the reads file is gzip-compressed it is decompressed to a
// sibling file as a one-time preparation step, and the returned config points
// at the uncompressed file.
func Resolve(opts Options, hostCores int) (EffectiveConfig, error) {
	if opts.ReadsPath == "" {
		return EffectiveConfig{}, &MissingInputError{Path: opts.ReadsPath}
	}

	if _, err := os.Stat(opts.ReadsPath); err != nil {
		return EffectiveConfig{}, &MissingInputError{Path: opts.ReadsPath}
	}

	if _, ok := medakaModels[opts.Model]; !ok {
		return EffectiveConfig{}, &InvalidModelError{Model: opts.Model}
	}

	if opts.QualityThreshold < 0 {
		return EffectiveConfig{}, fmt.Errorf("quality threshold must be >= 0, got %d", opts.QualityThreshold)
	}
	if opts.MinLength < 0 {
		return EffectiveConfig{}, fmt.Errorf("minimum read length must be >= 0, got %d", opts.MinLength)
	}
	if opts.RequestedCores < 1 {
		return EffectiveConfig{}, fmt.Errorf("core count must be >= 1, got %d", opts.RequestedCores)
	}

	readsPath := opts.ReadsPath
	if strings.HasSuffix(readsPath, ".gz") {
		uncompressed, err := decompressReads(readsPath)
		if err != nil {
			return EffectiveConfig{}, err
		}
		readsPath = uncompressed
	}

	cfg := RunConfig{
		ReadsPath:        readsPath,
		QualityThreshold: opts.QualityThreshold,
		MinLength:        opts.MinLength,
		RequestedCores:   opts.RequestedCores,
		Model:            opts.Model,
		SampleName:       SampleName(opts.ReadsPath),
	}

	effectiveCores := cfg.RequestedCores
	if effectiveCores > hostCores {
		effectiveCores = DefaultCores
	}

	mode := ModeRaw
	if cfg.Model == ModelSup {
		mode = ModeHighQuality
	}

	return EffectiveConfig{
		RunConfig:      cfg,
		EffectiveCores: effectiveCores,
		AssemblyMode:   mode,
		MedakaModel:    medakaModels[cfg.Model],
	}, nil
}

// SampleName strips the compression suffix and one sequence format suffix
// from a reads path: sample.fastq.gz -> sample, sample.fastq -> sample.
func SampleName(readsPath string) string {
	name := strings.TrimSuffix(readsPath, ".gz")
	for _, ext := range []string{".fastq", ".fq", ".fasta", ".fa"} {
		if strings.HasSuffix(name, ext) {
			return strings.TrimSuffix(name, ext)
		}
	}
	return name
}

// decompressReads writes the gunzipped contents of gzPath to the sibling
// path without the .gz suffix and returns that path. If the uncompressed
// file is already there the existing file is kept.
func decompressReads(gzPath string) (string, error) {
	outPath := strings.TrimSuffix(gzPath, ".gz")
	if _, err := os.Stat(outPath); err == nil {
		fmt.Printf("Uncompressed reads found at %s, skipping decompression ...\n", outPath)
		return outPath, nil
	}

	fmt.Printf("Decompressing %s to %s ...\n", gzPath, outPath)
	gzFile, err := os.Open(gzPath)
	if err != nil {
		return "", fmt.Errorf("failed to open compressed reads %s: %w", gzPath, err)
	}
	defer gzFile.Close()

	gzReader, err := gzip.NewReader(gzFile)
	if err != nil {
		return "", fmt.Errorf("failed to create gzip reader for %s: %w", gzPath, err)
	}
	defer gzReader.Close()

	outFile, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, gzReader); err != nil {
		return "", fmt.Errorf("failed to decompress %s: %w", gzPath, err)
	}

	return outPath, nil
}

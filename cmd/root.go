/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/dnyali/bactasm/config"
	"github.com/dnyali/bactasm/pipeline"
	"github.com/dnyali/bactasm/utils"
	"github.com/spf13/cobra"
)

const version = "1.1.0"

// rootCmd runs the whole assembly pipeline. Each stage is skipped when its
// output artifact already exists, so an interrupted run can simply be
// re-invoked and resumes after the last completed stage.
var rootCmd = &cobra.Command{
	Use:     "bactasm",
	Version: version,
	Short:   "A resumable long-read bacterial genome assembly pipeline",
	Long: `Runs the following pipeline on a long-read FASTQ file:

1.	Read filtering: (NanoFilt)
2.	Assembly: (flye)
3.	Polishing: (medaka)
4.	Annotation: (prokka)
5.	Annotation summary: (ropro)
6.	Completeness check: (checkm, in its own conda environment)

A stage whose output artifact is already on disk is skipped, so re-invoking
the pipeline in the same directory resumes after the last completed stage.
Only one run per working directory at a time; concurrent runs against the
same directory are not supported.`,
	Run: func(cmd *cobra.Command, args []string) {
		start := time.Now()

		if cmd.Flags().NFlag() == 0 {
			cmd.Help()
			os.Exit(1)
		}

		readsFile, iErr := cmd.Flags().GetString("input")
		if iErr != nil {
			log.Fatalf("Error getting input flag: %v", iErr)
		}

		model, bErr := cmd.Flags().GetString("model")
		if bErr != nil {
			log.Fatalf("Error getting model flag: %v", bErr)
		}

		quality, qErr := cmd.Flags().GetInt("quality")
		if qErr != nil {
			log.Fatalf("Error getting quality flag: %v", qErr)
		}

		minLength, lErr := cmd.Flags().GetInt("min-length")
		if lErr != nil {
			log.Fatalf("Error getting min-length flag: %v", lErr)
		}

		cores, cErr := cmd.Flags().GetInt("cores")
		if cErr != nil {
			log.Fatalf("Error getting cores flag: %v", cErr)
		}

		configFile, fErr := cmd.Flags().GetString("config")
		if fErr != nil {
			log.Fatalf("Error getting config flag: %v", fErr)
		}

		opts := config.Options{
			ReadsPath:        readsFile,
			QualityThreshold: quality,
			MinLength:        minLength,
			RequestedCores:   cores,
			Model:            model,
		}

		if configFile != "" {
			fmt.Printf("Reading run file %s ...\n", configFile)
			fileCfg, rErr := utils.ReadConfig(configFile)
			if rErr != nil {
				fmt.Printf("ERROR: could not read run file %s: %v\n", configFile, rErr)
				os.Exit(1)
			}
			opts = mergeConfig(opts, fileCfg, cmd)
		}

		hostCores := runtime.NumCPU()
		fmt.Printf("Available CPU cores: %d\n", hostCores)

		cfg, vErr := config.Resolve(opts, hostCores)
		if vErr != nil {
			fmt.Printf("ERROR: %v\n", vErr)
			pipeline.Report(pipeline.InvalidInput(), start)
			os.Exit(1)
		}

		fmt.Printf("Sample: %s\n", cfg.SampleName)
		fmt.Printf("Assembly mode: %s\n", cfg.AssemblyMode)
		fmt.Printf("Using %d cores\n\n", cfg.EffectiveCores)

		logger, logFile, logErr := pipeline.NewRunLogger(".")
		if logErr != nil {
			log.Fatalf("Error opening run log: %v", logErr)
		}
		defer logFile.Close()

		stages := pipeline.Stages(cfg, ".")
		run, runErr := pipeline.Run(stages, cfg, logger)
		pipeline.Report(run, start)
		if runErr != nil {
			fmt.Printf("ERROR: %v\n", runErr)
			os.Exit(1)
		}
	},
}

// mergeConfig fills in run-file values for flags the user did not set on the
// command line. Flags win over the run file.
func mergeConfig(opts config.Options, fileCfg utils.Config, cmd *cobra.Command) config.Options {
	if !cmd.Flags().Changed("input") && fileCfg.Reads != "" {
		opts.ReadsPath = fileCfg.Reads
	}
	if !cmd.Flags().Changed("model") && fileCfg.Model != "" {
		opts.Model = fileCfg.Model
	}
	if !cmd.Flags().Changed("quality") && fileCfg.Quality != 0 {
		opts.QualityThreshold = fileCfg.Quality
	}
	if !cmd.Flags().Changed("min-length") && fileCfg.MinLength != 0 {
		opts.MinLength = fileCfg.MinLength
	}
	if !cmd.Flags().Changed("cores") && fileCfg.Threads != 0 {
		opts.RequestedCores = fileCfg.Threads
	}
	return opts
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringP("input", "i", "", "path to long-read FASTQ file (plain or .gz)")
	rootCmd.Flags().StringP("model", "b", "", "basecalling model used for the reads: fast, hac or sup")
	rootCmd.Flags().IntP("quality", "q", 10, "minimum mean read quality to keep")
	rootCmd.Flags().IntP("min-length", "l", 1000, "minimum read length to keep")
	rootCmd.Flags().IntP("cores", "c", 4, "number of cores to pass to external tools")
	rootCmd.Flags().String("config", "", "path to run file with key: value parameters")
}

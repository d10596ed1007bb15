/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/dnyali/bactasm/stats"
	"github.com/spf13/cobra"
)

// statsCmd reports QC metrics for a read set, before or after filtering.
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Read-set QC metrics and a read-length histogram",
	Long: `Scans a FASTQ file (plain or gzipped) and reports read count, total
bases, mean/median/N50 read length, length quantiles and mean read quality.
Optionally renders a read-length histogram to an HTML file.`,
	Run: func(cmd *cobra.Command, args []string) {
		fastqFile, iErr := cmd.Flags().GetString("input")
		if iErr != nil {
			log.Fatalf("Error getting input flag: %v", iErr)
		}

		plotFile, oErr := cmd.Flags().GetString("plot")
		if oErr != nil {
			log.Fatalf("Error getting plot flag: %v", oErr)
		}

		if fastqFile == "" {
			fmt.Println("Please provide a FASTQ file with flag -i")
			os.Exit(1)
		}
		if _, err := os.Stat(fastqFile); err != nil {
			fmt.Printf("FASTQ file %s is not a valid file path\n", fastqFile)
			os.Exit(1)
		}

		fmt.Printf("Scanning %s ...\n\n", fastqFile)
		lengths, quals, cErr := stats.Collect(fastqFile)
		if cErr != nil {
			fmt.Printf("ERROR: %v\n", cErr)
			os.Exit(1)
		}

		readStats, sErr := stats.Compute(lengths, quals)
		if sErr != nil {
			fmt.Printf("ERROR: %v\n", sErr)
			os.Exit(1)
		}
		readStats.Print(fastqFile)

		if plotFile != "" {
			if err := stats.PlotLengthHist(lengths, fastqFile, plotFile); err != nil {
				fmt.Printf("ERROR: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("\nRead-length histogram saved at: %s\n", plotFile)
		}
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringP("input", "i", "", "path to FASTQ file (plain or .gz)")
	statsCmd.Flags().StringP("plot", "p", "", "write a read-length histogram to this HTML file")
}

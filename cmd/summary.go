/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/dnyali/bactasm/summary"
	"github.com/spf13/cobra"
)

// summaryCmd prints a report over the artifacts a pipeline run left behind.
var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Report on the artifacts of a completed (or partial) run",
	Long: `Reads the artifacts in a working directory and reports contig
statistics for the polished assembly, feature counts from the prokka
annotation and the checkm completeness/contamination verdict. Sections whose
artifacts are not on disk yet are skipped.`,
	Run: func(cmd *cobra.Command, args []string) {
		workdir, dErr := cmd.Flags().GetString("dir")
		if dErr != nil {
			log.Fatalf("Error getting dir flag: %v", dErr)
		}

		info, sErr := os.Stat(workdir)
		if sErr != nil || !info.IsDir() {
			fmt.Printf("Working directory %s is not a valid directory\n", workdir)
			os.Exit(1)
		}

		if err := summary.Print(workdir); err != nil {
			fmt.Printf("ERROR: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(summaryCmd)

	summaryCmd.Flags().StringP("dir", "d", ".", "working directory of the pipeline run")
}

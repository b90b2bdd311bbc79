// Package main provides the entry point for the job matcher CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_matcher",
	Short: "Resume-driven job search and ranking",
	Long:  "Job Matcher extracts a candidate profile from a resume, scrapes job listings from configured sites, scores each listing's relevance with an LLM, and exports a ranked spreadsheet report.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

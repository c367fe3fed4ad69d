// Package main implements the resumate CLI, a rule-based resume rewriter that
// tailors bullets to a job description and scores the result for ATS keyword fit.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resumate",
	Short: "Rule-based ATS resume rewriter",
	Long: `resumate rewrites a resume into "Solved X by Y, resulting in Z" bullets tailored to a job
description, keeps metric density and vocabulary in check, and estimates an ATS score.`,
	SilenceUsage: true,
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

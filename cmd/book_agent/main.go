// Package main provides the entry point for the Orastria book generator.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "book_agent",
	Short: "Orastria AI Book Generator",
	Long:  "Orastria generates personalized astrology books from quiz answers: natal chart readings, numerology, compatibility and monthly forecasts, rendered and published to object storage.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

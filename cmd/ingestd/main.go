// ingestd is the RemoteHireHub job-ingestion service: scheduled and manually
// triggered scrapers that normalise third-party job feeds into Postgres.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ingestd",
	Short: "RemoteHireHub job-ingestion service",
	Long:  "ingestd pulls job postings from RemoteOK, Remotive and We Work Remotely, normalises them into the canonical job schema and stores new postings in Postgres.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Command server runs the jobwise HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobwise",
	Short: "JobWise job application tracker API",
	Long:  "JobWise tracks job applications per user and serves dashboards and admin analytics over HTTP.",
	RunE:  runServe,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "corporate-site",
	Short: "Corporate site API server",
	Long: `Corporate site API server. Serves the contact form endpoint that verifies
the Turnstile challenge, notifies the team over a webhook and sends a
confirmation email to the submitter.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, checkConfigCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

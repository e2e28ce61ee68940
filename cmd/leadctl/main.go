// Command leadctl works with bulk lead files outside the server: it previews
// how a file parses, imports it into a running server and extracts research
// tags from text.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "leadctl",
	Short: "Lead file and research tag tooling for the outreach server",
	Long: `leadctl works with bulk lead files, one lead per line:

  Name, Company, CompanyURL, LinkedInURL, Email[, Channel]

Available commands:
  parse  - Parse a lead file and print the leads as JSON
  import - Send a lead file to a running server's batch
  tags   - Extract research tags from text`,
	SilenceUsage: true,
}

func init() {
	importCmd.Flags().StringVar(&importServer, "server", "http://localhost:8080", "Outreach server base URL")
	importCmd.Flags().StringVar(&importToken, "token", "", "Operator bearer token")
	importCmd.Flags().DurationVar(&importTimeout, "timeout", defaultImportTimeout, "Request timeout")

	rootCmd.AddCommand(parseCmd, importCmd, tagsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

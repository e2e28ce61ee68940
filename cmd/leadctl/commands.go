package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"outreach/internal/intake"
	"outreach/internal/models"
	"outreach/internal/research"

	"github.com/spf13/cobra"
)

const defaultImportTimeout = 30 * time.Second

var (
	importServer  string
	importToken   string
	importTimeout time.Duration
)

// parseCmd previews a lead file
var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Parse a lead file and print the leads as JSON",
	Long: `Parse a bulk lead file the same way the server does and print the
resulting leads. Lines without a name and company are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

// importCmd posts a lead file to /api/batch/bulk
var importCmd = &cobra.Command{
	Use:   "import FILE",
	Short: "Send a lead file to a running server's batch",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

// tagsCmd extracts research tags locally
var tagsCmd = &cobra.Command{
	Use:   "tags TEXT...",
	Short: "Extract research tags from text",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTags,
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read lead file: %w", err)
	}

	leads, err := intake.ParseBulk(string(data), time.Now())
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(leads)
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read lead file: %w", err)
	}

	body, err := json.Marshal(models.BulkRequest{Text: string(data)})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), importTimeout)
	defer cancel()

	url := strings.TrimRight(importServer, "/") + "/api/batch/bulk"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if importToken != "" {
		req.Header.Set("Authorization", "Bearer "+importToken)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("import request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var result models.APIResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return fmt.Errorf("unexpected response (status %d): %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}
	if !result.Success {
		return fmt.Errorf("import rejected (status %d): %s", resp.StatusCode, result.Error)
	}

	fmt.Fprintln(cmd.OutOrStdout(), result.Message)
	return nil
}

func runTags(cmd *cobra.Command, args []string) error {
	text := strings.Join(args, " ")
	tags := research.ExtractTags(text)
	if len(tags) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No tags found")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, tag := range tags {
		fmt.Fprintf(out, "%-16s %s\n", tag.Label, tag.Text)
	}
	return nil
}

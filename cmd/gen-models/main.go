// Command gen-models regenerates the SDK's typed data models from the
// Amigo OpenAPI document.
package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/amigo-ai/amigo-sdk-go/internal/genmodels"
)

const defaultSchemaPath = "/v1/openapi.json"

var (
	flagInput   string
	flagBaseURL string
	flagOutput  string
	flagPackage string
)

var rootCmd = &cobra.Command{
	Use:   "gen-models",
	Short: "Regenerate typed API models from the OpenAPI document",
	Long: `gen-models fetches the Amigo OpenAPI document (or reads it from a
local file) and rewrites the generated models file. The output is
deterministic, so a clean tree stays clean when the schema is unchanged.`,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&flagInput, "input", "", "read the OpenAPI document from a file (JSON or YAML) instead of fetching it")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "API base URL (default AMIGO_BASE_URL or https://api.amigo.ai)")
	rootCmd.Flags().StringVar(&flagOutput, "output", "models_gen.go", "output file")
	rootCmd.Flags().StringVar(&flagPackage, "package", "amigo", "package clause of the generated file")
}

func run(cmd *cobra.Command, _ []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	_ = godotenv.Load()

	data, source, err := loadDocument(cmd, logger)
	if err != nil {
		return err
	}

	doc, err := genmodels.ParseDocument(data)
	if err != nil {
		return err
	}
	logger.Info().
		Str("title", doc.Info.Title).
		Str("version", doc.Info.Version).
		Int("schemas", len(doc.Components.Schemas)).
		Msg("parsed OpenAPI document")

	out, err := genmodels.Generate(doc, genmodels.Options{Package: flagPackage, Source: source})
	if err != nil {
		return err
	}
	if err := os.WriteFile(flagOutput, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", flagOutput, err)
	}
	logger.Info().Str("output", flagOutput).Msg("models regenerated")
	return nil
}

func loadDocument(cmd *cobra.Command, logger zerolog.Logger) ([]byte, string, error) {
	if flagInput != "" {
		data, err := os.ReadFile(flagInput)
		if err != nil {
			return nil, "", fmt.Errorf("read %s: %w", flagInput, err)
		}
		return data, flagInput, nil
	}

	baseURL := flagBaseURL
	if baseURL == "" {
		baseURL = os.Getenv("AMIGO_BASE_URL")
	}
	if baseURL == "" {
		baseURL = "https://api.amigo.ai"
	}
	url := strings.TrimSuffix(baseURL, "/") + defaultSchemaPath
	logger.Info().Str("url", url).Msg("fetching OpenAPI document")

	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, url, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read schema body: %w", err)
	}
	return data, url, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Command check runs the repository quality gates: formatting, vet, and
// the test suite. It exits non-zero if any gate fails, mirroring CI.
package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	flagFix  bool
	flagFast bool
)

var rootCmd = &cobra.Command{
	Use:   "check",
	Short: "Run formatting, lint, and test gates",
	Long: `check runs gofmt, go vet, and go test in order and reports every
failing gate. With --fix, formatting issues are rewritten in place instead
of reported. With --fast, the test gate is skipped.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().BoolVar(&flagFix, "fix", false, "rewrite formatting issues instead of failing on them")
	rootCmd.Flags().BoolVar(&flagFast, "fast", false, "skip the test suite")
}

type gate struct {
	name string
	run  func(logger zerolog.Logger) error
}

func run(_ *cobra.Command, _ []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	gates := []gate{
		{name: "format", run: formatGate},
		{name: "vet", run: vetGate},
	}
	if !flagFast {
		gates = append(gates, gate{name: "test", run: testGate})
	}

	var failed []string
	for _, g := range gates {
		logger.Info().Str("gate", g.name).Msg("running")
		if err := g.run(logger); err != nil {
			logger.Error().Str("gate", g.name).Err(err).Msg("failed")
			failed = append(failed, g.name)
			continue
		}
		logger.Info().Str("gate", g.name).Msg("ok")
	}
	if len(failed) > 0 {
		return fmt.Errorf("gates failed: %s", strings.Join(failed, ", "))
	}
	return nil
}

func formatGate(logger zerolog.Logger) error {
	if flagFix {
		return streamCommand("gofmt", "-l", "-w", ".")
	}
	out, err := exec.Command("gofmt", "-l", ".").Output()
	if err != nil {
		return fmt.Errorf("gofmt: %w", err)
	}
	files := strings.TrimSpace(string(out))
	if files != "" {
		for _, f := range strings.Split(files, "\n") {
			logger.Error().Str("file", f).Msg("needs gofmt")
		}
		return fmt.Errorf("%d file(s) need formatting (run check --fix)", len(strings.Split(files, "\n")))
	}
	return nil
}

func vetGate(zerolog.Logger) error {
	return streamCommand("go", "vet", "./...")
}

func testGate(zerolog.Logger) error {
	return streamCommand("go", "test", "./...")
}

// streamCommand runs a command with output attached to the terminal, so
// vet diagnostics and test failures read exactly as they would by hand.
func streamCommand(name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

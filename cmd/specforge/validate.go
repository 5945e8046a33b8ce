package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/artpar/specforge/adapters/schemafile"
	"github.com/artpar/specforge/bootstrap"
	"github.com/artpar/specforge/core/translate"
	"github.com/artpar/specforge/domain/rawschema"
	"github.com/artpar/specforge/domain/summary"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Parse and translate all schemas without emitting anything",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := bootstrap.NewLogger(cfg.Logging)

		source := schemafile.New(cfg.Schemas.Dir, logger)
		raw, err := source.Load(cmd.Context())
		if err != nil {
			return err
		}

		failed := validateAll(raw, cfg.Generator.MaxDepth, os.Stdout)

		fmt.Printf("%d schemas, %d translate cleanly, %d failed\n", len(raw), len(raw)-failed, failed)
		if failed > 0 {
			return fmt.Errorf("%d schemas failed validation", failed)
		}
		return nil
	},
}

// validateAll translates every schema in name order so failure output is
// deterministic, printing one FAIL line per failing schema. Returns the
// failure count.
func validateAll(raw map[string]rawschema.Schema, maxDepth int, out io.Writer) int {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	builder := translate.NewBuilder(maxDepth)
	failed := 0
	for _, name := range names {
		if _, err := builder.Translate(raw[name]); err != nil {
			fmt.Fprintf(out, "  FAIL %s: %v\n", name, err)
			failed++
		}
	}
	return failed
}

func printFailures(report summary.Run) {
	for _, f := range report.TranslationFailures {
		fmt.Printf("  skipped %s: %s\n", f.Name, f.Reason)
	}
	for _, f := range report.EmissionFailures {
		fmt.Printf("  not emitted %s: %s\n", f.Name, f.Reason)
	}
	if n := len(report.Warnings); n > 0 {
		fmt.Printf("  %d warnings (see artifacts or logs)\n", n)
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/artpar/specforge/bootstrap"
)

var listRuns bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List emitted specs (or run history) from the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.Output.Catalog == "" {
			return fmt.Errorf("no catalog configured (output.catalog)")
		}

		a, err := bootstrap.New(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		if listRuns {
			runs, err := a.Catalog.ListRuns(cmd.Context(), 20)
			if err != nil {
				return err
			}
			for _, r := range runs {
				fmt.Printf("%4d  %s  attempted=%d emitted=%d failures=%d warnings=%d\n",
					r.ID, r.StartedAt.Format("2006-01-02 15:04:05"),
					r.SchemasAttempted, r.SpecsEmitted,
					r.TranslationFailures+r.EmissionFailures, r.Warnings)
			}
			return nil
		}

		entries, err := a.Catalog.ListSpecs(cmd.Context())
		if err != nil {
			return err
		}
		for _, e := range entries {
			marker := ""
			if e.Parent != "" {
				marker = "  (sub-asset of " + e.Parent + ")"
			}
			fmt.Printf("%-50s %s%s\n", e.Name, e.SchemaID, marker)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().BoolVar(&listRuns, "runs", false, "list run history instead of specs")
	rootCmd.AddCommand(listCmd)
}

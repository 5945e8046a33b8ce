package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/artpar/specforge/bootstrap"
)

var showCmd = &cobra.Command{
	Use:   "show <spec-name>",
	Short: "Print one emitted spec document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		a, err := bootstrap.New(cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		prior, err := a.Store.LoadPrior(cmd.Context())
		if err != nil {
			return err
		}

		s, ok := prior[args[0]]
		if !ok {
			return fmt.Errorf("spec %q not found in %s", args[0], cfg.Output.Dir)
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

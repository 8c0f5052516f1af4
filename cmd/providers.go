package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/lumenotes/nugget-cli/internal/provider"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "Show which LLM providers are configured",
	RunE: func(cmd *cobra.Command, args []string) error {
		primary, fallback, err := provider.New(cfg)

		out := struct {
			Primary  string `json:"primary,omitempty"`
			Fallback string `json:"fallback,omitempty"`
			Error    string `json:"error,omitempty"`
		}{}
		if err != nil {
			out.Error = err.Error()
		} else {
			out.Primary = primary.Name()
			if fallback != nil {
				out.Fallback = fallback.Name()
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	rootCmd.AddCommand(providersCmd)
}

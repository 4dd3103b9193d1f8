package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"univoice/internal/config"
)

type CheckResult struct {
	Valid    bool           `json:"valid"`
	Store    string         `json:"store"`
	Provider string         `json:"provider"`
	Problems []problemEntry `json:"problems,omitempty"`
}

type problemEntry struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// NewCheckConfigCommand resolves configuration the way the server does and
// reports every setting that would disable a feature.
func NewCheckConfigCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "check-config",
		Short: "Report settings that would disable features at startup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			result := CheckResult{Store: cfg.Store.Backend, Provider: cfg.LLM.Provider}
			for _, p := range cfg.Problems() {
				result.Problems = append(result.Problems, problemEntry{Field: p.Field, Reason: p.Reason})
			}
			result.Valid = len(result.Problems) == 0

			out := cmd.OutOrStdout()
			if rootOpts.Format == "json" {
				if err := writeJSON(out, result); err != nil {
					return err
				}
			} else {
				fmt.Fprintf(out, "store: %s\nprovider: %s\n", result.Store, result.Provider)
				for _, p := range result.Problems {
					fmt.Fprintf(out, "problem: %s: %s\n", p.Field, p.Reason)
				}
				if result.Valid {
					fmt.Fprintln(out, "ok")
				}
			}

			if !result.Valid {
				return fmt.Errorf("%d configuration problem(s)", len(result.Problems))
			}
			return nil
		},
	}
}

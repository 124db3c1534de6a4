package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"amdchat/pkg/ai"

	"github.com/spf13/cobra"
)

const modelCacheMaxAge = 24 * time.Hour

func newModelsCmd() *cobra.Command {
	var (
		freeOnly bool
		refresh  bool
	)

	cmd := &cobra.Command{
		Use:   "models",
		Short: "List models available on OpenRouter",
		Long: `List the OpenRouter model catalog. The list is cached for a day under
~/.amdchat; use --refresh to fetch it again.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPathFlag)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}

			cache, err := ai.LoadModels(cmd.Context(), cfg.OpenRouter.APIURL, ai.DefaultModelCachePath(), modelCacheMaxAge, refresh, nil)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				return err
			}

			models := cache.Models
			if freeOnly {
				models = ai.FilterFree(models)
			}
			return printModels(cmd.OutOrStdout(), models, cfg.OpenRouter.Model)
		},
	}

	cmd.Flags().BoolVar(&freeOnly, "free", false, "Only list zero-priced models")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Ignore the cached list")
	return cmd
}

// printModels writes one row per model, marking the configured one.
func printModels(out io.Writer, models []ai.ModelInfo, current string) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tID\tCONTEXT\tNAME")
	for _, m := range models {
		marker := ""
		if m.ID == current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", marker, m.ID, m.ContextLength, m.Name)
	}
	return w.Flush()
}

package cli

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or clear the engine's text-map cache",
	}
	cmd.AddCommand(newCacheClearCommand())
	return cmd
}

func newCacheClearCommand() *cobra.Command {
	var articleID string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear one or all cached text maps",
		Long:  "The engine's text-map cache lives in process memory, so this is only meaningful across a long-lived embedding of the library; a fresh CLI invocation's cache always starts empty. Exposed for parity/testing of the cache API from the shell.",
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, log, err := loadEngine()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if articleID != "" {
				eng.ClearCache(articleID)
				pterm.Success.Printfln("cleared cached text map for article %q", articleID)
				return nil
			}
			eng.ClearAllCache()
			pterm.Success.Println("cleared all cached text maps")
			return nil
		},
	}

	cmd.Flags().StringVar(&articleID, "article-id", "", "clear only this article's cached text map (default: clear all)")
	return cmd
}

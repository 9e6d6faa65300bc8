package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/readlark/htmlhl/internal/ingest"
	"github.com/spf13/cobra"
)

func newIngestMarkdownCommand() *cobra.Command {
	var mdPath string
	var showMeta bool

	cmd := &cobra.Command{
		Use:   "ingest-markdown",
		Short: "Render an article's Markdown source to HTML",
		Long:  "Renders Markdown (with GFM tables/strikethrough and MathJax spans) to the HTML apply expects; with --show-meta, any YAML front matter is printed to stderr first.",
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(mdPath)
			if err != nil {
				return fmt.Errorf("read markdown: %w", err)
			}

			res, err := ingest.IngestMarkdown(source)
			if err != nil {
				return fmt.Errorf("ingest markdown: %w", err)
			}

			if showMeta && len(res.Metadata) > 0 {
				bold := color.New(color.Bold)
				bold.Fprintln(os.Stderr, "front matter:")
				for k, v := range res.Metadata {
					fmt.Fprintf(os.Stderr, "  %s: %v\n", k, v)
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), res.HTML)
			return nil
		},
	}

	cmd.Flags().StringVar(&mdPath, "md", "", "path to the Markdown source file (required)")
	cmd.Flags().BoolVar(&showMeta, "show-meta", false, "print front-matter metadata to stderr")
	_ = cmd.MarkFlagRequired("md")

	return cmd
}

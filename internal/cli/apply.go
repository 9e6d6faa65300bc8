package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/readlark/htmlhl/pkg/highlight"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newApplyCommand() *cobra.Command {
	var htmlPath, anchorsPath, articleID, outPath string

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Apply a set of anchors to an HTML document",
		Long:  "Parses the HTML document, strips any previously-applied highlight markers, resolves each anchor with the three-strategy cascade, and writes the re-highlighted HTML.",
		RunE: func(cmd *cobra.Command, args []string) error {
			htmlBytes, err := os.ReadFile(htmlPath)
			if err != nil {
				return fmt.Errorf("read html: %w", err)
			}
			anchorBytes, err := os.ReadFile(anchorsPath)
			if err != nil {
				return fmt.Errorf("read anchors: %w", err)
			}
			var anchors []highlight.Anchor
			if err := json.Unmarshal(anchorBytes, &anchors); err != nil {
				return fmt.Errorf("decode anchors: %w", err)
			}

			eng, log, err := loadEngine()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			if articleID == "" {
				articleID = uuid.New().String()
				log.Debug("generated article id for uncached one-off apply", zap.String("article_id", articleID))
			}

			result, err := eng.Apply(string(htmlBytes), anchors, articleID, false)
			if err != nil {
				return fmt.Errorf("apply anchors: %w", err)
			}

			if outPath != "" {
				if err := os.WriteFile(outPath, []byte(result.HTML), 0o644); err != nil {
					return fmt.Errorf("write output: %w", err)
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), result.HTML)
			}

			printApplySummary(len(anchors), result)
			log.Info("apply finished",
				zap.Int("anchors", len(anchors)),
				zap.Int("applied", result.Applied),
				zap.Int("orphaned", result.OrphanedCount()))
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlPath, "html", "", "path to the input HTML document (required)")
	cmd.Flags().StringVar(&anchorsPath, "anchors", "", "path to a JSON array of anchors (required)")
	cmd.Flags().StringVar(&articleID, "article-id", "", "article id, used as the text-map cache key")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file for the highlighted HTML (default: stdout)")
	_ = cmd.MarkFlagRequired("html")
	_ = cmd.MarkFlagRequired("anchors")

	return cmd
}

func printApplySummary(total int, result highlight.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stderr)
	t.AppendHeader(table.Row{"Anchors", "Applied", "Orphaned"})
	t.AppendRow(table.Row{total, result.Applied, result.OrphanedCount()})
	t.Render()

	for _, id := range result.OrphanedIDs {
		fmt.Fprintf(os.Stderr, "  orphaned: %s\n", id)
	}
}

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newExtractTextCommand() *cobra.Command {
	var htmlPath string

	cmd := &cobra.Command{
		Use:   "extract-text",
		Short: "Print a document's plain-text projection",
		Long:  "Builds the text map the resolver would search against and prints only its plain-text projection, after stripping any prior highlight markers.",
		RunE: func(cmd *cobra.Command, args []string) error {
			htmlBytes, err := os.ReadFile(htmlPath)
			if err != nil {
				return fmt.Errorf("read html: %w", err)
			}

			eng, log, err := loadEngine()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			text, err := eng.ExtractPlainText(string(htmlBytes))
			if err != nil {
				return fmt.Errorf("extract text: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&htmlPath, "html", "", "path to the input HTML document (required)")
	_ = cmd.MarkFlagRequired("html")

	return cmd
}

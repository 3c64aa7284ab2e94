package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/njchilds90/markupguard"
)

var stripCmd = &cobra.Command{
	Use:   "strip [file]",
	Short: "Print the text of a file or standard input with all tags removed",
	Long: `Strip removes every tag and decodes character references. The output
is plain text and is not safe to embed in HTML as it is.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, err := openInput(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		defer in.Close()

		b, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if _, err := io.WriteString(cmd.OutOrStdout(), markupguard.StripTags(string(b))); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stripCmd)
}

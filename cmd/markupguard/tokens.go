package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/markupguard"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of a file or standard input",
	Long: `Tokens prints one line per token produced by the tokenizer: its kind,
its byte span and, for tags, the name and attributes. Useful to see why a
construct was escaped.`,
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
		return writeTokens(cmd.OutOrStdout(), string(b))
	},
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func writeTokens(w io.Writer, input string) error {
	for _, tok := range markupguard.Tokenize(input) {
		if _, err := fmt.Fprintln(w, formatToken(input, tok)); err != nil {
			return err
		}
	}
	return nil
}

func formatToken(input string, tok markupguard.Token) string {
	span := tok.Pos()
	prefix := fmt.Sprintf("[%d,%d)", span.Start, span.End)

	switch tok := tok.(type) {
	case *markupguard.Text:
		return fmt.Sprintf("text  %s %q", prefix, span.In(input))
	case *markupguard.OpenTag:
		var b strings.Builder
		fmt.Fprintf(&b, "open  %s %s", prefix, tok.Name)
		for _, a := range tok.Attributes {
			fmt.Fprintf(&b, " %s=%q(%s)", a.Name, a.Value, a.Quote)
		}
		if tok.SelfClosing {
			b.WriteString(" self-closing")
		}
		return b.String()
	case *markupguard.CloseTag:
		return fmt.Sprintf("close %s %s", prefix, tok.Name)
	}
	return fmt.Sprintf("?     %s", prefix)
}

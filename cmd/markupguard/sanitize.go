package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/njchilds90/markupguard"
)

// sanitizeConfig selects the policy for the sanitize command.
type sanitizeConfig struct {
	PolicyPath      string
	Strict          bool
	EscapeAll       bool
	StripDisallowed bool
	Linkify         bool
}

var errConflictingPolicies = errors.New("--policy, --strict and --escape-all are mutually exclusive")

var sanitizeCmd = &cobra.Command{
	Use:   "sanitize [file]",
	Short: "Sanitize a file or standard input",
	Long: `Sanitize reads the named file (or standard input) and writes the
sanitized text to standard output.

Without flags the built-in default policy is used: inline formatting,
lists, quotes, code, links and <font>.

Examples:
  # Sanitize a comment with the default policy
  markupguard sanitize comment.html

  # Use a custom YAML policy
  markupguard sanitize --policy=policy.yaml < comment.html

  # Escape every tag
  markupguard sanitize --escape-all comment.html

  # Drop disallowed tags and turn bare URLs into links
  markupguard sanitize --strip-disallowed --linkify comment.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := newLogger(cmd.ErrOrStderr(), viper.GetString("log-level"))
		if err != nil {
			return err
		}
		cfg := sanitizeConfig{
			PolicyPath:      viper.GetString("policy"),
			Strict:          viper.GetBool("strict"),
			EscapeAll:       viper.GetBool("escape-all"),
			StripDisallowed: viper.GetBool("strip-disallowed"),
			Linkify:         viper.GetBool("linkify"),
		}

		in, err := openInput(args, cmd.InOrStdin())
		if err != nil {
			return err
		}
		defer in.Close()

		return runSanitize(in, cmd.OutOrStdout(), cfg, logger)
	},
}

func init() {
	sanitizeCmd.Flags().String("policy", "", "Path to a YAML policy file")
	sanitizeCmd.Flags().Bool("strict", false, "Use the strict built-in policy")
	sanitizeCmd.Flags().Bool("escape-all", false, "Allow no tags at all")
	sanitizeCmd.Flags().Bool("strip-disallowed", false, "Remove disallowed tags instead of escaping them")
	sanitizeCmd.Flags().Bool("linkify", false, "Turn http and https URLs in text into links")

	_ = viper.BindPFlag("policy", sanitizeCmd.Flags().Lookup("policy"))
	_ = viper.BindPFlag("strict", sanitizeCmd.Flags().Lookup("strict"))
	_ = viper.BindPFlag("escape-all", sanitizeCmd.Flags().Lookup("escape-all"))
	_ = viper.BindPFlag("strip-disallowed", sanitizeCmd.Flags().Lookup("strip-disallowed"))
	_ = viper.BindPFlag("linkify", sanitizeCmd.Flags().Lookup("linkify"))

	rootCmd.AddCommand(sanitizeCmd)
}

func runSanitize(in io.Reader, out io.Writer, cfg sanitizeConfig, logger *slog.Logger) error {
	policy, err := cfg.policy()
	if err != nil {
		return err
	}

	s := markupguard.New(policy, markupguard.WithLogger(logger))
	clean, err := s.SanitizeReader(in)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(out, clean); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// policy resolves the configured policy. The flags for stripping and
// linkifying are applied on top of whichever policy was chosen, and only
// ever switch the options on.
func (c sanitizeConfig) policy() (*markupguard.Policy, error) {
	p, err := c.basePolicy()
	if err != nil {
		return nil, err
	}
	p.StripDisallowed = p.StripDisallowed || c.StripDisallowed
	p.Linkify = p.Linkify || c.Linkify
	return p, nil
}

func (c sanitizeConfig) basePolicy() (*markupguard.Policy, error) {
	set := 0
	for _, on := range []bool{c.PolicyPath != "", c.Strict, c.EscapeAll} {
		if on {
			set++
		}
	}
	switch {
	case set > 1:
		return nil, errConflictingPolicies
	case c.EscapeAll:
		return &markupguard.Policy{}, nil
	case c.Strict:
		return markupguard.StrictPolicy(), nil
	case c.PolicyPath != "":
		return markupguard.LoadPolicyFile(c.PolicyPath)
	}
	return markupguard.DefaultPolicy(), nil
}

// remark is a console utility parsing inline markup to styled segments.
//
// It reads text from a file (or stdin when the argument is "-" or absent),
// parses it with the standard Markdown token set or with a dialect defined
// in a YAML rule file, and writes the result as JSON segments, inline HTML,
// or ANSI-styled terminal text.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mikos/remark/markdown"
	"github.com/mikos/remark/parser"
	"github.com/mikos/remark/render"
	"github.com/mikos/remark/ruledef"
)

var (
	rulesFile string
	format    string
)

var rootCmd = &cobra.Command{
	Use:          "remark",
	Short:        "regex-based inline markup parser",
	SilenceUsage: true,
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "parse marked-up text to segments",
	Long: `Parse marked-up text to a flat list of styled segments.

Reads the file given as argument, or stdin when the argument is "-" or
absent. Without --rules the standard Markdown token set is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, e := newParser()
		if e != nil {
			return e
		}
		text, e := readInput(args)
		if e != nil {
			return e
		}
		segments, e := p.Parse(text)
		if e != nil {
			return e
		}
		return writeOutput(cmd.OutOrStdout(), segments)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <rules.yaml>",
	Short: "validate a rule file",
	Long:  "Validate a YAML rule file by compiling it into a parser.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rs, e := ruledef.ParseFile(args[0])
		if e != nil {
			return e
		}
		if _, e = rs.NewParser(); e != nil {
			return e
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tags, %d tokens\n", args[0], len(rs.Tags), len(rs.Tokens))
		return nil
	},
}

func init() {
	parseCmd.Flags().StringVarP(&rulesFile, "rules", "r", "", "YAML rule file defining the token set")
	parseCmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json, html, or ansi")
	rootCmd.AddCommand(parseCmd, checkCmd)
}

func newParser() (*parser.Parser, error) {
	if rulesFile == "" {
		return markdown.New()
	}
	rs, e := ruledef.ParseFile(rulesFile)
	if e != nil {
		return nil, e
	}
	return rs.NewParser()
}

func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		src, e := io.ReadAll(os.Stdin)
		if e != nil {
			return "", fmt.Errorf("cannot read stdin: %w", e)
		}
		return string(src), nil
	}
	src, e := os.ReadFile(args[0])
	if e != nil {
		return "", fmt.Errorf("cannot read input: %w", e)
	}
	return string(src), nil
}

func writeOutput(w io.Writer, segments []parser.Segment) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(segments)
	case "html":
		_, e := fmt.Fprintln(w, render.HTML(segments))
		return e
	case "ansi":
		_, e := fmt.Fprintln(w, render.ANSI(segments))
		return e
	}
	return fmt.Errorf("unknown output format %q", format)
}

func main() {
	if rootCmd.Execute() != nil {
		os.Exit(1)
	}
}
